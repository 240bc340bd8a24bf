package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher(t *testing.T) {
	hasher := NewBcryptHasher(bcrypt.MinCost)

	t.Run("should verify the original password", func(t *testing.T) {
		hash, err := hasher.Hash("password123")

		assert.NoError(t, err)
		assert.NotEqual(t, "password123", hash)
		assert.NoError(t, hasher.Compare(hash, "password123"))
	})

	t.Run("should reject a different password", func(t *testing.T) {
		hash, _ := hasher.Hash("password123")

		assert.Error(t, hasher.Compare(hash, "password124"))
	})

	t.Run("should salt every hash", func(t *testing.T) {
		first, _ := hasher.Hash("password123")
		second, _ := hasher.Hash("password123")

		assert.NotEqual(t, first, second)
	})

	t.Run("should fall back to the default cost when out of range", func(t *testing.T) {
		assert.Equal(t, bcrypt.DefaultCost, NewBcryptHasher(0).Cost)
		assert.Equal(t, bcrypt.DefaultCost, NewBcryptHasher(99).Cost)
	})
}
