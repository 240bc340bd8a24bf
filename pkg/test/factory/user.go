package factory

import (
	"time"

	fab "github.com/Goldziher/fabricator"
	"golang.org/x/crypto/bcrypt"
)

const DefaultPassword = "12345678"

// NewUser fabricates a T with random field values. Unless a PasswordHash
// override is given, the hash is the bcrypt of DefaultPassword.
func NewUser[T any](customData ...map[string]any) T {
	instance := fab.New(*new(T))

	now := time.Now().UTC()

	// Build only applies its first override map, so everything goes into one.
	overrides := map[string]any{
		"CreatedAt": now,
		"UpdatedAt": now,
	}

	for _, data := range customData {
		for key, value := range data {
			overrides[key] = value
		}
	}

	if _, exists := overrides["PasswordHash"]; !exists {
		hash, _ := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.MinCost)
		overrides["PasswordHash"] = string(hash)
	}

	return instance.Build(overrides)
}
