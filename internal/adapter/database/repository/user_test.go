package repository_test

import (
	"context"
	"testing"

	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"taskmanager/internal/adapter/database/repository"
	"taskmanager/internal/core/domain"
	"taskmanager/internal/core/port"
	. "taskmanager/pkg/test"
	"taskmanager/pkg/test/factory"
)

type UserRepositoryTestSuite struct {
	suite.Suite
	Repo port.UserRepository
}

func (s *UserRepositoryTestSuite) SetupTest() {
	s.Repo = repository.NewUserRepository(InitTestDB(s.T()))
}

func TestUserRepositoryTestSuite(t *testing.T) {
	RegisterTestingT(t)

	suite.Run(t, new(UserRepositoryTestSuite))
}

func (s *UserRepositoryTestSuite) TestCreate_AssignsID() {
	user, err := s.Repo.Create(context.Background(), factory.NewUser[domain.User](map[string]any{
		"Username": "alice",
		"Email":    "alice@example.com",
	}))

	Expect(err).To(BeNil())
	Expect(user.ID).To(BeNumerically(">", 0))
	Expect(user.Username).To(Equal("alice"))
}

func (s *UserRepositoryTestSuite) TestCreate_DuplicateEmail() {
	ctx := context.Background()

	_, err := s.Repo.Create(ctx, factory.NewUser[domain.User](map[string]any{"Email": "alice@example.com"}))
	assert.NoError(s.T(), err)

	_, err = s.Repo.Create(ctx, factory.NewUser[domain.User](map[string]any{"Email": "alice@example.com"}))

	assert.ErrorIs(s.T(), err, domain.ErrDuplicateIdentity)
}

func (s *UserRepositoryTestSuite) TestGetByEmail() {
	ctx := context.Background()

	created, _ := s.Repo.Create(ctx, factory.NewUser[domain.User](map[string]any{
		"Username": "alice",
		"Email":    "alice@example.com",
	}))

	found, err := s.Repo.GetByEmail(ctx, "alice@example.com")

	assert.NoError(s.T(), err)
	assert.Equal(s.T(), created.ID, found.ID)
	assert.Equal(s.T(), created.PasswordHash, found.PasswordHash)
	assert.WithinDuration(s.T(), created.CreatedAt, found.CreatedAt, 0)
}

func (s *UserRepositoryTestSuite) TestGetByEmail_IsCaseSensitive() {
	ctx := context.Background()

	_, _ = s.Repo.Create(ctx, factory.NewUser[domain.User](map[string]any{"Email": "alice@example.com"}))

	_, err := s.Repo.GetByEmail(ctx, "ALICE@example.com")

	assert.ErrorIs(s.T(), err, domain.ErrUserNotFound)
}

func (s *UserRepositoryTestSuite) TestGetByID_NotFound() {
	_, err := s.Repo.GetByID(context.Background(), 999)

	assert.ErrorIs(s.T(), err, domain.ErrUserNotFound)
}
