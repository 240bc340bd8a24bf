package port

import (
	"context"

	"taskmanager/internal/core/domain"
)

// UserRepository is the credential store.
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	GetByID(ctx context.Context, id int64) (domain.User, error)
	Create(ctx context.Context, user domain.User) (domain.User, error)
}

type IdentityService interface {
	Resolve(ctx context.Context, userID int64) (domain.Identity, error)
}
