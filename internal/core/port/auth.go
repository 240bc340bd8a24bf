package port

import (
	"context"

	"taskmanager/internal/core/domain"
	"taskmanager/internal/core/model/request"
)

type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest) (*domain.User, error)
	Authenticate(ctx context.Context, req *request.LoginRequest) (string, error)
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

type TokenIssuer interface {
	CreateToken(userID int64, username string) (string, error)
}
