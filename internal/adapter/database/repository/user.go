package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"taskmanager/internal/adapter/database"
	"taskmanager/internal/core/domain"
	"taskmanager/internal/core/port"
)

var userColumns = []string{"id", "username", "email", "password_hash", "created_at", "updated_at"}

type UserRepository struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) port.UserRepository {
	return &UserRepository{db: db}
}

func (ur *UserRepository) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	return ur.getOne(ctx, sq.Eq{"email": email})
}

func (ur *UserRepository) GetByID(ctx context.Context, id int64) (domain.User, error) {
	return ur.getOne(ctx, sq.Eq{"id": id})
}

func (ur *UserRepository) getOne(ctx context.Context, where sq.Eq) (domain.User, error) {
	query := ur.db.QueryBuilder.Select(userColumns...).
		From("users").
		Where(where).
		Limit(1)

	stmt, args, err := query.ToSql()

	if err != nil {
		return domain.User{}, err
	}

	var user domain.User

	err = ur.db.QueryRowContext(ctx, stmt, args...).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, domain.ErrUserNotFound
	}

	if err != nil {
		return domain.User{}, fmt.Errorf("get user: %w", err)
	}

	user.CreatedAt = user.CreatedAt.UTC()
	user.UpdatedAt = user.UpdatedAt.UTC()

	return user, nil
}

// Create inserts the user and returns it with its generated id. A duplicate
// email maps to domain.ErrDuplicateIdentity.
func (ur *UserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	now := utcNow()

	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}

	if user.UpdatedAt.IsZero() {
		user.UpdatedAt = user.CreatedAt
	}

	query := ur.db.QueryBuilder.Insert("users").
		Columns("username", "email", "password_hash", "created_at", "updated_at").
		Values(user.Username, user.Email, user.PasswordHash, user.CreatedAt.UTC(), user.UpdatedAt.UTC()).
		Suffix("RETURNING id")

	stmt, args, err := query.ToSql()

	if err != nil {
		return domain.User{}, err
	}

	if err := ur.db.QueryRowContext(ctx, stmt, args...).Scan(&user.ID); err != nil {
		if database.IsUniqueViolation(err) {
			return domain.User{}, domain.ErrDuplicateIdentity
		}

		return domain.User{}, fmt.Errorf("create user: %w", err)
	}

	user.CreatedAt = user.CreatedAt.UTC()
	user.UpdatedAt = user.UpdatedAt.UTC()

	return user, nil
}
