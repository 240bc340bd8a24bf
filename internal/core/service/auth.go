package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"taskmanager/internal/core/domain"
	"taskmanager/internal/core/model/request"
	"taskmanager/internal/core/port"
	"taskmanager/pkg/logger"
	"taskmanager/pkg/tracing"
)

type AuthService struct {
	users   port.UserRepository
	hasher  port.PasswordHasher
	issuer  port.TokenIssuer
	metrics port.Metrics
	log     *logger.Logger

	dummyMu   sync.Mutex
	dummyHash string
}

func NewAuthService(users port.UserRepository, hasher port.PasswordHasher, issuer port.TokenIssuer, metrics port.Metrics, log *logger.Logger) *AuthService {
	return &AuthService{
		users:   users,
		hasher:  hasher,
		issuer:  issuer,
		metrics: metricsOrNop(metrics),
		log:     log,
	}
}

func (as *AuthService) Register(ctx context.Context, req *request.RegisterRequest) (*domain.User, error) {
	ctx, span := tracing.CreateChildSpan(ctx, "AuthService.Register", nil)
	defer span.End()

	user, err := as.register(ctx, req)

	if err != nil {
		tracing.AddSpanError(span, err)
		as.metrics.RecordAuthOperation(ctx, "register", outcomeOf(err))

		return nil, err
	}

	span.SetAttributes(attribute.Int64("user.id", user.ID))
	as.metrics.RecordAuthOperation(ctx, "register", outcomeSuccess)
	as.log.Ctx(ctx).Info("User registered", zap.Int64("user_id", user.ID))

	return user, nil
}

func (as *AuthService) register(ctx context.Context, req *request.RegisterRequest) (*domain.User, error) {
	_, err := as.users.GetByEmail(ctx, req.Email)

	if err == nil {
		return nil, domain.ErrDuplicateIdentity
	}

	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := as.hasher.Hash(req.Password)

	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Create still reports ErrDuplicateIdentity when a concurrent
	// registration wins the unique index.
	user, err := as.users.Create(ctx, domain.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
	})

	if err != nil {
		return nil, err
	}

	return &user, nil
}

// Authenticate returns a signed access token. Unknown email and wrong
// password produce the same ErrInvalidCredentials.
func (as *AuthService) Authenticate(ctx context.Context, req *request.LoginRequest) (string, error) {
	ctx, span := tracing.CreateChildSpan(ctx, "AuthService.Authenticate", nil)
	defer span.End()

	token, err := as.authenticate(ctx, req)

	if err != nil {
		tracing.AddSpanError(span, err)
		as.metrics.RecordAuthOperation(ctx, "login", outcomeOf(err))

		return "", err
	}

	as.metrics.RecordAuthOperation(ctx, "login", outcomeSuccess)

	return token, nil
}

func (as *AuthService) authenticate(ctx context.Context, req *request.LoginRequest) (string, error) {
	user, err := as.users.GetByEmail(ctx, req.Email)

	if errors.Is(err, domain.ErrUserNotFound) {
		_ = as.hasher.Compare(as.timingDummyHash(ctx), req.Password)
		return "", domain.ErrInvalidCredentials
	}

	if err != nil {
		return "", err
	}

	if err := as.hasher.Compare(user.PasswordHash, req.Password); err != nil {
		return "", domain.ErrInvalidCredentials
	}

	token, err := as.issuer.CreateToken(user.ID, user.Username)

	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}

	return token, nil
}

// timingDummyHash is compared against when the email is unknown, so a failed
// login costs one hash comparison either way. A failed hash is retried on the
// next call.
func (as *AuthService) timingDummyHash(ctx context.Context) string {
	as.dummyMu.Lock()
	defer as.dummyMu.Unlock()

	if as.dummyHash != "" {
		return as.dummyHash
	}

	hash, err := as.hasher.Hash("dummy-password-for-timing")

	if err != nil {
		as.log.Ctx(ctx).Error("Failed to hash timing dummy password", zap.Error(err))
		return ""
	}

	as.dummyHash = hash

	return as.dummyHash
}

func outcomeOf(err error) string {
	switch {
	case errors.Is(err, domain.ErrDuplicateIdentity):
		return "duplicate"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrInvalidStatus):
		return "invalid"
	default:
		return outcomeError
	}
}
