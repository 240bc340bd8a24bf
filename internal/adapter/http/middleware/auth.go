package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"taskmanager/internal/adapter/http/helper"
	"taskmanager/internal/core/domain"
	"taskmanager/internal/core/port"
	"taskmanager/pkg/auth"
	ct "taskmanager/pkg/context"
	"taskmanager/pkg/logger"
)

const (
	identityKey = "identity"
	userIDKey   = "x-user-id"
)

type TokenVerifier interface {
	VerifyToken(token string) (*auth.Claims, error)
}

// Authenticate rejects requests without a valid bearer token. The token's
// subject is resolved against the credential store so a deleted user loses
// access even while their token is unexpired.
func Authenticate(verifier TokenVerifier, identities port.IdentityService, log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		bearer := c.GetHeader("Authorization")

		if bearer == "" {
			helper.SendUnauthorizedError(c, "Authorization header is required")
			return
		}

		token, ok := strings.CutPrefix(bearer, "Bearer ")

		if !ok || strings.TrimSpace(token) == "" {
			helper.SendUnauthorizedError(c, "Authorization header must use the Bearer scheme")
			return
		}

		claims, err := verifier.VerifyToken(strings.TrimSpace(token))

		if err != nil {
			helper.SendUnauthorizedError(c, "Invalid or expired token")
			return
		}

		ctx := c.Request.Context()
		identity, err := identities.Resolve(ctx, claims.UserID)

		if err != nil {
			if errors.Is(err, domain.ErrUnauthenticated) {
				helper.SendUnauthorizedError(c, "Invalid or expired token")
				return
			}

			log.Ctx(ctx).Error("Failed to resolve identity",
				zap.Int64("user_id", claims.UserID),
				zap.Error(err))

			helper.SendInternalError(c, "Internal server error")
			return
		}

		c.Set(identityKey, identity)
		c.Set(userIDKey, identity.ID)
		ct.GetCurrent(ctx).Set(ct.UserIDKey, identity.ID)

		trace.SpanFromContext(ctx).SetAttributes(attribute.Int64("user.id", identity.ID))

		c.Next()
	}
}

// IdentityFrom returns the identity stored by Authenticate.
func IdentityFrom(c *gin.Context) (domain.Identity, bool) {
	value, ok := c.Get(identityKey)

	if !ok {
		return domain.Identity{}, false
	}

	identity, ok := value.(domain.Identity)

	return identity, ok
}
