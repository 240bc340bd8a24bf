package service

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"go.uber.org/zap"

	"taskmanager/internal/core/domain"
	"taskmanager/internal/core/port"
	"taskmanager/pkg/logger"
)

const identityKeyPrefix = "identity:"

// IdentityService resolves the user behind a verified token. Results are
// cached for ttl; a zero ttl disables caching.
type IdentityService struct {
	users   port.UserRepository
	cache   port.CacheRepository
	ttl     time.Duration
	metrics port.Metrics
	log     *logger.Logger
}

func NewIdentityService(users port.UserRepository, cache port.CacheRepository, ttl time.Duration, metrics port.Metrics, log *logger.Logger) *IdentityService {
	return &IdentityService{
		users:   users,
		cache:   cache,
		ttl:     ttl,
		metrics: metricsOrNop(metrics),
		log:     log,
	}
}

func identityKey(userID int64) string {
	return identityKeyPrefix + strconv.FormatInt(userID, 10)
}

func (is *IdentityService) cacheEnabled() bool {
	return is.cache != nil && is.ttl > 0
}

// Resolve returns ErrUnauthenticated when the user no longer exists.
func (is *IdentityService) Resolve(ctx context.Context, userID int64) (domain.Identity, error) {
	if is.cacheEnabled() {
		if identity, ok := is.fromCache(ctx, userID); ok {
			is.metrics.RecordCacheHit(ctx, "identity")
			return identity, nil
		}

		is.metrics.RecordCacheMiss(ctx, "identity")
	}

	user, err := is.users.GetByID(ctx, userID)

	if errors.Is(err, domain.ErrUserNotFound) {
		return domain.Identity{}, domain.ErrUnauthenticated
	}

	if err != nil {
		return domain.Identity{}, err
	}

	identity := user.Identity()

	if is.cacheEnabled() {
		is.store(ctx, identity)
	}

	return identity, nil
}

func (is *IdentityService) fromCache(ctx context.Context, userID int64) (domain.Identity, bool) {
	data, err := is.cache.Get(ctx, identityKey(userID))

	if err != nil {
		if !errors.Is(err, port.ErrCacheMiss) {
			is.log.Ctx(ctx).Warn("Identity cache read failed", zap.Int64("user_id", userID), zap.Error(err))
		}

		return domain.Identity{}, false
	}

	var identity domain.Identity

	if err := json.Unmarshal(data, &identity); err != nil || identity.ID != userID {
		is.log.Ctx(ctx).Warn("Evicting unreadable identity cache entry", zap.Int64("user_id", userID))

		if err := is.cache.Delete(ctx, identityKey(userID)); err != nil {
			is.log.Ctx(ctx).Warn("Identity cache delete failed", zap.Int64("user_id", userID), zap.Error(err))
		}

		return domain.Identity{}, false
	}

	return identity, true
}

func (is *IdentityService) store(ctx context.Context, identity domain.Identity) {
	data, err := json.Marshal(identity)

	if err != nil {
		return
	}

	if err := is.cache.Set(ctx, identityKey(identity.ID), data, is.ttl); err != nil {
		is.log.Ctx(ctx).Warn("Identity cache write failed", zap.Int64("user_id", identity.ID), zap.Error(err))
	}
}
