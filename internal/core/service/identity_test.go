package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskmanager/internal/adapter/cache/memory"
	"taskmanager/internal/core/domain"
	"taskmanager/internal/core/port"
	"taskmanager/internal/core/service"
	"taskmanager/pkg/logger"
)

type countingUserRepository struct {
	port.UserRepository
	users map[int64]domain.User
	calls int
}

func (r *countingUserRepository) GetByID(_ context.Context, id int64) (domain.User, error) {
	r.calls++

	user, ok := r.users[id]

	if !ok {
		return domain.User{}, domain.ErrUserNotFound
	}

	return user, nil
}

type cacheCounter struct {
	hits, misses int
}

func (c *cacheCounter) RecordTaskOperation(context.Context, string, string) {}
func (c *cacheCounter) RecordAuthOperation(context.Context, string, string) {}
func (c *cacheCounter) RecordCacheHit(context.Context, string)              { c.hits++ }
func (c *cacheCounter) RecordCacheMiss(context.Context, string)             { c.misses++ }

func newUsers() *countingUserRepository {
	return &countingUserRepository{
		users: map[int64]domain.User{
			7: {ID: 7, Email: "alice@example.com", Username: "alice", PasswordHash: "hash"},
		},
	}
}

func TestIdentityService_ResolveCachesLookups(t *testing.T) {
	users := newUsers()
	counter := &cacheCounter{}
	svc := service.NewIdentityService(users, memory.New(time.Minute, time.Minute), time.Minute, counter, logger.NewNop())

	ctx := context.Background()

	first, err := svc.Resolve(ctx, 7)
	require.NoError(t, err)

	second, err := svc.Resolve(ctx, 7)
	require.NoError(t, err)

	assert.Equal(t, domain.Identity{ID: 7, Email: "alice@example.com", Username: "alice"}, first)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, users.calls)
	assert.Equal(t, 1, counter.hits)
	assert.Equal(t, 1, counter.misses)
}

func TestIdentityService_UnknownUserIsUnauthenticated(t *testing.T) {
	svc := service.NewIdentityService(newUsers(), memory.New(time.Minute, time.Minute), time.Minute, nil, logger.NewNop())

	_, err := svc.Resolve(context.Background(), 404)

	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestIdentityService_EvictsUnreadableEntries(t *testing.T) {
	users := newUsers()
	cache := memory.New(time.Minute, time.Minute)
	svc := service.NewIdentityService(users, cache, time.Minute, nil, logger.NewNop())
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "identity:7", []byte("not json"), time.Minute))

	identity, err := svc.Resolve(ctx, 7)

	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", identity.Email)
	assert.Equal(t, 1, users.calls)

	data, err := cache.Get(ctx, "identity:7")

	require.NoError(t, err)
	assert.JSONEq(t, `{"id":7,"email":"alice@example.com","username":"alice"}`, string(data))
}

func TestIdentityService_ZeroTTLDisablesCache(t *testing.T) {
	users := newUsers()
	svc := service.NewIdentityService(users, memory.New(time.Minute, time.Minute), 0, nil, logger.NewNop())
	ctx := context.Background()

	_, _ = svc.Resolve(ctx, 7)
	_, _ = svc.Resolve(ctx, 7)

	assert.Equal(t, 2, users.calls)
}
