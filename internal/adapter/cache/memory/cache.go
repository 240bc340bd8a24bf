package memory

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"taskmanager/internal/core/port"
)

// Cache is an in-process port.CacheRepository backed by go-cache.
type Cache struct {
	cache *gocache.Cache
}

func New(defaultTTL, cleanupInterval time.Duration) *Cache {
	return &Cache{
		cache: gocache.New(defaultTTL, cleanupInterval),
	}
}

var _ port.CacheRepository = (*Cache)(nil)

func (c *Cache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	stored := make([]byte, len(value))
	copy(stored, value)

	c.cache.Set(key, stored, ttl)

	return nil
}

func (c *Cache) Get(_ context.Context, key string) ([]byte, error) {
	value, found := c.cache.Get(key)

	if !found {
		return nil, port.ErrCacheMiss
	}

	data, ok := value.([]byte)

	if !ok {
		return nil, port.ErrCacheMiss
	}

	return data, nil
}

func (c *Cache) Delete(_ context.Context, key string) error {
	c.cache.Delete(key)
	return nil
}

func (c *Cache) Close() error {
	c.cache.Flush()
	return nil
}
