package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"taskmanager/internal/core/port"
)

// Cache is a port.CacheRepository shared across instances through Redis.
type Cache struct {
	client *goredis.Client
}

func New(ctx context.Context, url string) (*Cache, error) {
	opts, err := goredis.ParseURL(url)

	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := goredis.NewClient(opts)

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return NewWithClient(client), nil
}

func NewWithClient(client *goredis.Client) *Cache {
	return &Cache{client: client}
}

var _ port.CacheRepository = (*Cache)(nil)

func (c *Cache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.client.Set(ctx, key, value, ttl).Err()
}

func (c *Cache) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := c.client.Get(ctx, key).Bytes()

	if errors.Is(err, goredis.Nil) {
		return nil, port.ErrCacheMiss
	}

	if err != nil {
		return nil, err
	}

	return data, nil
}

func (c *Cache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, key).Err()
}

func (c *Cache) Close() error {
	return c.client.Close()
}
