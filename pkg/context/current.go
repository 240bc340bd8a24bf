package context

import (
	"context"
	"sync"
)

const (
	RequestIDKey = "request_id"
	UserIDKey    = "user_id"
)

// Current holds request-scoped values shared between middleware, handlers
// and services.
type Current struct {
	mu   sync.RWMutex
	data map[string]any
}

func NewCurrent() *Current {
	return &Current{
		data: make(map[string]any),
	}
}

func (c *Current) Set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
}

func (c *Current) Get(key string) any {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.data[key]
}

func (c *Current) GetString(key string) (string, bool) {
	if str, ok := c.Get(key).(string); ok {
		return str, true
	}
	return "", false
}

func (c *Current) GetInt64(key string) (int64, bool) {
	if i, ok := c.Get(key).(int64); ok {
		return i, true
	}
	return 0, false
}

func (c *Current) Exists(key string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, exists := c.data[key]
	return exists
}

func (c *Current) All() map[string]any {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make(map[string]any, len(c.data))
	for k, v := range c.data {
		result[k] = v
	}
	return result
}

type contextKey string

const currentKey contextKey = "current"

func WithCurrent(ctx context.Context, current *Current) context.Context {
	return context.WithValue(ctx, currentKey, current)
}

func FromContext(ctx context.Context) (*Current, bool) {
	current, ok := ctx.Value(currentKey).(*Current)
	return current, ok
}

// GetCurrent never returns nil; without a Current in ctx it returns an empty one.
func GetCurrent(ctx context.Context) *Current {
	if current, ok := FromContext(ctx); ok {
		return current
	}

	return NewCurrent()
}

func RequestID(ctx context.Context) string {
	id, _ := GetCurrent(ctx).GetString(RequestIDKey)
	return id
}

func UserID(ctx context.Context) (int64, bool) {
	return GetCurrent(ctx).GetInt64(UserIDKey)
}
