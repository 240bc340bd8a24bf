package port

import "context"

// Metrics receives business counters from the core services.
type Metrics interface {
	RecordTaskOperation(ctx context.Context, operation, outcome string)
	RecordAuthOperation(ctx context.Context, operation, outcome string)
	RecordCacheHit(ctx context.Context, cache string)
	RecordCacheMiss(ctx context.Context, cache string)
}
