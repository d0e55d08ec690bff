package cache

import (
	"context"
	"time"
)

// Cache defines the interface for caching services.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, key string) error
	// Incr atomically increments key and returns the new value. The expiration is
	// applied when the key is created by this call.
	Incr(ctx context.Context, key string, expiration time.Duration) (int64, error)
	Close() error
}
