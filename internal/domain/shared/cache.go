package shared

import (
	"context"
	"time"
)

// Cache stores serialized records by key
type Cache interface {
	// Get returns the cached value and whether the key was present
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	// Backend names the storage backing the cache (redis, memory)
	Backend() string
	Close() error
}
