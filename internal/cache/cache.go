// Package cache stores serialised values with a TTL, either in process or in
// Redis.
package cache

import (
	"context"
	"time"
)

// Store is a TTL key-value store for JSON-encodable values.
type Store interface {
	// Get decodes the value stored under key into dst and reports whether the
	// key was present.
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	// Purge removes every key written through this store.
	Purge(ctx context.Context) error
	Name() string
	Close() error
}
