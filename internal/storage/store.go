// Package storage provides the key-value abstraction the onboarding state
// persists through. The production implementation is Redis; an in-memory
// implementation backs tests and environments without Redis.
package storage

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by Get when no value exists under the key.
var ErrNotFound = errors.New("storage: key not found")

// KV is a single-key-granularity durable store. A zero ttl on Set means the
// value does not expire at the storage layer.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
