// Package cache provides the byte-level cache used for registry documents.
//
// Three backends implement [Cache]:
//
//   - [NullCache]: stores nothing (the default, so every lookup hits the registry)
//   - [FileCache]: one JSON entry file per key under a local directory
//   - [RedisCache]: a shared Redis instance, for hosts running many scans
//
// [Scoped] prefixes every key so that several registries can share one backend.
//
// Transient failures are retried with [Retry]; only errors wrapped with
// [Retryable] trigger another attempt.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte values under string keys.
//
// Get reports a miss with ok=false and a nil error. A zero ttl passed to Set
// means the entry never expires.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Clearer is implemented by backends that can drop all of their entries.
type Clearer interface {
	Clear(ctx context.Context) error
}
