// Package cache provides the storage layer for computed layouts, building
// plans and rendered artifacts.
//
// Layout passes are pure functions of their inputs, so any result can be
// cached under a hash of (variant, config, extent, seed) and served again
// without recomputation. Three backends are provided:
//
//   - [FileCache]: one JSON file per entry under the user cache directory
//   - [RedisCache]: a shared Redis instance for the API server
//   - [NullCache]: caching disabled
//
// Keys are produced by a [Keyer] so callers never build key strings by hand.
// [ScopedKeyer] adds a namespace prefix.
package cache

import (
	"context"
	"time"
)

// TTLs per entry type.
const (
	TTLLayout   = 7 * 24 * time.Hour
	TTLPlan     = 7 * 24 * time.Hour
	TTLArtifact = 24 * time.Hour
)

// Cache stores opaque byte values under string keys.
type Cache interface {
	// Get returns the value and true on a hit. A miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data. A zero ttl means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
