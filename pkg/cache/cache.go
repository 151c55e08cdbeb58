// Package cache stores rendered artifacts so repeated renders of the same
// scene are free.
//
// # Backends
//
//   - [NullCache]: caching disabled
//   - [FileCache]: one JSON file per entry under a directory, for the CLI
//   - [RedisCache]: a shared Redis instance, for several machines or CI jobs
//
// # Keys
//
// Keys come from a [Keyer]. [DefaultKeyer] hashes the scene's canonical
// encoding together with the output options; [ScopedKeyer] adds a namespace
// prefix so a Redis database can be shared with other applications.
package cache

import (
	"context"
	"time"
)

// TTLArtifact is how long rendered artifacts stay valid.
const TTLArtifact = 7 * 24 * time.Hour

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the stored value and whether it was found. Expired entries
	// are reported as misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Clearer is implemented by caches that can drop every entry they own.
type Clearer interface {
	Clear(ctx context.Context) (int, error)
}
