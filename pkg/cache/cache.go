// Package cache stores rendered diagram artifacts.
//
// Artifacts (SVG, PNG, PDF, JSON, DOT) are keyed by a hash of the source
// document plus the render options, so an unchanged document renders once.
// Three backends implement [Cache]:
//
//   - [FileCache]: one file per entry under a directory, for the CLI
//   - [RedisCache]: shared storage for multi-instance servers
//   - [NullCache]: stores nothing, for --no-cache and tests
//
// Keys come from a [Keyer]; [ScopedKeyer] prefixes them so several
// consumers can share one backend.
package cache

import (
	"context"
	"time"
)

// DefaultTTL is how long artifacts live when callers do not choose.
const DefaultTTL = 7 * 24 * time.Hour

// Cache is a byte-oriented key/value store with expiry. Implementations are
// safe for concurrent use.
type Cache interface {
	// Get returns the value for key and whether it was found. Expired
	// entries are reported as misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Clear removes every entry owned by this cache.
	Clear(ctx context.Context) error
	// Close releases backend resources.
	Close() error
}
