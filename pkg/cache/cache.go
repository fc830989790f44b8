// Package cache provides caching for plan documents and rendered artifacts.
//
// Placement plans are deterministic functions of their inputs, so cache keys
// are content-addressed: a key hashes the site data and every option that
// influences the output. An entry can never go stale semantically; TTLs only
// bound disk and memory usage.
//
// Backends:
//   - FileCache: sharded JSON files for CLI usage (~/.cache/...)
//   - RedisCache: shared cache for multi-instance API deployments
//   - NullCache: no-op cache for tests and --no-cache runs
//
// Keys are produced by a Keyer. DefaultKeyer hashes the inputs; ScopedKeyer
// adds a namespace prefix so deployments sharing one Redis server stay
// isolated.
package cache

import (
	"context"
	"time"
)

// TTLs per entry class. Keys are content-addressed, so these exist to bound
// storage, not to enforce freshness.
const (
	// TTLPlan is the lifetime of cached plan documents.
	TTLPlan = 7 * 24 * time.Hour

	// TTLArtifact is the lifetime of cached rendered artifacts.
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is the interface for cache backends.
// All methods must be safe for concurrent use.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key was
	// present; a miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL. A non-positive TTL stores the
	// entry without expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the backend.
	Close() error
}
