// Package cache stores rendered visualization payloads and artifacts.
//
// Only derived, reproducible data is cached: a visualization is a pure
// function of the ordered portfolio content and the layout options, so its
// key is a content hash of both. Graph state itself is never persisted.
//
// # Backends
//
//   - [NullCache]: caching disabled
//   - [FileCache]: one JSON file per entry under a directory, for the CLI
//   - [RedisCache]: shared cache for API deployments
//
// # Keys
//
// A [Keyer] derives keys from content hashes and options. Wrap it in a
// [ScopedKeyer] to give each deployment or tenant its own namespace.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key-value store with per-entry expiry.
type Cache interface {
	// Get returns the value for key. A missing or expired entry is a miss,
	// not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Default entry lifetimes.
const (
	TTLVisualization = 24 * time.Hour
	TTLArtifact      = 7 * 24 * time.Hour
)
