// Package cache stores rendered diagrams so that re-rendering an unchanged
// document is a file read instead of a Graphviz layout.
//
// Keys are derived from the rendered source and the render options with
// [RenderKey]; the document itself is never consulted, so any change to the
// graph yields a new key.
//
// # Implementations
//
//   - [FileCache]: one JSON file per entry under a directory, for CLI use
//   - [NullCache]: never stores anything, for --no-cache and tests
package cache

import (
	"context"
	"time"
)

// DefaultTTL bounds how long a rendered artifact is reused.
const DefaultTTL = 7 * 24 * time.Hour

// Cache is a byte store keyed by string.
type Cache interface {
	// Get returns the data stored under key. The bool reports a hit;
	// expired or unreadable entries are misses, not errors.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}

// RenderKey identifies a rendered artifact by output format, label detail
// and the diagram source it was produced from.
func RenderKey(format string, detailed bool, source string) string {
	return hashKey("render", format, detailed, Hash([]byte(source)))
}
