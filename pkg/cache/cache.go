// Package cache provides panel analysis caching for the CLI.
//
// Parsing a panel and locating its structural features is pure: the result
// depends only on the file content and the feature catalog. Analysis results
// are therefore cached keyed by content hash, so recomposing a figure after
// tweaking layout flags skips re-analysis of unchanged panels.
package cache

import (
	"context"
	"time"
)

// Cache is the storage interface for cached entries.
type Cache interface {
	// Get retrieves a value. The bool reports whether the key was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with an optional TTL. A zero TTL never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}
