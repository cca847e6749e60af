// Package cache stores rendered chart artifacts between CLI runs.
//
// Rasterizing a chart through Graphviz is the slowest step of `burst render`,
// so PNG artifacts are cached under a key derived from everything that
// affects the output: the scene description, the width, the layout engine and
// the format. [FileCache] keeps entries on disk; [NullCache] disables caching.
//
// Keys come from [ArtifactKey]; [Scoped] prefixes them so that artifacts of
// different releases never collide.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get returns the value for key and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases the cache's resources.
	Close() error
}

// ArtifactKeyOpts are the rendering inputs that distinguish artifacts of the
// same data.
type ArtifactKeyOpts struct {
	Format string  `json:"format"`
	Width  float64 `json:"width"`
	Layout string  `json:"layout,omitempty"`
}

// ArtifactKey returns the cache key of a rendered artifact.
func ArtifactKey(dataHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", dataHash, opts)
}
