package cache

import (
	"context"
	"time"
)

// ScopedCache prefixes every key of an inner cache.
//
// The CLI scopes its artifact cache by release so an upgraded renderer never
// serves artifacts produced by an older one:
//
//	c := cache.Scoped(fileCache, "burst:"+buildinfo.Version+":")
type ScopedCache struct {
	inner  Cache
	prefix string
}

// Scoped wraps inner so all keys carry prefix. A nil inner cache is a
// [NullCache].
func Scoped(inner Cache, prefix string) Cache {
	if inner == nil {
		inner = NewNullCache()
	}
	return &ScopedCache{inner: inner, prefix: prefix}
}

// Get implements [Cache].
func (c *ScopedCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return c.inner.Get(ctx, c.prefix+key)
}

// Set implements [Cache].
func (c *ScopedCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return c.inner.Set(ctx, c.prefix+key, data, ttl)
}

// Delete implements [Cache].
func (c *ScopedCache) Delete(ctx context.Context, key string) error {
	return c.inner.Delete(ctx, c.prefix+key)
}

// Close closes the inner cache.
func (c *ScopedCache) Close() error { return c.inner.Close() }

var _ Cache = (*ScopedCache)(nil)
