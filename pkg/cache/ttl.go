package cache

import (
	"context"
	"time"
)

// TTLCache overrides the TTL of every write to the wrapped cache.
type TTLCache struct {
	Cache
	ttl time.Duration
}

// WithTTL wraps c so that writes use ttl instead of the caller's value.
// A ttl <= 0 returns c unchanged.
func WithTTL(c Cache, ttl time.Duration) Cache {
	if ttl <= 0 {
		return c
	}
	return &TTLCache{Cache: c, ttl: ttl}
}

// Set stores data with the configured TTL.
func (c *TTLCache) Set(ctx context.Context, key string, data []byte, _ time.Duration) error {
	return c.Cache.Set(ctx, key, data, c.ttl)
}
