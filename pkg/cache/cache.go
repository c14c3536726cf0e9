// Package cache stores projected graphs and rendered artifacts.
//
// # Backends
//
//   - [NullCache]: never stores anything (--no-cache)
//   - [FileCache]: JSON entries on local disk, used by the CLI
//   - [RedisCache]: shared cache for the HTTP server
//
// # Keys
//
// Keys are produced by a [Keyer] from content hashes and the options that
// influence the cached value, so a changed workspace or option yields a new
// key rather than a stale hit.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry expiry.
type Cache interface {
	// Get returns the value for key. A miss is reported as (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl <= 0 never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}

// Default TTLs.
const (
	ProjectionTTL = 7 * 24 * time.Hour
	ArtifactTTL   = 24 * time.Hour
)
