// Package cache stores fetched images, extracted themes and rendered
// artifacts between runs.
//
// Three backends implement [Cache]:
//   - [FileCache]: one file per entry under the user cache directory (CLI default)
//   - [RedisCache]: a shared Redis instance, for several renderers on one host pool
//   - [NullCache]: stores nothing (--no-cache)
//
// Keys come from a [Keyer], so callers never build key strings by hand:
//
//	k := cache.NewDefaultKeyer()
//	data, ok, err := c.Get(ctx, k.ImageKey("https://example.com/world.png"))
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with per-entry expiration.
//
// Get returns (nil, false, nil) on a miss, including for expired entries.
// A ttl of 0 in Set means the entry does not expire.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Default entry lifetimes.
const (
	ImageTTL    = 24 * time.Hour
	ThemeTTL    = 30 * 24 * time.Hour
	ArtifactTTL = 7 * 24 * time.Hour
)
