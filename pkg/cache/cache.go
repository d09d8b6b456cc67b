// Package cache stores rendered artifacts keyed by content hash.
//
// Three backends implement [Cache]:
//   - [FileCache]: one JSON file per entry under a local directory (CLI)
//   - [RedisCache]: shared storage for several server instances
//   - [NullCache]: stores nothing, used when caching is disabled
//
// Keys come from a [Keyer] so that the same description rendered with the
// same options maps to the same entry regardless of backend:
//
//	keyer := cache.NewDefaultKeyer()
//	key := keyer.ArtifactKey(cache.Hash(desc), cache.ArtifactKeyOpts{Format: "svg"})
//	if data, hit, err := c.Get(ctx, key); err == nil && hit {
//	    return data
//	}
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with per-entry expiration. A miss is reported by
// hit == false with a nil error.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// TTLArtifact is how long rendered artifacts stay cached.
const TTLArtifact = 7 * 24 * time.Hour

// NullCache stores nothing. Every Get is a miss.
type NullCache struct{}

// NewNullCache returns a cache that never hits.
func NewNullCache() Cache { return NullCache{} }

func (NullCache) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (NullCache) Delete(context.Context, string) error                     { return nil }
func (NullCache) Close() error                                             { return nil }
