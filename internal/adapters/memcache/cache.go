// Package memcache is the in-process response cache used when no Redis is
// configured.
package memcache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	go_cache "github.com/eko/gocache/store/go_cache/v4"
	gocache "github.com/patrickmn/go-cache"

	"travel_atlas/internal/adapters/observability"
)

// Cache stores JSON encodings so callers never share decoded values.
type Cache struct {
	c *cache.Cache[any]
}

func New(defaultTTL time.Duration) *Cache {
	goCache := gocache.New(defaultTTL, 2*defaultTTL)
	return &Cache{c: cache.New[any](go_cache.NewGoCache(goCache))}
}

func (m *Cache) Get(ctx context.Context, key string, dst any) (bool, error) {
	v, err := m.c.Get(ctx, key)
	if err != nil {
		observability.ObserveCache("memory", "miss")
		return false, nil
	}
	b, ok := v.([]byte)
	if !ok {
		observability.ObserveCache("memory", "miss")
		return false, nil
	}
	observability.ObserveCache("memory", "hit")
	return true, json.Unmarshal(b, dst)
}

// Set stores v for ttlSec seconds; zero or less keeps it until deleted.
func (m *Cache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	ttl := time.Duration(ttlSec) * time.Second
	if ttlSec <= 0 {
		ttl = gocache.NoExpiration
	}
	observability.ObserveCache("memory", "set")
	return m.c.Set(ctx, key, b, store.WithExpiration(ttl))
}

func (m *Cache) Del(ctx context.Context, key string) error {
	observability.ObserveCache("memory", "del")
	return m.c.Delete(ctx, key)
}
