package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryCache is the in-process fallback used when Redis is not configured.
type MemoryCache struct {
	cache *gocache.Cache
}

func NewMemoryCache(defaultTTL, cleanupInterval time.Duration) *MemoryCache {
	return &MemoryCache{
		cache: gocache.New(defaultTTL, cleanupInterval),
	}
}

func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	if val, found := c.cache.Get(key); found {
		return val.([]byte), true, nil
	}
	return nil, false, nil
}

func (c *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	c.cache.Set(key, value, ttl)
	return nil
}

func (c *MemoryCache) Delete(_ context.Context, key string) error {
	c.cache.Delete(key)
	return nil
}

func (c *MemoryCache) Name() string {
	return "memory"
}
