package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// Cache stores reference data (product types, page content) between requests.
// Quotes and memory lookups are never cached.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Name() string
}

const keyPrefix = "quote-service:v1:"

func Key(parts ...string) string {
	key := keyPrefix
	for i, p := range parts {
		if i > 0 {
			key += ":"
		}
		key += p
	}
	return key
}

// GetJSON decodes a cached value into dest. A decode failure is reported as a miss.
func GetJSON(ctx context.Context, c Cache, key string, dest any) (bool, error) {
	raw, ok, err := c.Get(ctx, key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		_ = c.Delete(ctx, key)
		return false, nil
	}
	return true, nil
}

func SetJSON(ctx context.Context, c Cache, key string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}
	return c.Set(ctx, key, raw, ttl)
}
