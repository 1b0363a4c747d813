// ABOUTME: In-memory cache implementation backed by patrickmn/go-cache
// ABOUTME: Provides a process-local cache with TTL support and periodic cleanup

package memory

import (
	"context"
	"errors"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// ErrCacheMiss is returned for missing or expired keys
var ErrCacheMiss = errors.New("key not found")

// DefaultCleanupInterval is how often expired items are purged
const DefaultCleanupInterval = time.Minute

// MemoryCache implements the Cache interface using in-memory storage
type MemoryCache struct {
	cache *gocache.Cache
}

// NewMemoryCache creates a cache whose entries never expire unless given a TTL
func NewMemoryCache() *MemoryCache {
	return NewMemoryCacheWithExpiration(0, DefaultCleanupInterval)
}

// NewMemoryCacheWithExpiration creates a cache where a zero TTL means
// defaultExpiration. A non-positive defaultExpiration means no expiry.
func NewMemoryCacheWithExpiration(defaultExpiration, cleanupInterval time.Duration) *MemoryCache {
	if defaultExpiration <= 0 {
		defaultExpiration = gocache.NoExpiration
	}
	return &MemoryCache{cache: gocache.New(defaultExpiration, cleanupInterval)}
}

// Get retrieves a value from the cache
func (c *MemoryCache) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	value, found := c.cache.Get(key)
	if !found {
		return nil, ErrCacheMiss
	}

	data, ok := value.([]byte)
	if !ok {
		return nil, ErrCacheMiss
	}

	// Callers may mutate the slice
	result := make([]byte, len(data))
	copy(result, data)
	return result, nil
}

// Set stores a value in the cache with the given TTL
func (c *MemoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	valueCopy := make([]byte, len(value))
	copy(valueCopy, value)

	if ttl <= 0 {
		ttl = gocache.DefaultExpiration
	}
	c.cache.Set(key, valueCopy, ttl)
	return nil
}

// Delete removes a key from the cache
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.cache.Delete(key)
	return nil
}

// Count returns the number of stored items, expired ones included until cleanup
func (c *MemoryCache) Count() int {
	return c.cache.ItemCount()
}
