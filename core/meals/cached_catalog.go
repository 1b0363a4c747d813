// ABOUTME: CachedCatalog decorates a Catalog with a shared cache and request coalescing
// ABOUTME: Lookups and reference lists are cached; list searches always go upstream

package meals

import (
	"context"
	"encoding/json"
	"time"

	"golang.org/x/sync/singleflight"

	"recipe-finder-api/core/domain"
	apperrors "recipe-finder-api/core/errors"
	"recipe-finder-api/core/interfaces"
)

// Cache keys
const (
	KeyCategories = "categories"
	KeyAreas      = "areas"
	mealKeyPrefix = "meal:"
)

// Default freshness windows
const (
	DefaultDetailTTL    = 5 * time.Minute
	DefaultReferenceTTL = 10 * time.Minute
)

// sharedCallTimeout bounds a coalesced upstream call that outlives its first caller
const sharedCallTimeout = 30 * time.Second

// MealKey returns the cache key of one lookup
func MealKey(id string) string {
	return mealKeyPrefix + id
}

// CachedCatalog implements interfaces.Catalog on top of another Catalog
type CachedCatalog struct {
	next         interfaces.Catalog
	deps         interfaces.Dependencies
	detailTTL    time.Duration
	referenceTTL time.Duration
	group        singleflight.Group
}

// NewCachedCatalog wraps next. Non-positive TTLs fall back to the defaults.
func NewCachedCatalog(next interfaces.Catalog, deps interfaces.Dependencies, detailTTL, referenceTTL time.Duration) *CachedCatalog {
	if detailTTL <= 0 {
		detailTTL = DefaultDetailTTL
	}
	if referenceTTL <= 0 {
		referenceTTL = DefaultReferenceTTL
	}
	return &CachedCatalog{
		next:         next,
		deps:         deps,
		detailTTL:    detailTTL,
		referenceTTL: referenceTTL,
	}
}

// Search is not cached
func (c *CachedCatalog) Search(ctx context.Context, text string) domain.Result[[]domain.MealSummary] {
	return c.next.Search(ctx, text)
}

// ByCategory is not cached
func (c *CachedCatalog) ByCategory(ctx context.Context, name string) domain.Result[[]domain.MealSummary] {
	return c.next.ByCategory(ctx, name)
}

// ByArea is not cached
func (c *CachedCatalog) ByArea(ctx context.Context, name string) domain.Result[[]domain.MealSummary] {
	return c.next.ByArea(ctx, name)
}

// Lookup caches found and unknown ids alike for the detail TTL
func (c *CachedCatalog) Lookup(ctx context.Context, id string) domain.Result[*domain.MealDetail] {
	return cachedCall(ctx, c, "meal", MealKey(id), c.detailTTL, func(ctx context.Context) domain.Result[*domain.MealDetail] {
		return c.next.Lookup(ctx, id)
	})
}

// Categories caches the category list for the reference TTL
func (c *CachedCatalog) Categories(ctx context.Context) domain.Result[[]domain.Category] {
	return cachedCall(ctx, c, KeyCategories, KeyCategories, c.referenceTTL, c.next.Categories)
}

// Areas caches the area list for the reference TTL
func (c *CachedCatalog) Areas(ctx context.Context) domain.Result[[]domain.Area] {
	return cachedCall(ctx, c, KeyAreas, KeyAreas, c.referenceTTL, c.next.Areas)
}

// cachedCall serves key from the cache or runs fetch once for all concurrent
// callers. Each caller still honours its own ctx and a canceled caller never
// starts a shared call. Failures are not cached.
func cachedCall[T any](ctx context.Context, c *CachedCatalog, kind, key string, ttl time.Duration, fetch func(context.Context) domain.Result[T]) domain.Result[T] {
	if ctx.Err() != nil {
		return domain.Fail[T](apperrors.Aborted())
	}
	if cached, ok := readCache[T](ctx, c, kind, key); ok {
		return domain.Ok(cached)
	}

	ch := c.group.DoChan(key, func() (interface{}, error) {
		// The shared call must not die with whichever caller started it
		callCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sharedCallTimeout)
		defer cancel()

		result := fetch(callCtx)
		if result.OK {
			writeCache(callCtx, c, key, result.Data, ttl)
		}
		return result, nil
	})

	select {
	case <-ctx.Done():
		return domain.Fail[T](apperrors.Aborted())
	case res := <-ch:
		if res.Shared {
			c.deps.LoggerOrNop().Debug("Coalesced upstream call", map[string]interface{}{"key": key})
		}
		return res.Val.(domain.Result[T])
	}
}

func readCache[T any](ctx context.Context, c *CachedCatalog, kind, key string) (T, bool) {
	var zero T
	if c.deps.Cache == nil {
		return zero, false
	}

	data, err := c.deps.Cache.Get(ctx, key)
	if err != nil {
		c.deps.MetricsOrNop().ObserveCache(kind, false)
		return zero, false
	}

	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		c.deps.LoggerOrNop().Warn("Discarding unreadable cache entry", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
		_ = c.deps.Cache.Delete(ctx, key)
		c.deps.MetricsOrNop().ObserveCache(kind, false)
		return zero, false
	}

	c.deps.MetricsOrNop().ObserveCache(kind, true)
	return value, true
}

func writeCache(ctx context.Context, c *CachedCatalog, key string, value interface{}, ttl time.Duration) {
	if c.deps.Cache == nil {
		return
	}

	data, err := json.Marshal(value)
	if err != nil {
		return
	}

	// Cache errors never fail the request
	if err := c.deps.Cache.Set(ctx, key, data, ttl); err != nil {
		c.deps.LoggerOrNop().Warn("Failed to cache catalog response", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
	}
}
