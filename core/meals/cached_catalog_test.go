package meals

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipe-finder-api/core/domain"
	apperrors "recipe-finder-api/core/errors"
	"recipe-finder-api/core/interfaces"
)

func TestCachedCatalog_LookupCachesDetail(t *testing.T) {
	catalog := &mockCatalog{
		lookupFunc: func(ctx context.Context, id string) domain.Result[*domain.MealDetail] {
			return domain.Ok(&domain.MealDetail{ID: id, Name: "Teriyaki", Category: "Chicken"})
		},
	}
	cache := newMapCache()
	metrics := &countingMetrics{}
	cached := NewCachedCatalog(catalog, interfaces.Dependencies{Cache: cache, Metrics: metrics}, 0, 0)

	first := cached.Lookup(context.Background(), "52772")
	second := cached.Lookup(context.Background(), "52772")

	require.True(t, first.OK)
	require.True(t, second.OK)
	assert.Equal(t, "Teriyaki", second.Data.Name)
	assert.Equal(t, "Chicken", second.Data.Category)
	assert.Equal(t, int32(1), catalog.lookupCalls.Load())
	assert.Equal(t, DefaultDetailTTL, cache.ttls[MealKey("52772")])
	assert.Equal(t, int32(1), metrics.hits.Load())
	assert.Equal(t, int32(1), metrics.misses.Load())
}

func TestCachedCatalog_LookupCachesUnknownID(t *testing.T) {
	catalog := &mockCatalog{}
	cached := NewCachedCatalog(catalog, interfaces.Dependencies{Cache: newMapCache()}, time.Minute, time.Minute)

	first := cached.Lookup(context.Background(), "0")
	second := cached.Lookup(context.Background(), "0")

	assert.True(t, first.OK)
	assert.Nil(t, first.Data)
	assert.True(t, second.OK)
	assert.Nil(t, second.Data)
	assert.Equal(t, int32(1), catalog.lookupCalls.Load())
}

func TestCachedCatalog_FailuresNotCached(t *testing.T) {
	catalog := &mockCatalog{
		categoriesFunc: func(ctx context.Context) domain.Result[[]domain.Category] {
			return domain.Fail[[]domain.Category](apperrors.HTTPStatus(502))
		},
	}
	cache := newMapCache()
	cached := NewCachedCatalog(catalog, interfaces.Dependencies{Cache: cache}, 0, 0)

	assert.False(t, cached.Categories(context.Background()).OK)
	assert.False(t, cached.Categories(context.Background()).OK)

	assert.Equal(t, int32(2), catalog.refCalls.Load())
	assert.Empty(t, cache.data)
}

func TestCachedCatalog_ReferenceTTL(t *testing.T) {
	catalog := &mockCatalog{
		areasFunc: func(ctx context.Context) domain.Result[[]domain.Area] {
			return domain.Ok([]domain.Area{{Name: "British"}})
		},
	}
	cache := newMapCache()
	cached := NewCachedCatalog(catalog, interfaces.Dependencies{Cache: cache}, 0, 0)

	cached.Areas(context.Background())
	result := cached.Areas(context.Background())

	assert.Equal(t, "British", result.Data[0].Name)
	assert.Equal(t, int32(1), catalog.refCalls.Load())
	assert.Equal(t, DefaultReferenceTTL, cache.ttls[KeyAreas])
}

func TestCachedCatalog_CoalescesConcurrentLookups(t *testing.T) {
	release := make(chan struct{})
	catalog := &mockCatalog{
		lookupFunc: func(ctx context.Context, id string) domain.Result[*domain.MealDetail] {
			<-release
			return domain.Ok(&domain.MealDetail{ID: id})
		},
	}
	cached := NewCachedCatalog(catalog, interfaces.Dependencies{}, 0, 0)

	var wg sync.WaitGroup
	results := make([]domain.Result[*domain.MealDetail], 5)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = cached.Lookup(context.Background(), "52772")
		}(i)
	}

	// Let every caller join the in-flight call
	time.Sleep(30 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), catalog.lookupCalls.Load())
	for _, r := range results {
		assert.True(t, r.OK)
		assert.Equal(t, "52772", r.Data.ID)
	}
}

func TestCachedCatalog_CanceledCallerDoesNotCancelOthers(t *testing.T) {
	release := make(chan struct{})
	catalog := &mockCatalog{
		lookupFunc: func(ctx context.Context, id string) domain.Result[*domain.MealDetail] {
			select {
			case <-release:
				return domain.Ok(&domain.MealDetail{ID: id})
			case <-ctx.Done():
				return domain.Fail[*domain.MealDetail](apperrors.Aborted())
			}
		},
	}
	cache := newMapCache()
	cached := NewCachedCatalog(catalog, interfaces.Dependencies{Cache: cache}, 0, 0)

	firstCtx, cancelFirst := context.WithCancel(context.Background())
	firstDone := make(chan domain.Result[*domain.MealDetail], 1)
	go func() { firstDone <- cached.Lookup(firstCtx, "1") }()

	secondDone := make(chan domain.Result[*domain.MealDetail], 1)
	time.Sleep(10 * time.Millisecond)
	go func() { secondDone <- cached.Lookup(context.Background(), "1") }()

	time.Sleep(10 * time.Millisecond)
	cancelFirst()

	first := <-firstDone
	assert.True(t, first.Aborted())

	close(release)
	second := <-secondDone
	require.True(t, second.OK)
	assert.Equal(t, "1", second.Data.ID)

	_, err := cache.Get(context.Background(), MealKey("1"))
	assert.NoError(t, err, "shared result should still be cached")
}

func TestCachedCatalog_CanceledCallerStartsNoCall(t *testing.T) {
	catalog := &mockCatalog{}
	cached := NewCachedCatalog(catalog, interfaces.Dependencies{Cache: newMapCache()}, 0, 0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.True(t, cached.Lookup(ctx, "52772").Aborted())
	assert.True(t, cached.Categories(ctx).Aborted())
	assert.Zero(t, catalog.lookupCalls.Load())
	assert.Zero(t, catalog.refCalls.Load())
}

func TestCachedCatalog_ListsPassThrough(t *testing.T) {
	catalog := &mockCatalog{}
	cached := NewCachedCatalog(catalog, interfaces.Dependencies{Cache: newMapCache()}, 0, 0)

	cached.Search(context.Background(), "x")
	cached.Search(context.Background(), "x")
	cached.ByCategory(context.Background(), "Beef")
	cached.ByArea(context.Background(), "Thai")

	assert.Equal(t, int32(2), catalog.searchCalls.Load())
	assert.Equal(t, int32(2), catalog.filterCalls.Load())
}

func TestCachedCatalog_UnreadableEntryRefetched(t *testing.T) {
	catalog := &mockCatalog{
		categoriesFunc: func(ctx context.Context) domain.Result[[]domain.Category] {
			return domain.Ok([]domain.Category{{Name: "Beef"}})
		},
	}
	cache := newMapCache()
	cache.Set(context.Background(), KeyCategories, []byte("{broken"), 0)
	cached := NewCachedCatalog(catalog, interfaces.Dependencies{Cache: cache}, 0, 0)

	result := cached.Categories(context.Background())

	require.True(t, result.OK)
	assert.Equal(t, "Beef", result.Data[0].Name)
	assert.Equal(t, int32(1), catalog.refCalls.Load())
}
