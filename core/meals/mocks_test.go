package meals

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"recipe-finder-api/core/domain"
)

// mockCatalog is a mock implementation of the Catalog interface
type mockCatalog struct {
	searchFunc     func(ctx context.Context, text string) domain.Result[[]domain.MealSummary]
	lookupFunc     func(ctx context.Context, id string) domain.Result[*domain.MealDetail]
	byCategoryFunc func(ctx context.Context, name string) domain.Result[[]domain.MealSummary]
	byAreaFunc     func(ctx context.Context, name string) domain.Result[[]domain.MealSummary]
	categoriesFunc func(ctx context.Context) domain.Result[[]domain.Category]
	areasFunc      func(ctx context.Context) domain.Result[[]domain.Area]

	searchCalls atomic.Int32
	filterCalls atomic.Int32
	lookupCalls atomic.Int32
	refCalls    atomic.Int32
}

func (m *mockCatalog) Search(ctx context.Context, text string) domain.Result[[]domain.MealSummary] {
	m.searchCalls.Add(1)
	if m.searchFunc != nil {
		return m.searchFunc(ctx, text)
	}
	return domain.Ok([]domain.MealSummary{})
}

func (m *mockCatalog) Lookup(ctx context.Context, id string) domain.Result[*domain.MealDetail] {
	m.lookupCalls.Add(1)
	if m.lookupFunc != nil {
		return m.lookupFunc(ctx, id)
	}
	return domain.Ok[*domain.MealDetail](nil)
}

func (m *mockCatalog) ByCategory(ctx context.Context, name string) domain.Result[[]domain.MealSummary] {
	m.filterCalls.Add(1)
	if m.byCategoryFunc != nil {
		return m.byCategoryFunc(ctx, name)
	}
	return domain.Ok([]domain.MealSummary{})
}

func (m *mockCatalog) ByArea(ctx context.Context, name string) domain.Result[[]domain.MealSummary] {
	m.filterCalls.Add(1)
	if m.byAreaFunc != nil {
		return m.byAreaFunc(ctx, name)
	}
	return domain.Ok([]domain.MealSummary{})
}

func (m *mockCatalog) Categories(ctx context.Context) domain.Result[[]domain.Category] {
	m.refCalls.Add(1)
	if m.categoriesFunc != nil {
		return m.categoriesFunc(ctx)
	}
	return domain.Ok([]domain.Category{})
}

func (m *mockCatalog) Areas(ctx context.Context) domain.Result[[]domain.Area] {
	m.refCalls.Add(1)
	if m.areasFunc != nil {
		return m.areasFunc(ctx)
	}
	return domain.Ok([]domain.Area{})
}

// mapCache is a minimal in-memory Cache
type mapCache struct {
	mu   sync.Mutex
	data map[string][]byte
	ttls map[string]time.Duration
}

func newMapCache() *mapCache {
	return &mapCache{data: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (c *mapCache) Get(ctx context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	value, ok := c.data[key]
	if !ok {
		return nil, errors.New("key not found")
	}
	return value, nil
}

func (c *mapCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	c.ttls[key] = ttl
	return nil
}

func (c *mapCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

// countingMetrics counts cache hits and misses
type countingMetrics struct {
	hits   atomic.Int32
	misses atomic.Int32
}

func (m *countingMetrics) ObserveUpstream(string, string, time.Duration) {}
func (m *countingMetrics) ObserveCache(_ string, hit bool) {
	if hit {
		m.hits.Add(1)
	} else {
		m.misses.Add(1)
	}
}

func summaries(ids ...string) []domain.MealSummary {
	out := make([]domain.MealSummary, 0, len(ids))
	for _, id := range ids {
		out = append(out, domain.MealSummary{ID: id, Name: "Meal " + id})
	}
	return out
}

func ids(meals []domain.MealSummary) []string {
	out := make([]string, 0, len(meals))
	for _, m := range meals {
		out = append(out, m.ID)
	}
	return out
}
