// ABOUTME: Catalog is the read-only upstream recipe service contract
// ABOUTME: Every call returns a Result instead of an error so failures travel as data

package interfaces

import (
	"context"
	"time"

	"recipe-finder-api/core/domain"
)

// Catalog issues read requests against the recipe catalog.
// Cancellation of ctx yields an ABORTED result. Missing list payloads are
// normalized to empty slices and unknown ids to a nil detail.
type Catalog interface {
	Search(ctx context.Context, text string) domain.Result[[]domain.MealSummary]
	Lookup(ctx context.Context, id string) domain.Result[*domain.MealDetail]
	ByCategory(ctx context.Context, name string) domain.Result[[]domain.MealSummary]
	ByArea(ctx context.Context, name string) domain.Result[[]domain.MealSummary]
	Categories(ctx context.Context) domain.Result[[]domain.Category]
	Areas(ctx context.Context) domain.Result[[]domain.Area]
}

// Metrics records upstream and cache activity
type Metrics interface {
	// ObserveUpstream records one catalog call and its outcome code ("ok" on success)
	ObserveUpstream(endpoint, outcome string, duration time.Duration)

	// ObserveCache records a cache lookup for the given kind of entry
	ObserveCache(kind string, hit bool)
}

// NopMetrics discards everything
type NopMetrics struct{}

func (NopMetrics) ObserveUpstream(string, string, time.Duration) {}
func (NopMetrics) ObserveCache(string, bool)                      {}
