// ABOUTME: Meals service resolves a search state into its working set of meal summaries
// ABOUTME: Chooses the fetch plan and fans out per-name filter calls with bounded concurrency

package meals

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"recipe-finder-api/core/domain"
	apperrors "recipe-finder-api/core/errors"
	"recipe-finder-api/core/interfaces"
)

// DefaultMaxFanOut bounds concurrent filter calls when no limit is configured
const DefaultMaxFanOut = 8

// Plan names the upstream calls needed for a search state
type Plan int

const (
	// PlanNone issues no list call
	PlanNone Plan = iota
	// PlanSearch issues one text search
	PlanSearch
	// PlanIntersect filters by every category and every area, then intersects
	PlanIntersect
	// PlanCategories filters by every category
	PlanCategories
	// PlanAreas filters by every area
	PlanAreas
)

// String returns the plan name used in logs
func (p Plan) String() string {
	switch p {
	case PlanSearch:
		return "search"
	case PlanIntersect:
		return "intersect"
	case PlanCategories:
		return "categories"
	case PlanAreas:
		return "areas"
	default:
		return "none"
	}
}

// PlanFor picks the fetch plan. A non-empty search ignores the filters.
func PlanFor(state domain.SearchState) Plan {
	switch {
	case strings.TrimSpace(state.Search) != "":
		return PlanSearch
	case len(state.Categories) > 0 && len(state.Areas) > 0:
		return PlanIntersect
	case len(state.Categories) > 0:
		return PlanCategories
	case len(state.Areas) > 0:
		return PlanAreas
	default:
		return PlanNone
	}
}

// Service resolves search states against a catalog
type Service struct {
	catalog   interfaces.Catalog
	deps      interfaces.Dependencies
	maxFanOut int
}

// NewService creates a meals service. maxFanOut < 1 uses DefaultMaxFanOut.
func NewService(catalog interfaces.Catalog, deps interfaces.Dependencies, maxFanOut int) *Service {
	if maxFanOut < 1 {
		maxFanOut = DefaultMaxFanOut
	}
	return &Service{
		catalog:   catalog,
		deps:      deps,
		maxFanOut: maxFanOut,
	}
}

// BaseMeals returns the working set for state. Only a failed text search is
// an error; failed filter calls contribute no meals.
func (s *Service) BaseMeals(ctx context.Context, state domain.SearchState) domain.Result[[]domain.MealSummary] {
	plan := PlanFor(state)
	s.deps.LoggerOrNop().Debug("Resolving working set", map[string]interface{}{
		"plan":       plan.String(),
		"categories": len(state.Categories),
		"areas":      len(state.Areas),
	})

	switch plan {
	case PlanSearch:
		return s.catalog.Search(ctx, strings.TrimSpace(state.Search))

	case PlanIntersect:
		var byCategory, byArea []domain.MealSummary
		var g errgroup.Group
		g.Go(func() error {
			byCategory = s.fanOut(ctx, state.Categories, s.catalog.ByCategory)
			return nil
		})
		g.Go(func() error {
			byArea = s.fanOut(ctx, state.Areas, s.catalog.ByArea)
			return nil
		})
		_ = g.Wait()
		if ctx.Err() != nil {
			return domain.Fail[[]domain.MealSummary](apperrors.Aborted())
		}
		return domain.Ok(IntersectByID(byCategory, byArea))

	case PlanCategories:
		merged := s.fanOut(ctx, state.Categories, s.catalog.ByCategory)
		if ctx.Err() != nil {
			return domain.Fail[[]domain.MealSummary](apperrors.Aborted())
		}
		return domain.Ok(merged)

	case PlanAreas:
		merged := s.fanOut(ctx, state.Areas, s.catalog.ByArea)
		if ctx.Err() != nil {
			return domain.Fail[[]domain.MealSummary](apperrors.Aborted())
		}
		return domain.Ok(merged)

	default:
		return domain.Ok([]domain.MealSummary{})
	}
}

type filterFunc func(ctx context.Context, name string) domain.Result[[]domain.MealSummary]

// fanOut calls filter once per distinct name and merges the successful
// results in name order
func (s *Service) fanOut(ctx context.Context, names []string, filter filterFunc) []domain.MealSummary {
	names = distinct(names)
	results := make([][]domain.MealSummary, len(names))

	g := new(errgroup.Group)
	g.SetLimit(s.maxFanOut)
	for i, name := range names {
		i, name := i, name
		g.Go(func() error {
			result := filter(ctx, name)
			if !result.OK {
				if !result.Aborted() {
					s.deps.LoggerOrNop().Warn("Filter call failed, skipping", map[string]interface{}{
						"name":  name,
						"error": result.Error().Error(),
					})
				}
				return nil
			}
			results[i] = result.Data
			return nil
		})
	}
	_ = g.Wait()

	return MergeByID(results...)
}

// Meal looks up one meal
func (s *Service) Meal(ctx context.Context, id string) domain.Result[*domain.MealDetail] {
	return s.catalog.Lookup(ctx, id)
}

// Categories returns the category reference list
func (s *Service) Categories(ctx context.Context) domain.Result[[]domain.Category] {
	return s.catalog.Categories(ctx)
}

// Areas returns the area reference list
func (s *Service) Areas(ctx context.Context) domain.Result[[]domain.Area] {
	return s.catalog.Areas(ctx)
}

func distinct(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}
