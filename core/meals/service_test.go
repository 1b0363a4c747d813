package meals

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipe-finder-api/core/domain"
	apperrors "recipe-finder-api/core/errors"
	"recipe-finder-api/core/interfaces"
)

func state(search string, categories, areas []string) domain.SearchState {
	s := domain.DefaultSearchState()
	s.Search = search
	if categories != nil {
		s.Categories = categories
	}
	if areas != nil {
		s.Areas = areas
	}
	return s
}

func TestPlanFor(t *testing.T) {
	tests := []struct {
		state domain.SearchState
		want  Plan
	}{
		{state("", nil, nil), PlanNone},
		{state("   ", nil, nil), PlanNone},
		{state("chicken", []string{"Beef"}, []string{"British"}), PlanSearch},
		{state("", []string{"Beef"}, []string{"British"}), PlanIntersect},
		{state("", []string{"Beef"}, nil), PlanCategories},
		{state("", nil, []string{"British"}), PlanAreas},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, PlanFor(tt.state), "state %+v", tt.state)
	}
	assert.Equal(t, "intersect", PlanIntersect.String())
}

func TestService_BaseMeals_NoParamsNoCalls(t *testing.T) {
	catalog := &mockCatalog{}
	svc := NewService(catalog, interfaces.Dependencies{}, 4)

	result := svc.BaseMeals(context.Background(), domain.DefaultSearchState())

	require.True(t, result.OK)
	assert.NotNil(t, result.Data)
	assert.Empty(t, result.Data)
	assert.Zero(t, catalog.searchCalls.Load())
	assert.Zero(t, catalog.filterCalls.Load())

	view := Paginate(result.Data, 1, 12)
	assert.Equal(t, 1, view.TotalPages)
}

func TestService_BaseMeals_Search(t *testing.T) {
	catalog := &mockCatalog{
		searchFunc: func(ctx context.Context, text string) domain.Result[[]domain.MealSummary] {
			assert.Equal(t, "chicken", text)
			return domain.Ok([]domain.MealSummary{{ID: "52772", Name: "Teriyaki Chicken"}})
		},
	}
	svc := NewService(catalog, interfaces.Dependencies{}, 4)

	result := svc.BaseMeals(context.Background(), state(" chicken ", []string{"Beef"}, nil))

	require.True(t, result.OK)
	assert.Equal(t, []string{"52772"}, ids(result.Data))
	assert.Zero(t, catalog.filterCalls.Load(), "search must ignore filters")

	view := Paginate(result.Data, 1, 12)
	assert.Equal(t, 1, view.TotalPages)
	assert.Len(t, view.Items, 1)
}

func TestService_BaseMeals_SearchFailureSurfaces(t *testing.T) {
	catalog := &mockCatalog{
		searchFunc: func(ctx context.Context, text string) domain.Result[[]domain.MealSummary] {
			return domain.Fail[[]domain.MealSummary](apperrors.HTTPStatus(500))
		},
	}
	svc := NewService(catalog, interfaces.Dependencies{}, 4)

	result := svc.BaseMeals(context.Background(), state("chicken", nil, nil))

	require.False(t, result.OK)
	assert.Equal(t, "HTTP_500", result.Err.Code)
}

func TestService_BaseMeals_SingleCategory(t *testing.T) {
	catalog := &mockCatalog{
		byCategoryFunc: func(ctx context.Context, name string) domain.Result[[]domain.MealSummary] {
			assert.Equal(t, "Beef", name)
			return domain.Ok(summaries("52874"))
		},
	}
	svc := NewService(catalog, interfaces.Dependencies{}, 4)

	result := svc.BaseMeals(context.Background(), state("", []string{"Beef"}, nil))

	require.True(t, result.OK)
	assert.Equal(t, []string{"52874"}, ids(result.Data))
}

func TestService_BaseMeals_MergesCategoriesInNameOrder(t *testing.T) {
	catalog := &mockCatalog{
		byCategoryFunc: func(ctx context.Context, name string) domain.Result[[]domain.MealSummary] {
			if name == "Beef" {
				// Finish last so completion order differs from name order
				time.Sleep(20 * time.Millisecond)
				return domain.Ok(summaries("1", "2"))
			}
			return domain.Ok(summaries("2", "3"))
		},
	}
	svc := NewService(catalog, interfaces.Dependencies{}, 4)

	result := svc.BaseMeals(context.Background(), state("", []string{"Beef", "Chicken"}, nil))

	require.True(t, result.OK)
	assert.Equal(t, []string{"1", "2", "3"}, ids(result.Data))
}

func TestService_BaseMeals_DuplicateNamesCalledOnce(t *testing.T) {
	catalog := &mockCatalog{
		byAreaFunc: func(ctx context.Context, name string) domain.Result[[]domain.MealSummary] {
			return domain.Ok(summaries("9"))
		},
	}
	svc := NewService(catalog, interfaces.Dependencies{}, 4)

	result := svc.BaseMeals(context.Background(), state("", nil, []string{"Thai", "Thai"}))

	require.True(t, result.OK)
	assert.Equal(t, int32(1), catalog.filterCalls.Load())
	assert.Equal(t, []string{"9"}, ids(result.Data))
}

func TestService_BaseMeals_FailedFilterContributesNothing(t *testing.T) {
	catalog := &mockCatalog{
		byAreaFunc: func(ctx context.Context, name string) domain.Result[[]domain.MealSummary] {
			if name == "British" {
				return domain.Fail[[]domain.MealSummary](apperrors.HTTPStatus(503))
			}
			return domain.Ok(summaries("7"))
		},
	}
	svc := NewService(catalog, interfaces.Dependencies{}, 4)

	result := svc.BaseMeals(context.Background(), state("", nil, []string{"British", "Thai"}))

	require.True(t, result.OK)
	assert.Equal(t, []string{"7"}, ids(result.Data))
}

func TestService_BaseMeals_Intersect(t *testing.T) {
	catalog := &mockCatalog{
		byCategoryFunc: func(ctx context.Context, name string) domain.Result[[]domain.MealSummary] {
			return domain.Ok(summaries("1", "2", "3"))
		},
		byAreaFunc: func(ctx context.Context, name string) domain.Result[[]domain.MealSummary] {
			return domain.Ok(summaries("4", "3", "2"))
		},
	}
	svc := NewService(catalog, interfaces.Dependencies{}, 4)

	result := svc.BaseMeals(context.Background(), state("", []string{"Beef"}, []string{"British"}))

	require.True(t, result.OK)
	assert.Equal(t, []string{"3", "2"}, ids(result.Data))
}

func TestService_BaseMeals_RespectsFanOutLimit(t *testing.T) {
	var inFlight, peak atomic.Int32
	catalog := &mockCatalog{
		byCategoryFunc: func(ctx context.Context, name string) domain.Result[[]domain.MealSummary] {
			n := inFlight.Add(1)
			for {
				old := peak.Load()
				if n <= old || peak.CompareAndSwap(old, n) {
					break
				}
			}
			time.Sleep(10 * time.Millisecond)
			inFlight.Add(-1)
			return domain.Ok(summaries(name))
		},
	}
	svc := NewService(catalog, interfaces.Dependencies{}, 2)

	names := []string{"a", "b", "c", "d", "e", "f"}
	result := svc.BaseMeals(context.Background(), state("", names, nil))

	require.True(t, result.OK)
	assert.Equal(t, names, ids(result.Data))
	assert.LessOrEqual(t, peak.Load(), int32(2))
}

func TestService_BaseMeals_Canceled(t *testing.T) {
	catalog := &mockCatalog{
		byCategoryFunc: func(ctx context.Context, name string) domain.Result[[]domain.MealSummary] {
			<-ctx.Done()
			return domain.Fail[[]domain.MealSummary](apperrors.Aborted())
		},
	}
	svc := NewService(catalog, interfaces.Dependencies{}, 4)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	result := svc.BaseMeals(ctx, state("", []string{"Beef"}, nil))

	assert.True(t, result.Aborted())
}

func TestService_PassThroughs(t *testing.T) {
	catalog := &mockCatalog{
		lookupFunc: func(ctx context.Context, id string) domain.Result[*domain.MealDetail] {
			return domain.Ok(&domain.MealDetail{ID: id})
		},
		categoriesFunc: func(ctx context.Context) domain.Result[[]domain.Category] {
			return domain.Ok([]domain.Category{{Name: "Beef"}})
		},
		areasFunc: func(ctx context.Context) domain.Result[[]domain.Area] {
			return domain.Ok([]domain.Area{{Name: "Thai"}})
		},
	}
	svc := NewService(catalog, interfaces.Dependencies{}, 0)

	assert.Equal(t, DefaultMaxFanOut, svc.maxFanOut)
	assert.Equal(t, "52772", svc.Meal(context.Background(), "52772").Data.ID)
	assert.Equal(t, "Beef", svc.Categories(context.Background()).Data[0].Name)
	assert.Equal(t, "Thai", svc.Areas(context.Background()).Data[0].Name)
}
