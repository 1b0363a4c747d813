package handlers

import (
	"context"

	"github.com/stretchr/testify/mock"

	"recipe-finder-api/core/domain"
)

// MockMealSource is a testify mock of MealSource
type MockMealSource struct {
	mock.Mock
}

func (m *MockMealSource) BaseMeals(ctx context.Context, state domain.SearchState) domain.Result[[]domain.MealSummary] {
	args := m.Called(ctx, state)
	return args.Get(0).(domain.Result[[]domain.MealSummary])
}

func (m *MockMealSource) Meal(ctx context.Context, id string) domain.Result[*domain.MealDetail] {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Result[*domain.MealDetail])
}

func (m *MockMealSource) Categories(ctx context.Context) domain.Result[[]domain.Category] {
	args := m.Called(ctx)
	return args.Get(0).(domain.Result[[]domain.Category])
}

func (m *MockMealSource) Areas(ctx context.Context) domain.Result[[]domain.Area] {
	args := m.Called(ctx)
	return args.Get(0).(domain.Result[[]domain.Area])
}
