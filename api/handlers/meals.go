// ABOUTME: Meal handlers for the Huma API
// ABOUTME: Serves the aggregated meal list and single meal details

package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"recipe-finder-api/core/domain"
	"recipe-finder-api/core/errors"
	"recipe-finder-api/core/query"
)

// MissingMealIDMessage is the 400 message for a blank meal id
const MissingMealIDMessage = "Missing meal id"

// MealSource defines the methods needed from the meal service
type MealSource interface {
	BaseMeals(ctx context.Context, state domain.SearchState) domain.Result[[]domain.MealSummary]
	Meal(ctx context.Context, id string) domain.Result[*domain.MealDetail]
	Categories(ctx context.Context) domain.Result[[]domain.Category]
	Areas(ctx context.Context) domain.Result[[]domain.Area]
}

// MealsHandler handles /meals requests
type MealsHandler struct {
	source MealSource
}

// NewMealsHandler creates a new meals handler
func NewMealsHandler(source MealSource) *MealsHandler {
	return &MealsHandler{source: source}
}

// RegisterRoutes registers all meal routes
func (h *MealsHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "listMeals",
		Method:      http.MethodGet,
		Path:        "/meals",
		Summary:     "List meals",
		Description: "Searches by text, or combines category and area filters. Returns an empty list without parameters.",
		Tags:        []string{"Meals"},
	}, h.ListMeals)

	huma.Register(api, huma.Operation{
		OperationID: "getMeal",
		Method:      http.MethodGet,
		Path:        "/meals/{id}",
		Summary:     "Get a meal",
		Description: "Returns the full meal record, or null when the id is unknown",
		Tags:        []string{"Meals"},
	}, h.GetMeal)
}

// ListMealsInput defines the input for the ListMeals operation
type ListMealsInput struct {
	Search     string `query:"search" doc:"Free-text search; takes precedence over filters"`
	Categories string `query:"categories" doc:"Comma-joined category names" example:"Beef,Chicken"`
	Areas      string `query:"areas" doc:"Comma-joined area names" example:"British"`
}

// Resolve joins repeated categories and areas keys so every value counts,
// the same way query.Decode reads them.
func (in *ListMealsInput) Resolve(ctx huma.Context) []error {
	u := ctx.URL()
	values := u.Query()
	if list := values[query.KeyCategories]; len(list) > 1 {
		in.Categories = strings.Join(list, ",")
	}
	if list := values[query.KeyAreas]; len(list) > 1 {
		in.Areas = strings.Join(list, ",")
	}
	return nil
}

// State converts the query parameters into a SearchState
func (in *ListMealsInput) State() domain.SearchState {
	state := domain.DefaultSearchState()
	state.Search = strings.TrimSpace(in.Search)
	state.Categories = query.SplitList(in.Categories)
	state.Areas = query.SplitList(in.Areas)
	return state
}

// ListMealsOutput defines the output for the ListMeals operation
type ListMealsOutput struct {
	Body struct {
		Meals []domain.MealSummary `json:"meals"`
	}
}

// ListMeals handles GET /meals
func (h *MealsHandler) ListMeals(ctx context.Context, input *ListMealsInput) (*ListMealsOutput, error) {
	result := h.source.BaseMeals(ctx, input.State())
	if !result.OK {
		return nil, toHumaError(result.Error())
	}

	out := &ListMealsOutput{}
	out.Body.Meals = result.Data
	if out.Body.Meals == nil {
		out.Body.Meals = []domain.MealSummary{}
	}
	return out, nil
}

// GetMealInput defines the input for the GetMeal operation
type GetMealInput struct {
	ID string `path:"id" doc:"Catalog meal id" example:"52772"`
}

// GetMealOutput defines the output for the GetMeal operation
type GetMealOutput struct {
	Body struct {
		Meal *domain.MealDetail `json:"meal"`
	}
}

// GetMeal handles GET /meals/{id}
func (h *MealsHandler) GetMeal(ctx context.Context, input *GetMealInput) (*GetMealOutput, error) {
	id := strings.TrimSpace(input.ID)
	if id == "" {
		return nil, toHumaError(&errors.ValidationError{Field: "id", Message: MissingMealIDMessage})
	}

	result := h.source.Meal(ctx, id)
	if !result.OK {
		return nil, toHumaError(result.Error())
	}

	out := &GetMealOutput{}
	out.Body.Meal = result.Data
	return out, nil
}
