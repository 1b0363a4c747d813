// ABOUTME: Reference list handlers for the Huma API
// ABOUTME: Serves the category and area lists used by the filter panel

package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"recipe-finder-api/core/domain"
)

// ReferenceHandler handles /categories and /areas
type ReferenceHandler struct {
	source MealSource
}

// NewReferenceHandler creates a new reference list handler
func NewReferenceHandler(source MealSource) *ReferenceHandler {
	return &ReferenceHandler{source: source}
}

// RegisterRoutes registers the reference list routes
func (h *ReferenceHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "listCategories",
		Method:      http.MethodGet,
		Path:        "/categories",
		Summary:     "List categories",
		Tags:        []string{"Reference"},
	}, h.ListCategories)

	huma.Register(api, huma.Operation{
		OperationID: "listAreas",
		Method:      http.MethodGet,
		Path:        "/areas",
		Summary:     "List areas",
		Tags:        []string{"Reference"},
	}, h.ListAreas)
}

// ListCategoriesOutput defines the output for the ListCategories operation
type ListCategoriesOutput struct {
	Body struct {
		Categories []domain.Category `json:"categories"`
	}
}

// ListCategories handles GET /categories
func (h *ReferenceHandler) ListCategories(ctx context.Context, _ *struct{}) (*ListCategoriesOutput, error) {
	result := h.source.Categories(ctx)
	if !result.OK {
		return nil, toHumaError(result.Error())
	}

	out := &ListCategoriesOutput{}
	out.Body.Categories = result.Data
	if out.Body.Categories == nil {
		out.Body.Categories = []domain.Category{}
	}
	return out, nil
}

// ListAreasOutput defines the output for the ListAreas operation
type ListAreasOutput struct {
	Body struct {
		Areas []domain.Area `json:"areas"`
	}
}

// ListAreas handles GET /areas
func (h *ReferenceHandler) ListAreas(ctx context.Context, _ *struct{}) (*ListAreasOutput, error) {
	result := h.source.Areas(ctx)
	if !result.OK {
		return nil, toHumaError(result.Error())
	}

	out := &ListAreasOutput{}
	out.Body.Areas = result.Data
	if out.Body.Areas == nil {
		out.Body.Areas = []domain.Area{}
	}
	return out, nil
}
