// ABOUTME: Pagination utilities for meal lists
// ABOUTME: Clamps the requested page so the result is always a valid page

package meals

import "recipe-finder-api/core/domain"

// DefaultPageSize is used when a non-positive page size is given
const DefaultPageSize = 12

// Paginate returns one page of items. The page is clamped into
// [1, TotalPages] and TotalPages is never below 1.
func Paginate(items []domain.MealSummary, page, pageSize int) domain.PaginatedView {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}

	totalPages := (len(items) + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}

	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > len(items) {
		start = len(items)
	}
	if end > len(items) {
		end = len(items)
	}

	// Copy so callers can't alias the working set
	pageItems := make([]domain.MealSummary, end-start)
	copy(pageItems, items[start:end])

	return domain.PaginatedView{
		Items:      pageItems,
		Page:       page,
		TotalPages: totalPages,
	}
}
