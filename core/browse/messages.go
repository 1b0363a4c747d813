// ABOUTME: User-facing copy for list screens: empty states and result counts
// ABOUTME: Picks the empty-state message from the active search and filters

package browse

import (
	"fmt"

	"recipe-finder-api/core/domain"
)

// Copy shown when a list is empty
const (
	EmptyFilteredMessage = "No meals found. Try adjusting your search or filters."
	EmptyStartMessage    = "Search for a meal or use filters to discover recipes!"
)

// EmptyMessage picks the empty-state copy for state
func EmptyMessage(state domain.SearchState) string {
	if state.HasSearchOrFilters() {
		return EmptyFilteredMessage
	}
	return EmptyStartMessage
}

// CountMessage announces how many meals the current page shows
func CountMessage(count int) string {
	switch {
	case count <= 0:
		return "No meals found"
	case count == 1:
		return "1 meal found"
	default:
		return fmt.Sprintf("%d meals found", count)
	}
}
