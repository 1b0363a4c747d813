// ABOUTME: SearchState is the URL-mirrored record driving list views
// ABOUTME: Also defines the derived PaginatedView

package domain

// DefaultPage is the page used when none or an invalid one is given
const DefaultPage = 1

// SearchState holds the search text, selected filters and page number.
// Values are superseded, never mutated in place.
type SearchState struct {
	Search     string   `json:"search"`
	Categories []string `json:"categories"`
	Areas      []string `json:"areas"`
	Page       int      `json:"page"`
}

// DefaultSearchState returns the empty state
func DefaultSearchState() SearchState {
	return SearchState{
		Search:     "",
		Categories: []string{},
		Areas:      []string{},
		Page:       DefaultPage,
	}
}

// HasSearchOrFilters reports whether a list call is needed at all
func (s SearchState) HasSearchOrFilters() bool {
	return s.Search != "" || len(s.Categories) > 0 || len(s.Areas) > 0
}

// HasFilters reports whether any category or area is selected
func (s SearchState) HasFilters() bool {
	return len(s.Categories) > 0 || len(s.Areas) > 0
}

// Clone returns a deep copy so callers can derive new states safely
func (s SearchState) Clone() SearchState {
	return SearchState{
		Search:     s.Search,
		Categories: append([]string{}, s.Categories...),
		Areas:      append([]string{}, s.Areas...),
		Page:       s.Page,
	}
}

// Equal compares two states field by field, list order included
func (s SearchState) Equal(other SearchState) bool {
	return s.Search == other.Search &&
		s.Page == other.Page &&
		equalStrings(s.Categories, other.Categories) &&
		equalStrings(s.Areas, other.Areas)
}

// SameWorkingSet reports whether two states need the same list calls.
// Page changes alone keep the working set.
func (s SearchState) SameWorkingSet(other SearchState) bool {
	return s.Search == other.Search &&
		equalStrings(s.Categories, other.Categories) &&
		equalStrings(s.Areas, other.Areas)
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// PaginatedView is one page of a working set
type PaginatedView struct {
	// Items holds at most one page of meals
	Items []MealSummary `json:"items"`

	// Page is the requested page clamped into [1, TotalPages]
	Page int `json:"page"`

	// TotalPages is always at least 1
	TotalPages int `json:"totalPages"`
}
