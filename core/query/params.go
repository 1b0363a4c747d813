// ABOUTME: Query-param codec between URL query values and SearchState
// ABOUTME: Canonical URLs omit every key that holds its default value

package query

import (
	"net/url"
	"strconv"
	"strings"

	"recipe-finder-api/core/domain"
	"recipe-finder-api/pkg/utils/parse"
)

// Query keys
const (
	KeySearch     = "search"
	KeyCategories = "categories"
	KeyAreas      = "areas"
	KeyPage       = "page"
)

// ItemsPerPage is the list page size
const ItemsPerPage = 12

// Decode builds a SearchState from raw query values. It never fails:
// malformed values fall back to their defaults.
func Decode(values url.Values) domain.SearchState {
	return domain.SearchState{
		Search:     firstTrimmed(values[KeySearch]),
		Categories: SplitList(values[KeyCategories]...),
		Areas:      SplitList(values[KeyAreas]...),
		Page:       parse.PositiveIntOr(firstTrimmed(values[KeyPage]), domain.DefaultPage),
	}
}

// DecodeString parses a raw query string (with or without a leading "?")
func DecodeString(raw string) domain.SearchState {
	// ParseQuery keeps the pairs it could decode alongside the error
	values, _ := url.ParseQuery(strings.TrimPrefix(raw, "?"))
	return Decode(values)
}

// SplitList splits comma-joined values, trims each token and drops empty
// ones. Order is preserved and duplicates are kept.
func SplitList(values ...string) []string {
	out := make([]string, 0)
	for _, value := range values {
		for _, token := range strings.Split(value, ",") {
			if token = strings.TrimSpace(token); token != "" {
				out = append(out, token)
			}
		}
	}
	return out
}

func firstTrimmed(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return strings.TrimSpace(values[0])
}

// Param is one encoded query parameter
type Param struct {
	Key   string
	Value string
}

// Encode returns the non-default fields of state in the fixed order
// search, categories, areas, page.
func Encode(state domain.SearchState) []Param {
	params := make([]Param, 0, 4)
	if search := strings.TrimSpace(state.Search); search != "" {
		params = append(params, Param{KeySearch, search})
	}
	if len(state.Categories) > 0 {
		params = append(params, Param{KeyCategories, strings.Join(state.Categories, ",")})
	}
	if len(state.Areas) > 0 {
		params = append(params, Param{KeyAreas, strings.Join(state.Areas, ",")})
	}
	if state.Page > 1 {
		params = append(params, Param{KeyPage, strconv.Itoa(state.Page)})
	}
	return params
}

// Values returns Encode's output as url.Values
func Values(state domain.SearchState) url.Values {
	values := url.Values{}
	for _, p := range Encode(state) {
		values.Set(p.Key, p.Value)
	}
	return values
}

// Format renders the encoded parameters without a leading "?"
func Format(state domain.SearchState) string {
	var b strings.Builder
	for i, p := range Encode(state) {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(p.Key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.Value))
	}
	return b.String()
}

// QueryString renders "?..." or "" for the default state
func QueryString(state domain.SearchState) string {
	if s := Format(state); s != "" {
		return "?" + s
	}
	return ""
}

// Path returns the list page URL for state
func Path(state domain.SearchState) string {
	return "/" + QueryString(state)
}

// IsDefault reports whether state encodes to an empty query
func IsDefault(state domain.SearchState) bool {
	return strings.TrimSpace(state.Search) == "" &&
		len(state.Categories) == 0 &&
		len(state.Areas) == 0 &&
		state.Page <= domain.DefaultPage
}
