// ABOUTME: Meal domain models for catalog summaries, details and reference lists
// ABOUTME: Provides helpers for tag parsing and page descriptions

package domain

import (
	"strings"
)

// MaxIngredientSlots is the number of indexed ingredient/measure slots in a catalog record
const MaxIngredientSlots = 20

// summaryLength bounds the derived description used for page metadata
const summaryLength = 155

// MealSummary is the minimal record returned by search and filter calls
type MealSummary struct {
	// ID is the catalog identifier and the identity key
	ID string `json:"id"`

	// Name is the meal's display name
	Name string `json:"name"`

	// ThumbnailURL points at the meal's picture
	ThumbnailURL string `json:"thumbnailUrl"`
}

// Ingredient is one parsed ingredient slot
type Ingredient struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
}

// MealDetail is the full record returned by a lookup
type MealDetail struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Category     string       `json:"category"`
	Area         string       `json:"area"`
	Instructions string       `json:"instructions"`
	ThumbnailURL string       `json:"thumbnailUrl"`
	Tags         []string     `json:"tags"`
	YoutubeURL   string       `json:"youtubeUrl,omitempty"`
	SourceURL    string       `json:"sourceUrl,omitempty"`
	Ingredients  []Ingredient `json:"ingredients"`
}

// Summary returns a short description for page metadata: the start of the
// instructions with whitespace collapsed, or a generic sentence when empty.
func (m *MealDetail) Summary() string {
	text := strings.TrimSpace(m.Instructions)
	if runes := []rune(text); len(runes) > summaryLength {
		text = string(runes[:summaryLength])
	}
	text = strings.Join(strings.Fields(text), " ")
	if text == "" {
		return "Recipe for " + m.Name + ". View ingredients and step-by-step instructions."
	}
	return text
}

// ParseTags splits a comma-separated tag string, trimming entries and dropping empties
func ParseTags(raw string) []string {
	tags := make([]string, 0)
	for _, tag := range strings.Split(raw, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// MealTags is the subset of a detail used for badges and client-side filtering
type MealTags struct {
	Category string `json:"category"`
	Area     string `json:"area"`
}

// TagsView returns the badge data for the meal
func (m *MealDetail) TagsView() MealTags {
	return MealTags{Category: m.Category, Area: m.Area}
}

// Category is an entry of the category reference list
type Category struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	ThumbnailURL string `json:"thumbnailUrl"`
	Description  string `json:"description"`
}

// Area is an entry of the cuisine/area reference list
type Area struct {
	Name string `json:"name"`
}
