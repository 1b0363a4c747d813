// ABOUTME: Set operations over meal summaries keyed by id
// ABOUTME: Merge keeps first occurrences, intersection keeps the second list's order

package meals

import "recipe-finder-api/core/domain"

// MergeByID concatenates lists, keeping the first occurrence of each id.
// The result preserves the order in which ids were first seen.
func MergeByID(lists ...[]domain.MealSummary) []domain.MealSummary {
	seen := make(map[string]struct{})
	merged := make([]domain.MealSummary, 0)
	for _, list := range lists {
		for _, meal := range list {
			if _, ok := seen[meal.ID]; ok {
				continue
			}
			seen[meal.ID] = struct{}{}
			merged = append(merged, meal)
		}
	}
	return merged
}

// IntersectByID returns the meals of byArea whose id also appears in byCategory,
// in byArea order
func IntersectByID(byCategory, byArea []domain.MealSummary) []domain.MealSummary {
	ids := make(map[string]struct{}, len(byCategory))
	for _, meal := range byCategory {
		ids[meal.ID] = struct{}{}
	}

	out := make([]domain.MealSummary, 0)
	for _, meal := range byArea {
		if _, ok := ids[meal.ID]; ok {
			out = append(out, meal)
		}
	}
	return out
}

// FilterMeals keeps meals with a known detail whose category and area match
// the selected filters. An empty filter list matches everything; with no
// filters at all items are returned unchanged, resolved or not.
func FilterMeals(items []domain.MealSummary, details map[string]domain.MealTags, categories, areas []string) []domain.MealSummary {
	if len(categories) == 0 && len(areas) == 0 {
		return items
	}

	out := make([]domain.MealSummary, 0, len(items))
	for _, meal := range items {
		tags, ok := details[meal.ID]
		if !ok {
			continue
		}
		if len(categories) > 0 && !contains(categories, tags.Category) {
			continue
		}
		if len(areas) > 0 && !contains(areas, tags.Area) {
			continue
		}
		out = append(out, meal)
	}
	return out
}

func contains(list []string, value string) bool {
	for _, v := range list {
		if v == value {
			return true
		}
	}
	return false
}
