// ABOUTME: Terminal rendering of meal lists, details and reference lists
// ABOUTME: Uses lipgloss styles for cards, badges and filter chips

package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"recipe-finder-api/core/browse"
	"recipe-finder-api/core/domain"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86")).
			Background(lipgloss.Color("235")).
			Padding(0, 1).
			Margin(0, 0, 1, 0)

	locationStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("33"))

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	nameStyle = lipgloss.NewStyle().Bold(true)

	categoryBadge = lipgloss.NewStyle().
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("130")).
			Padding(0, 1)

	areaBadge = lipgloss.NewStyle().
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("24")).
			Padding(0, 1)

	chipStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	emptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true).
			Margin(1, 0)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Border(lipgloss.ThickBorder()).
			BorderForeground(lipgloss.Color("196")).
			Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214")).
			Margin(1, 0, 0, 0)
)

// renderList draws one page of the list screen
func renderList(view browse.View, location string) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Recipe Finder"))
	b.WriteString("\n")
	b.WriteString(locationStyle.Render(location))
	b.WriteString("\n")

	if chips := filterChips(view.State); chips != "" {
		b.WriteString(chips)
		b.WriteString("\n")
	}

	switch {
	case view.Error != nil:
		b.WriteString(errorStyle.Render("Something went wrong: " + view.Error.Message))
		b.WriteString("\n")
		b.WriteString(metaStyle.Render("Run again with --retries to try again"))
		return b.String()

	case view.Total == 0:
		b.WriteString(emptyStyle.Render(browse.EmptyMessage(view.State)))
		return b.String()
	}

	for _, meal := range view.Meals {
		b.WriteString(renderCard(meal, view.Details))
		b.WriteString("\n")
	}

	b.WriteString(metaStyle.Render(fmt.Sprintf("%s · Page %d of %d", browse.CountMessage(len(view.Meals)), view.Page, view.TotalPages)))
	return b.String()
}

func renderCard(meal domain.MealSummary, details map[string]domain.MealTags) string {
	lines := []string{
		nameStyle.Render(meal.Name) + " " + metaStyle.Render("#"+meal.ID),
	}
	if tags, ok := details[meal.ID]; ok {
		if badges := renderBadges(tags); badges != "" {
			lines = append(lines, badges)
		}
	}
	return cardStyle.Render(strings.Join(lines, "\n"))
}

func renderBadges(tags domain.MealTags) string {
	var badges []string
	if tags.Category != "" {
		badges = append(badges, categoryBadge.Render(tags.Category))
	}
	if tags.Area != "" {
		badges = append(badges, areaBadge.Render(tags.Area))
	}
	return strings.Join(badges, " ")
}

// filterChips lists the active search and filters
func filterChips(state domain.SearchState) string {
	var chips []string
	if state.Search != "" {
		chips = append(chips, chipStyle.Render(fmt.Sprintf("search: %q", state.Search)))
	}
	for _, name := range state.Categories {
		chips = append(chips, chipStyle.Render("category: "+name))
	}
	for _, name := range state.Areas {
		chips = append(chips, chipStyle.Render("area: "+name))
	}
	return strings.Join(chips, "  ")
}

// renderDetail draws a recipe, or a not-found notice for a nil meal
func renderDetail(meal *domain.MealDetail, backLink string) string {
	var b strings.Builder

	if meal == nil {
		b.WriteString(emptyStyle.Render("Meal not found"))
		b.WriteString("\n")
		b.WriteString(metaStyle.Render("Back to results: " + backLink))
		return b.String()
	}

	b.WriteString(titleStyle.Render(meal.Name))
	b.WriteString("\n")
	if badges := renderBadges(meal.TagsView()); badges != "" {
		b.WriteString(badges)
		b.WriteString("\n")
	}
	if len(meal.Tags) > 0 {
		b.WriteString(metaStyle.Render(strings.Join(meal.Tags, ", ")))
		b.WriteString("\n")
	}
	b.WriteString(meal.Summary())
	b.WriteString("\n")

	if len(meal.Ingredients) > 0 {
		b.WriteString(headerStyle.Render("Ingredients"))
		b.WriteString("\n")
		for _, ing := range meal.Ingredients {
			if ing.Quantity != "" {
				fmt.Fprintf(&b, "  • %s %s\n", ing.Quantity, ing.Name)
			} else {
				fmt.Fprintf(&b, "  • %s\n", ing.Name)
			}
		}
	}

	if instructions := strings.TrimSpace(meal.Instructions); instructions != "" {
		b.WriteString(headerStyle.Render("Instructions"))
		b.WriteString("\n")
		b.WriteString(instructions)
		b.WriteString("\n")
	}

	if meal.YoutubeURL != "" {
		b.WriteString(locationStyle.Render("Video: " + meal.YoutubeURL))
		b.WriteString("\n")
	}
	if meal.SourceURL != "" {
		b.WriteString(locationStyle.Render("Source: " + meal.SourceURL))
		b.WriteString("\n")
	}

	b.WriteString(metaStyle.Render("Back to results: " + backLink))
	return b.String()
}

func renderCategories(categories []domain.Category) string {
	if len(categories) == 0 {
		return emptyStyle.Render("No categories")
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render("Categories"))
	for _, category := range categories {
		b.WriteString("\n")
		b.WriteString(nameStyle.Render(category.Name))
		if description := firstSentence(category.Description); description != "" {
			b.WriteString(" " + metaStyle.Render(description))
		}
	}
	return b.String()
}

func renderAreas(areas []domain.Area) string {
	if len(areas) == 0 {
		return emptyStyle.Render("No areas")
	}
	names := make([]string, len(areas))
	for i, area := range areas {
		names[i] = areaBadge.Render(area.Name)
	}
	return titleStyle.Render("Areas") + "\n" + strings.Join(names, " ")
}

func firstSentence(text string) string {
	text = strings.Join(strings.Fields(text), " ")
	if i := strings.Index(text, ". "); i >= 0 {
		return text[:i+1]
	}
	return text
}
