// ABOUTME: TheMealDB catalog client implementing interfaces.Catalog
// ABOUTME: Maps transport and status failures into coded Results and normalizes null lists

package mealdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"recipe-finder-api/core/domain"
	apperrors "recipe-finder-api/core/errors"
	"recipe-finder-api/core/interfaces"
)

// DefaultBaseURL is the public v1 API root
const DefaultBaseURL = "https://www.themealdb.com/api/json/v1/1"

// maxBodyBytes caps how much of an upstream response is read
const maxBodyBytes = 8 << 20

// Endpoint names used for logs and metrics
const (
	EndpointSearch     = "search"
	EndpointLookup     = "lookup"
	EndpointCategory   = "filter_category"
	EndpointArea       = "filter_area"
	EndpointCategories = "categories"
	EndpointAreas      = "areas"
)

// Client talks to TheMealDB. It never retries; retry policy is the caller's.
type Client struct {
	baseURL string
	deps    interfaces.Dependencies
}

// NewClient creates a catalog client rooted at baseURL
func NewClient(baseURL string, deps interfaces.Dependencies) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		deps:    deps,
	}
}

type summaryRecord struct {
	ID    string `json:"idMeal"`
	Name  string `json:"strMeal"`
	Thumb string `json:"strMealThumb"`
}

type summaryEnvelope struct {
	Meals []summaryRecord `json:"meals"`
}

type categoryEnvelope struct {
	Categories []struct {
		ID          string `json:"idCategory"`
		Name        string `json:"strCategory"`
		Thumb       string `json:"strCategoryThumb"`
		Description string `json:"strCategoryDescription"`
	} `json:"categories"`
}

type areaEnvelope struct {
	Meals []struct {
		Name string `json:"strArea"`
	} `json:"meals"`
}

// Search finds meals whose name matches text
func (c *Client) Search(ctx context.Context, text string) domain.Result[[]domain.MealSummary] {
	return c.summaries(ctx, EndpointSearch, "/search.php?"+url.Values{"s": {text}}.Encode())
}

// ByCategory lists the meals of one category
func (c *Client) ByCategory(ctx context.Context, name string) domain.Result[[]domain.MealSummary] {
	return c.summaries(ctx, EndpointCategory, "/filter.php?"+url.Values{"c": {name}}.Encode())
}

// ByArea lists the meals of one area
func (c *Client) ByArea(ctx context.Context, name string) domain.Result[[]domain.MealSummary] {
	return c.summaries(ctx, EndpointArea, "/filter.php?"+url.Values{"a": {name}}.Encode())
}

// Lookup fetches one meal by id. An unknown id yields a nil detail, not an error.
func (c *Client) Lookup(ctx context.Context, id string) domain.Result[*domain.MealDetail] {
	body, upstreamErr := c.fetch(ctx, EndpointLookup, "/lookup.php?"+url.Values{"i": {id}}.Encode())
	if upstreamErr != nil {
		return domain.Fail[*domain.MealDetail](upstreamErr)
	}
	if !gjson.ValidBytes(body) {
		return domain.Fail[*domain.MealDetail](apperrors.Network(errors.New("invalid JSON in lookup response")))
	}

	record := gjson.GetBytes(body, "meals.0")
	if !record.IsObject() {
		return domain.Ok[*domain.MealDetail](nil)
	}
	return domain.Ok(parseMeal(record))
}

// Categories lists the category reference data
func (c *Client) Categories(ctx context.Context) domain.Result[[]domain.Category] {
	body, upstreamErr := c.fetch(ctx, EndpointCategories, "/categories.php")
	if upstreamErr != nil {
		return domain.Fail[[]domain.Category](upstreamErr)
	}

	var envelope categoryEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return domain.Fail[[]domain.Category](apperrors.Network(err))
	}

	categories := make([]domain.Category, 0, len(envelope.Categories))
	for _, rec := range envelope.Categories {
		categories = append(categories, domain.Category{
			ID:           rec.ID,
			Name:         rec.Name,
			ThumbnailURL: rec.Thumb,
			Description:  rec.Description,
		})
	}
	return domain.Ok(categories)
}

// Areas lists the area reference data
func (c *Client) Areas(ctx context.Context) domain.Result[[]domain.Area] {
	body, upstreamErr := c.fetch(ctx, EndpointAreas, "/list.php?a=list")
	if upstreamErr != nil {
		return domain.Fail[[]domain.Area](upstreamErr)
	}

	var envelope areaEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return domain.Fail[[]domain.Area](apperrors.Network(err))
	}

	areas := make([]domain.Area, 0, len(envelope.Meals))
	for _, rec := range envelope.Meals {
		areas = append(areas, domain.Area{Name: rec.Name})
	}
	return domain.Ok(areas)
}

func (c *Client) summaries(ctx context.Context, endpoint, path string) domain.Result[[]domain.MealSummary] {
	body, upstreamErr := c.fetch(ctx, endpoint, path)
	if upstreamErr != nil {
		return domain.Fail[[]domain.MealSummary](upstreamErr)
	}

	var envelope summaryEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return domain.Fail[[]domain.MealSummary](apperrors.Network(err))
	}

	// A null list means no results
	meals := make([]domain.MealSummary, 0, len(envelope.Meals))
	for _, rec := range envelope.Meals {
		meals = append(meals, domain.MealSummary{ID: rec.ID, Name: rec.Name, ThumbnailURL: rec.Thumb})
	}
	return domain.Ok(meals)
}

// fetch performs the GET and returns the raw body of a 2xx response
func (c *Client) fetch(ctx context.Context, endpoint, path string) (body []byte, upstreamErr *apperrors.UpstreamError) {
	start := time.Now()
	defer func() {
		c.observe(endpoint, start, upstreamErr)
	}()

	if c.deps.HTTPClient == nil {
		return nil, apperrors.Network(errors.New("HTTP client not configured"))
	}

	resp, err := c.deps.HTTPClient.Get(ctx, c.baseURL+path)
	if err != nil {
		return nil, mapTransportError(ctx, err)
	}
	defer resp.Body().Close()

	if resp.StatusCode() < 200 || resp.StatusCode() > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body(), maxBodyBytes))
		return nil, apperrors.HTTPStatus(resp.StatusCode())
	}

	body, err = io.ReadAll(io.LimitReader(resp.Body(), maxBodyBytes))
	if err != nil {
		return nil, mapTransportError(ctx, err)
	}
	return body, nil
}

func (c *Client) observe(endpoint string, start time.Time, upstreamErr *apperrors.UpstreamError) {
	duration := time.Since(start)
	outcome := "ok"
	if upstreamErr != nil {
		outcome = upstreamErr.Code
	}
	c.deps.MetricsOrNop().ObserveUpstream(endpoint, outcome, duration)

	fields := map[string]interface{}{
		"endpoint":    endpoint,
		"outcome":     outcome,
		"duration_ms": duration.Milliseconds(),
	}
	logger := c.deps.LoggerOrNop()
	switch {
	case upstreamErr == nil, upstreamErr.Code == apperrors.CodeAborted:
		logger.Debug("Upstream call completed", fields)
	default:
		fields["error"] = upstreamErr.Message
		logger.Warn("Upstream call failed", fields)
	}
}

// mapTransportError distinguishes caller cancellation from other failures
func mapTransportError(ctx context.Context, err error) *apperrors.UpstreamError {
	if errors.Is(ctx.Err(), context.Canceled) || errors.Is(err, context.Canceled) {
		return apperrors.Aborted()
	}
	return apperrors.Network(err)
}

// parseMeal converts a raw lookup record into a MealDetail
func parseMeal(record gjson.Result) *domain.MealDetail {
	str := func(key string) string {
		return record.Get(key).String()
	}

	return &domain.MealDetail{
		ID:           str("idMeal"),
		Name:         str("strMeal"),
		Category:     str("strCategory"),
		Area:         str("strArea"),
		Instructions: str("strInstructions"),
		ThumbnailURL: str("strMealThumb"),
		Tags:         domain.ParseTags(str("strTags")),
		YoutubeURL:   strings.TrimSpace(str("strYoutube")),
		SourceURL:    strings.TrimSpace(str("strSource")),
		Ingredients:  parseIngredients(record),
	}
}

// parseIngredients reads the indexed ingredient/measure slots, skipping blank ingredients
func parseIngredients(record gjson.Result) []domain.Ingredient {
	ingredients := make([]domain.Ingredient, 0)
	for i := 1; i <= domain.MaxIngredientSlots; i++ {
		name := strings.TrimSpace(record.Get(fmt.Sprintf("strIngredient%d", i)).String())
		if name == "" {
			continue
		}
		ingredients = append(ingredients, domain.Ingredient{
			Name:     name,
			Quantity: strings.TrimSpace(record.Get(fmt.Sprintf("strMeasure%d", i)).String()),
		})
	}
	return ingredients
}
