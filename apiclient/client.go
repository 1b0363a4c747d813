// ABOUTME: Typed client for the recipe finder proxy endpoints
// ABOUTME: Satisfies the browse Source so front ends can run against a remote server

package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/tidwall/gjson"

	"recipe-finder-api/core/domain"
	apperrors "recipe-finder-api/core/errors"
	"recipe-finder-api/core/interfaces"
	"recipe-finder-api/core/query"
)

// maxBodyBytes caps how much of a proxy response is read
const maxBodyBytes = 8 << 20

// Client calls a recipe finder server
type Client struct {
	baseURL string
	deps    interfaces.Dependencies
}

// New creates a client for the server at baseURL, e.g. http://localhost:8000
func New(baseURL string, deps interfaces.Dependencies) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		deps:    deps,
	}
}

// Categories fetches GET /categories
func (c *Client) Categories(ctx context.Context) domain.Result[[]domain.Category] {
	var body struct {
		Categories []domain.Category `json:"categories"`
	}
	if err := c.get(ctx, "/categories", &body); err != nil {
		return domain.Fail[[]domain.Category](err)
	}
	if body.Categories == nil {
		body.Categories = []domain.Category{}
	}
	return domain.Ok(body.Categories)
}

// Areas fetches GET /areas
func (c *Client) Areas(ctx context.Context) domain.Result[[]domain.Area] {
	var body struct {
		Areas []domain.Area `json:"areas"`
	}
	if err := c.get(ctx, "/areas", &body); err != nil {
		return domain.Fail[[]domain.Area](err)
	}
	if body.Areas == nil {
		body.Areas = []domain.Area{}
	}
	return domain.Ok(body.Areas)
}

// BaseMeals fetches GET /meals for state. Only non-empty parameters are sent;
// the page stays client-side.
func (c *Client) BaseMeals(ctx context.Context, state domain.SearchState) domain.Result[[]domain.MealSummary] {
	params := url.Values{}
	for _, p := range query.Encode(state) {
		if p.Key != query.KeyPage {
			params.Set(p.Key, p.Value)
		}
	}

	path := "/meals"
	if encoded := params.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var body struct {
		Meals []domain.MealSummary `json:"meals"`
	}
	if err := c.get(ctx, path, &body); err != nil {
		return domain.Fail[[]domain.MealSummary](err)
	}
	if body.Meals == nil {
		body.Meals = []domain.MealSummary{}
	}
	return domain.Ok(body.Meals)
}

// Meal fetches GET /meals/{id}. An unknown id yields Ok(nil).
func (c *Client) Meal(ctx context.Context, id string) domain.Result[*domain.MealDetail] {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.Fail[*domain.MealDetail](&apperrors.UpstreamError{
			Code:    apperrors.HTTPStatus(http.StatusBadRequest).Code,
			Message: "Missing meal id",
		})
	}

	var body struct {
		Meal *domain.MealDetail `json:"meal"`
	}
	if err := c.get(ctx, "/meals/"+url.PathEscape(id), &body); err != nil {
		return domain.Fail[*domain.MealDetail](err)
	}
	return domain.Ok(body.Meal)
}

// get decodes a 2xx JSON body into out. Failures carry the server's
// {"error"} message, falling back to the status text.
func (c *Client) get(ctx context.Context, path string, out interface{}) *apperrors.UpstreamError {
	if c.deps.HTTPClient == nil {
		return apperrors.Network(errors.New("HTTP client not configured"))
	}

	resp, err := c.deps.HTTPClient.Get(ctx, c.baseURL+path)
	if err != nil {
		if ctx.Err() != nil || errors.Is(err, context.Canceled) {
			return apperrors.Aborted()
		}
		return apperrors.Network(err)
	}
	defer resp.Body().Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body(), maxBodyBytes))
	if err != nil {
		if ctx.Err() != nil {
			return apperrors.Aborted()
		}
		return apperrors.Network(err)
	}

	if status := resp.StatusCode(); status < 200 || status > 299 {
		upstreamErr := apperrors.HTTPStatus(status)
		upstreamErr.Message = http.StatusText(status)
		if msg := gjson.GetBytes(raw, "error"); msg.Type == gjson.String && msg.String() != "" {
			upstreamErr.Message = msg.String()
		}
		c.deps.LoggerOrNop().Debug("Proxy call failed", map[string]interface{}{
			"path":   path,
			"status": status,
			"error":  upstreamErr.Message,
		})
		return upstreamErr
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return apperrors.Network(err)
	}
	return nil
}
