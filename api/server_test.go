package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipe-finder-api/core/domain"
	apperrors "recipe-finder-api/core/errors"
)

type stubSource struct {
	meals func(state domain.SearchState) domain.Result[[]domain.MealSummary]
	meal  func(id string) domain.Result[*domain.MealDetail]
}

func (s *stubSource) BaseMeals(ctx context.Context, state domain.SearchState) domain.Result[[]domain.MealSummary] {
	if s.meals != nil {
		return s.meals(state)
	}
	return domain.Ok([]domain.MealSummary{})
}

func (s *stubSource) Meal(ctx context.Context, id string) domain.Result[*domain.MealDetail] {
	if s.meal != nil {
		return s.meal(id)
	}
	return domain.Ok[*domain.MealDetail](nil)
}

func (s *stubSource) Categories(ctx context.Context) domain.Result[[]domain.Category] {
	return domain.Fail[[]domain.Category](apperrors.HTTPStatus(502))
}

func (s *stubSource) Areas(ctx context.Context) domain.Result[[]domain.Area] {
	return domain.Ok([]domain.Area{{Name: "British"}})
}

func newTestRouter(cfg APIConfig, source *stubSource) http.Handler {
	api, router := NewAPIWithMiddleware(cfg)
	RegisterHandlers(api, source)
	return router
}

func serve(h http.Handler, method, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestNewAPI(t *testing.T) {
	api, router := NewAPI()

	require.NotNil(t, api)
	require.NotNil(t, router)
	assert.Equal(t, "Recipe Finder API", api.OpenAPI().Info.Title)
	assert.Equal(t, "1.0.0", api.OpenAPI().Info.Version)
}

func TestAPI_OpenAPIEndpoint(t *testing.T) {
	_, router := NewAPI()

	rec := serve(router, "GET", "/openapi.json")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/vnd.oai.openapi+json", rec.Header().Get("Content-Type"))
}

func TestAPI_DocsEndpoint(t *testing.T) {
	_, router := NewAPI()

	rec := serve(router, "GET", "/docs")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html", rec.Header().Get("Content-Type"))
}

func TestAPI_RegistersProxyRoutes(t *testing.T) {
	api, _ := NewAPI()
	RegisterHandlers(api, &stubSource{})

	paths := api.OpenAPI().Paths
	for _, path := range []string{"/categories", "/areas", "/meals", "/meals/{id}"} {
		require.Contains(t, paths, path)
		assert.NotNil(t, paths[path].Get, "GET %s", path)
	}
}

func TestAPI_MethodNotAllowed(t *testing.T) {
	router := newTestRouter(APIConfig{}, &stubSource{})

	for _, method := range []string{"POST", "PUT", "DELETE"} {
		rec := serve(router, method, "/meals")

		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code, method)
		assert.Equal(t, "GET", rec.Header().Get("Allow"))
		assert.JSONEq(t, `{"error":"Method not allowed"}`, rec.Body.String())
	}
}

func TestAPI_NotFound(t *testing.T) {
	router := newTestRouter(APIConfig{}, &stubSource{})

	rec := serve(router, "GET", "/nope")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Not found"}`, rec.Body.String())
}

func TestAPI_MealsWithoutParams(t *testing.T) {
	router := newTestRouter(APIConfig{}, &stubSource{})

	rec := serve(router, "GET", "/meals")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"meals":[]}`, rec.Body.String())
}

func TestAPI_BlankMealID(t *testing.T) {
	router := newTestRouter(APIConfig{}, &stubSource{})

	rec := serve(router, "GET", "/meals/%20")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Missing meal id"}`, rec.Body.String())
}

func TestAPI_EmptyMealIDSegment(t *testing.T) {
	router := newTestRouter(APIConfig{}, &stubSource{})

	rec := serve(router, "GET", "/meals/")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Missing meal id"}`, rec.Body.String())
}

func TestAPI_RepeatedFilterKeysAreJoined(t *testing.T) {
	var got domain.SearchState
	router := newTestRouter(APIConfig{}, &stubSource{
		meals: func(state domain.SearchState) domain.Result[[]domain.MealSummary] {
			got = state
			return domain.Ok([]domain.MealSummary{})
		},
	})

	rec := serve(router, "GET", "/meals?categories=Beef&categories=Chicken,Dessert&areas=British&areas=Thai")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"Beef", "Chicken", "Dessert"}, got.Categories)
	assert.Equal(t, []string{"British", "Thai"}, got.Areas)

	rec = serve(router, "GET", "/meals?categories=Beef")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"Beef"}, got.Categories)
	assert.Empty(t, got.Areas)
}

func TestAPI_UpstreamFailure(t *testing.T) {
	router := newTestRouter(APIConfig{}, &stubSource{})

	rec := serve(router, "GET", "/categories")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Request failed with status 502"}`, rec.Body.String())
}

func TestAPI_PanicBecomesUnknownError(t *testing.T) {
	source := &stubSource{
		meal: func(id string) domain.Result[*domain.MealDetail] {
			panic("boom")
		},
	}
	router := newTestRouter(APIConfig{}, source)

	rec := serve(router, "GET", "/meals/52772")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Unknown error"}`, rec.Body.String())
}

func TestAPI_RateLimit(t *testing.T) {
	router := newTestRouter(APIConfig{RateLimit: 0.01, RateBurst: 1}, &stubSource{})

	first := serve(router, "GET", "/areas")
	second := serve(router, "GET", "/areas")

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.JSONEq(t, `{"error":"Too many requests"}`, second.Body.String())
	assert.NotEmpty(t, second.Header().Get("Retry-After"))
}

func TestAPI_Metrics(t *testing.T) {
	metrics := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("# metrics"))
	})
	router := newTestRouter(APIConfig{Metrics: metrics}, &stubSource{})

	rec := serve(router, "GET", "/metrics")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "# metrics", rec.Body.String())

	without := newTestRouter(APIConfig{}, &stubSource{})
	assert.Equal(t, http.StatusNotFound, serve(without, "GET", "/metrics").Code)
}

func TestAPI_CORS(t *testing.T) {
	router := newTestRouter(APIConfig{}, &stubSource{})

	req := httptest.NewRequest("GET", "/areas", nil)
	req.Header.Set("Origin", "https://recipes.example")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
