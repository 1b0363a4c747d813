// ABOUTME: Huma API server configuration and setup
// ABOUTME: Provides OpenAPI documentation, middleware and JSON error routing

package api

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"recipe-finder-api/api/handlers"
	"recipe-finder-api/api/middleware"
	"recipe-finder-api/core/interfaces"
)

// APIConfig holds configuration for the API
type APIConfig struct {
	Logger interfaces.Logger

	// RateLimit is requests per second per IP; zero disables limiting
	RateLimit float64
	RateBurst int

	// Metrics is served at /metrics when set
	Metrics http.Handler
}

// NewAPI creates a Huma API with the default middleware and no rate limit
func NewAPI() (huma.API, chi.Router) {
	return NewAPIWithMiddleware(APIConfig{})
}

// NewAPIWithMiddleware creates a new API with middleware configured
func NewAPIWithMiddleware(cfg APIConfig) (huma.API, chi.Router) {
	router := chi.NewRouter()

	// CORS first so preflight requests skip everything else
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{middleware.RequestIDHeader, "Retry-After"},
		MaxAge:         300,
	}))

	logger := cfg.Logger
	if logger == nil {
		logger = interfaces.NopLogger{}
	} else {
		router.Use(middleware.RequestLoggingMiddleware(logger))
	}
	router.Use(middleware.Recoverer(logger))

	if cfg.RateLimit > 0 {
		limiter := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateBurst)
		router.Use(middleware.RateLimitMiddleware(limiter))
	}

	router.Use(chimw.Compress(5))

	router.MethodNotAllowed(methodNotAllowed)
	router.NotFound(notFound)

	// An empty {id} segment never reaches the huma route
	router.Get("/meals/", missingMealID)

	if cfg.Metrics != nil {
		router.Method(http.MethodGet, "/metrics", cfg.Metrics)
	}

	config := huma.DefaultConfig("Recipe Finder API", "1.0.0")
	config.Info.Description = "Read-only proxy over the meal catalog: search, category and area filters, meal details"

	// Response bodies keep their exact wire shape, without a $schema link
	config.CreateHooks = nil

	// The OpenAPI spec is served at /openapi.json and the docs UI at /docs
	api := humachi.New(router, config)

	return api, router
}

// RegisterHandlers registers every proxy endpoint backed by source
func RegisterHandlers(api huma.API, source handlers.MealSource) {
	handlers.NewReferenceHandler(source).RegisterRoutes(api)
	handlers.NewMealsHandler(source).RegisterRoutes(api)
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Allow", http.MethodGet)
	writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
}

func missingMealID(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusBadRequest, handlers.MissingMealIDMessage)
}

func notFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "Not found")
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write([]byte(`{"error":"` + message + `"}`))
}
