// Package api provides the HTTP proxy layer of the recipe finder.
// It uses the Huma framework on a chi router for OpenAPI documentation
// and typed handlers.
//
// # Architecture
//
// - server.go: Huma API configuration, middleware and JSON error routing
// - handlers/: the /categories, /areas, /meals and /meals/{id} endpoints
// - middleware/: request logging, panic recovery and per-IP rate limiting
//
// # Endpoints
//
// Every endpoint is GET only. Other methods answer 405 with an
// "Allow: GET" header.
//
//	GET /categories   {"categories": [...]}
//	GET /areas        {"areas": [...]}
//	GET /meals        {"meals": [...]}   search, categories, areas query params
//	GET /meals/{id}   {"meal": {...} | null}
//
// The OpenAPI spec is at /openapi.json and the docs UI at /docs.
//
// # Usage Example
//
//	humaAPI, router := api.NewAPIWithMiddleware(api.APIConfig{
//	    Logger:    logger,
//	    RateLimit: 10,
//	    RateBurst: 20,
//	})
//	api.RegisterHandlers(humaAPI, mealService)
//
//	http.ListenAndServe(":8000", router)
//
// # Error Handling
//
// Errors share one body shape:
//
//	{"error": "Missing meal id"}
//
// A blank meal id is 400, an upstream 404 is 404, and every other upstream
// failure is 500 with the upstream message. Panics are recovered as
// 500 {"error": "Unknown error"}.
package api
