// Package core contains the business logic of the recipe finder.
// It is framework-agnostic and can be used independently of any web
// framework or infrastructure concerns.
//
// The core package is organized into several sub-packages:
//
// - domain: Meal models, SearchState and the Result type
// - query: Codec between URL query values and SearchState
// - meals: Fetch planning, merge/intersect, pagination and the cached catalog
// - browse: List screen sessions with per-page detail enrichment
// - urlstate: URL-synchronized state controller with debounced search
// - errors: Coded upstream errors and validation errors
// - interfaces: Contracts for external dependencies (catalog, cache, HTTP, logger, metrics)
//
// # Usage Example
//
//	deps := interfaces.Dependencies{
//	    Cache:      myCache,      // implements interfaces.Cache
//	    HTTPClient: myHTTPClient, // implements interfaces.HTTPClient
//	    Logger:     myLogger,     // implements interfaces.Logger
//	}
//
//	catalog := meals.NewCachedCatalog(mealdb.NewClient("", deps), deps, 0, 0)
//	service := meals.NewService(catalog, deps, meals.DefaultMaxFanOut)
//
//	state := query.DecodeString("categories=Beef,Chicken&areas=British")
//	result := service.BaseMeals(ctx, state)
//	page := meals.Paginate(result.Data, state.Page, meals.DefaultPageSize)
package core
