// Package infrastructure provides concrete implementations of the interfaces
// defined in the core package. These implementations handle external concerns
// such as the meal catalog, caching, HTTP communication, logging and metrics.
//
// The infrastructure package is organized by technical concern:
//
// - mealdb: TheMealDB catalog client (interfaces.Catalog)
// - cache/memory: In-memory cache backed by go-cache
// - cache/redis: Redis-based cache implementation
// - cache/sqlite: SQLite-backed persistent cache
// - http/standard: Standard library HTTP client with bounded retries
// - logger/standard: Structured leveled logger backed by logrus
// - metrics: Prometheus upstream and cache counters
//
// # Cache Implementations
//
// Memory Cache Example:
//
//	cache := memory.NewMemoryCache()
//	err := cache.Set(ctx, "meal:52772", data, 5*time.Minute)
//	value, err := cache.Get(ctx, "meal:52772")
//
// Redis Cache Example:
//
//	cache, err := redis.NewRedisCache(config.RedisConfig{
//	    Address:   "localhost:6379",
//	    KeyPrefix: "recipes:",
//	})
//
// # Catalog Client
//
//	client := mealdb.NewClient(mealdb.DefaultBaseURL, interfaces.Dependencies{
//	    HTTPClient: standard.NewStandardHTTPClient(10 * time.Second),
//	    Logger:     logger,
//	})
//	result := client.Search(ctx, "chicken")
//	if !result.OK {
//	    // result.Err.Code is NETWORK_ERROR, ABORTED or HTTP_<status>
//	}
//
// # Logger
//
// The logger supports structured logging with fields:
//
//	logger := standard.NewWithOptions(standard.Options{Level: "debug", Format: "json"})
//	logger.Info("Resolving working set", map[string]interface{}{
//	    "plan":       "intersect",
//	    "categories": 2,
//	})
package infrastructure
