// ABOUTME: Main entry point for the Recipe Finder API server
// ABOUTME: Wires together all components and starts the HTTP server

package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"recipe-finder-api/api"
	"recipe-finder-api/api/middleware"
	"recipe-finder-api/core/interfaces"
	"recipe-finder-api/core/meals"
	"recipe-finder-api/infrastructure/cache/memory"
	"recipe-finder-api/infrastructure/cache/redis"
	"recipe-finder-api/infrastructure/cache/sqlite"
	stdhttp "recipe-finder-api/infrastructure/http/standard"
	stdlogger "recipe-finder-api/infrastructure/logger/standard"
	"recipe-finder-api/infrastructure/mealdb"
	"recipe-finder-api/infrastructure/metrics"
	"recipe-finder-api/pkg/config"
	"recipe-finder-api/pkg/featureflags"
)

func main() {
	// Load configuration
	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Create logger
	logger := stdlogger.NewWithOptions(stdlogger.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		File:   cfg.Log.File,
	})
	errorLog := logger.Writer()
	defer errorLog.Close()

	flags := featureflags.NewEnvManager("FEATURE_")
	ctx := context.Background()

	logger.Info("Starting Recipe Finder API", map[string]interface{}{
		"port":       cfg.Server.Port,
		"cache_type": cfg.Cache.Type,
		"upstream":   cfg.Upstream.BaseURL,
		"flags":      flags.GetAllFlags(),
	})

	var recorder *metrics.Prometheus
	if flags.IsEnabled(ctx, featureflags.MetricsEnabled) {
		recorder = metrics.NewPrometheus()
	}

	// Create HTTP client
	httpClient := stdhttp.NewStandardHTTPClient(
		cfg.UpstreamTimeout(),
		stdhttp.WithMaxAttempts(cfg.Upstream.MaxAttempts),
		stdhttp.WithTransport(&middleware.LoggingRoundTripper{Logger: logger}),
	)

	// Create dependencies container
	deps := interfaces.Dependencies{
		HTTPClient: httpClient,
		Logger:     logger,
	}
	if recorder != nil {
		deps.Metrics = recorder
	}

	var catalog interfaces.Catalog = mealdb.NewClient(cfg.Upstream.BaseURL, deps)
	if flags.IsEnabled(ctx, featureflags.CacheEnabled) {
		cache, closeCache := newCache(cfg, logger)
		defer closeCache()
		deps.Cache = cache
		catalog = meals.NewCachedCatalog(catalog, deps, cfg.DetailTTL(), cfg.ReferenceTTL())
	}

	service := meals.NewService(catalog, deps, cfg.Browse.MaxFanOut)

	// Create API with middleware
	apiConfig := api.APIConfig{
		Logger: logger,
	}
	if flags.IsEnabled(ctx, featureflags.RateLimitEnabled) {
		apiConfig.RateLimit = cfg.RateLimit.RPS
		apiConfig.RateBurst = cfg.RateLimit.Burst
	}
	if recorder != nil {
		apiConfig.Metrics = recorder.Handler()
	}
	humaAPI, router := api.NewAPIWithMiddleware(apiConfig)
	api.RegisterHandlers(humaAPI, service)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorLog:     log.New(errorLog, "", 0),
	}

	// Start server in a goroutine
	go func() {
		logger.Info("HTTP server starting", map[string]interface{}{
			"address": srv.Addr,
		})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", map[string]interface{}{
				"error": err.Error(),
			})
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...", nil)

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	logger.Info("Server stopped", nil)
}

// loadConfig reads CONFIG_FILE when set, otherwise the environment alone
func loadConfig() (*config.Config, error) {
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		return config.LoadFile(path)
	}
	return config.LoadFromEnv()
}

// newCache builds the configured backend. Redis and SQLite fall back to
// memory when they cannot be opened.
func newCache(cfg *config.Config, logger interfaces.Logger) (interfaces.Cache, func()) {
	fallback := func() (interfaces.Cache, func()) {
		expiration := time.Duration(cfg.Cache.Memory.DefaultExpiration) * time.Second
		return memory.NewMemoryCacheWithExpiration(expiration, 10*time.Minute), func() {}
	}

	switch cfg.Cache.Type {
	case "redis":
		redisCache, err := redis.NewRedisCache(cfg.Cache.Redis)
		if err != nil {
			logger.Error("Failed to create Redis cache, falling back to memory", map[string]interface{}{
				"error": err.Error(),
			})
			return fallback()
		}
		logger.Info("Using Redis cache", map[string]interface{}{
			"address": cfg.Cache.Redis.Address,
		})
		return redisCache, func() { redisCache.Close() }

	case "sqlite":
		sqliteCache, err := sqlite.NewSQLiteCacheWithLogger(cfg.Cache.SQLite.Path, logger)
		if err != nil {
			logger.Error("Failed to create SQLite cache, falling back to memory", map[string]interface{}{
				"error": err.Error(),
			})
			return fallback()
		}
		fields := map[string]interface{}{"path": cfg.Cache.SQLite.Path}
		if stats, err := sqliteCache.Stats(); err == nil {
			for k, v := range stats {
				fields[k] = v
			}
		}
		logger.Info("Using SQLite cache", fields)
		return sqliteCache, func() { sqliteCache.Close() }

	default:
		logger.Info("Using memory cache", nil)
		return fallback()
	}
}

func init() {
	fmt.Println(`
    ____            _              _______           __
   / __ \___  _____(_)___  ___    / ____(_)___  ____/ /__  _____
  / /_/ / _ \/ ___/ / __ \/ _ \  / /_  / / __ \/ __  / _ \/ ___/
 / _, _/  __/ /__/ / /_/ /  __/ / __/ / / / / / /_/ /  __/ /
/_/ |_|\___/\___/_/ .___/\___/ /_/   /_/_/ /_/\__,_/\___/_/
                 /_/
	`)
}
