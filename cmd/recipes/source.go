// ABOUTME: Command environment: config, logger, feature flags and the meal source
// ABOUTME: Reads the catalog in-process or talks to a running server

package main

import (
	"context"
	"os"
	"time"

	"github.com/urfave/cli/v3"

	"recipe-finder-api/api/middleware"
	"recipe-finder-api/apiclient"
	"recipe-finder-api/core/browse"
	apperrors "recipe-finder-api/core/errors"
	"recipe-finder-api/core/interfaces"
	"recipe-finder-api/core/meals"
	"recipe-finder-api/infrastructure/cache/memory"
	stdhttp "recipe-finder-api/infrastructure/http/standard"
	stdlogger "recipe-finder-api/infrastructure/logger/standard"
	"recipe-finder-api/infrastructure/mealdb"
	"recipe-finder-api/pkg/config"
	"recipe-finder-api/pkg/featureflags"
)

// environment is what every command needs
type environment struct {
	cfg    *config.Config
	logger interfaces.Logger
	flags  featureflags.Manager
	source browse.Source
	remote bool
}

func openEnvironment(c *cli.Command) (*environment, error) {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return nil, apperrors.WrapError(err, "loading config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, apperrors.WrapError(err, "invalid config")
	}

	logger := stdlogger.NewWithOptions(stdlogger.Options{
		Level:  c.String("log-level"),
		Format: cfg.Log.Format,
		Output: os.Stderr,
	})

	httpClient := stdhttp.NewStandardHTTPClient(
		cfg.UpstreamTimeout(),
		stdhttp.WithMaxAttempts(cfg.Upstream.MaxAttempts),
		stdhttp.WithTransport(&middleware.LoggingRoundTripper{Logger: logger}),
	)
	deps := interfaces.Dependencies{
		HTTPClient: httpClient,
		Logger:     logger,
	}

	env := &environment{
		cfg:    cfg,
		logger: logger,
		flags:  featureflags.NewEnvManager("FEATURE_"),
	}

	if apiURL := c.String("api"); apiURL != "" {
		env.source = apiclient.New(apiURL, deps)
		env.remote = true
		return env, nil
	}

	var catalog interfaces.Catalog = mealdb.NewClient(cfg.Upstream.BaseURL, deps)
	if env.flags.IsEnabled(context.Background(), featureflags.CacheEnabled) {
		deps.Cache = memory.NewMemoryCacheWithExpiration(cfg.ReferenceTTL(), 10*time.Minute)
		catalog = meals.NewCachedCatalog(catalog, deps, cfg.DetailTTL(), cfg.ReferenceTTL())
	}
	env.source = meals.NewService(catalog, deps, cfg.Browse.MaxFanOut)
	return env, nil
}

// withFlags carries the environment's flag manager on ctx
func (e *environment) withFlags(ctx context.Context) context.Context {
	return featureflags.WithManager(ctx, e.flags)
}

// sessionOptions maps configuration onto a browse session. Flags are read
// from the manager on ctx.
func (e *environment) sessionOptions(ctx context.Context) browse.Options {
	return browse.Options{
		PageSize:     e.cfg.Browse.PageSize,
		DetailTTL:    e.cfg.DetailTTL(),
		ReferenceTTL: e.cfg.ReferenceTTL(),
		MaxFanOut:    e.cfg.Browse.MaxFanOut,
		SkipDetails:  !featureflags.IsEnabled(ctx, featureflags.DetailEnrichment),
		Logger:       e.logger,
	}
}

// callTimeout bounds one command's wait for data
func (e *environment) callTimeout() time.Duration {
	return 2*e.cfg.UpstreamTimeout() + 5*time.Second
}
