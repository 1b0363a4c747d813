// ABOUTME: Configuration management for the application with environment variable and TOML support
// ABOUTME: Defines configuration structures for server, upstream, cache, browsing and logging

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config holds all application configuration
type Config struct {
	// Server contains HTTP server configuration
	Server ServerConfig `toml:"server"`

	// Upstream contains catalog client configuration
	Upstream UpstreamConfig `toml:"upstream"`

	// Cache contains cache configuration
	Cache CacheConfig `toml:"cache"`

	// Browse contains list and detail fetching configuration
	Browse BrowseConfig `toml:"browse"`

	// RateLimit contains per-client request limits
	RateLimit RateLimitConfig `toml:"rate_limit"`

	// Log contains logger configuration
	Log LogConfig `toml:"log"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	// Port is the HTTP server port
	Port string `toml:"port"`
}

// UpstreamConfig holds catalog client configuration
type UpstreamConfig struct {
	// BaseURL is the catalog API root
	BaseURL string `toml:"base_url"`

	// TimeoutSeconds bounds each upstream request
	TimeoutSeconds int `toml:"timeout_seconds"`

	// MaxAttempts is how many times a request is tried; 1 disables retries
	MaxAttempts int `toml:"max_attempts"`
}

// CacheConfig holds cache backend configuration
type CacheConfig struct {
	// Type specifies the cache backend (memory/redis/sqlite)
	Type string `toml:"type"`

	// DetailTTLSeconds is the freshness window of a meal lookup
	DetailTTLSeconds int `toml:"detail_ttl_seconds"`

	// ReferenceTTLSeconds is the freshness window of the categories and areas lists
	ReferenceTTLSeconds int `toml:"reference_ttl_seconds"`

	// Redis contains Redis-specific configuration
	Redis RedisConfig `toml:"redis"`

	// Memory contains in-memory cache configuration
	Memory MemoryConfig `toml:"memory"`

	// SQLite contains SQLite-specific configuration
	SQLite SQLiteConfig `toml:"sqlite"`
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	// Address is the Redis server address
	Address string `toml:"address"`

	// Password is the Redis authentication password
	Password string `toml:"password"`

	// DB is the Redis database number
	DB int `toml:"db"`

	// KeyPrefix namespaces every key
	KeyPrefix string `toml:"key_prefix"`
}

// MemoryConfig holds in-memory cache configuration
type MemoryConfig struct {
	// DefaultExpiration is the default TTL for cache entries in seconds
	DefaultExpiration int `toml:"default_expiration"`
}

// SQLiteConfig holds SQLite cache configuration
type SQLiteConfig struct {
	// Path is the database file
	Path string `toml:"path"`
}

// BrowseConfig holds aggregation settings
type BrowseConfig struct {
	// MaxFanOut bounds concurrent per-name filter calls and detail lookups
	MaxFanOut int `toml:"max_fan_out"`

	// PageSize is the number of meals per page
	PageSize int `toml:"page_size"`

	// SearchDebounceMS is the trailing debounce window for search text
	SearchDebounceMS int `toml:"search_debounce_ms"`
}

// RateLimitConfig holds per-client token bucket settings
type RateLimitConfig struct {
	// RPS is the sustained request rate per client
	RPS float64 `toml:"rps"`

	// Burst is the bucket size
	Burst int `toml:"burst"`
}

// LogConfig holds logger configuration
type LogConfig struct {
	// Level is debug, info, warn or error
	Level string `toml:"level"`

	// Format is text or json
	Format string `toml:"format"`

	// File enables rotated file output; empty logs to stdout
	File string `toml:"file"`
}

// Default returns the configuration used when nothing is set
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: "8000",
		},
		Upstream: UpstreamConfig{
			BaseURL:        "https://www.themealdb.com/api/json/v1/1",
			TimeoutSeconds: 10,
			MaxAttempts:    1,
		},
		Cache: CacheConfig{
			Type:                "memory",
			DetailTTLSeconds:    300,
			ReferenceTTLSeconds: 600,
			Redis: RedisConfig{
				Address:   "localhost:6379",
				KeyPrefix: "recipes:",
			},
			Memory: MemoryConfig{
				DefaultExpiration: 3600,
			},
			SQLite: SQLiteConfig{
				Path: "recipes_cache.db",
			},
		},
		Browse: BrowseConfig{
			MaxFanOut:        8,
			PageSize:         12,
			SearchDebounceMS: 300,
		},
		RateLimit: RateLimitConfig{
			RPS:   10,
			Burst: 20,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	cfg := Default()
	applyEnv(cfg)
	return cfg, nil
}

// LoadFile reads a TOML file over the defaults, then applies environment overrides
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	applyEnv(cfg)
	return cfg, nil
}

// applyEnv overrides every field whose environment variable is set
func applyEnv(cfg *Config) {
	cfg.Server.Port = getEnvOrDefault("PORT", cfg.Server.Port)

	cfg.Upstream.BaseURL = getEnvOrDefault("MEALDB_BASE_URL", cfg.Upstream.BaseURL)
	cfg.Upstream.TimeoutSeconds = getEnvAsIntOrDefault("UPSTREAM_TIMEOUT_SECONDS", cfg.Upstream.TimeoutSeconds)
	cfg.Upstream.MaxAttempts = getEnvAsIntOrDefault("UPSTREAM_MAX_ATTEMPTS", cfg.Upstream.MaxAttempts)

	cfg.Cache.Type = strings.ToLower(getEnvOrDefault("CACHE_TYPE", cfg.Cache.Type))
	cfg.Cache.DetailTTLSeconds = getEnvAsIntOrDefault("DETAIL_TTL_SECONDS", cfg.Cache.DetailTTLSeconds)
	cfg.Cache.ReferenceTTLSeconds = getEnvAsIntOrDefault("REFERENCE_TTL_SECONDS", cfg.Cache.ReferenceTTLSeconds)
	cfg.Cache.Redis.Address = getEnvOrDefault("REDIS_ADDRESS", cfg.Cache.Redis.Address)
	cfg.Cache.Redis.Password = getEnvOrDefault("REDIS_PASSWORD", cfg.Cache.Redis.Password)
	cfg.Cache.Redis.DB = getEnvAsIntOrDefault("REDIS_DB", cfg.Cache.Redis.DB)
	cfg.Cache.Redis.KeyPrefix = getEnvOrDefault("REDIS_KEY_PREFIX", cfg.Cache.Redis.KeyPrefix)
	cfg.Cache.Memory.DefaultExpiration = getEnvAsIntOrDefault("MEMORY_CACHE_EXPIRATION", cfg.Cache.Memory.DefaultExpiration)
	cfg.Cache.SQLite.Path = getEnvOrDefault("SQLITE_CACHE_PATH", cfg.Cache.SQLite.Path)

	cfg.Browse.MaxFanOut = getEnvAsIntOrDefault("MAX_FAN_OUT", cfg.Browse.MaxFanOut)
	cfg.Browse.PageSize = getEnvAsIntOrDefault("PAGE_SIZE", cfg.Browse.PageSize)
	cfg.Browse.SearchDebounceMS = getEnvAsIntOrDefault("SEARCH_DEBOUNCE_MS", cfg.Browse.SearchDebounceMS)

	cfg.RateLimit.RPS = getEnvAsFloatOrDefault("RATE_LIMIT_RPS", cfg.RateLimit.RPS)
	cfg.RateLimit.Burst = getEnvAsIntOrDefault("RATE_LIMIT_BURST", cfg.RateLimit.Burst)

	cfg.Log.Level = getEnvOrDefault("LOG_LEVEL", cfg.Log.Level)
	cfg.Log.Format = getEnvOrDefault("LOG_FORMAT", cfg.Log.Format)
	cfg.Log.File = getEnvOrDefault("LOG_FILE", cfg.Log.File)
}

// getEnvOrDefault returns the environment variable value or a default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault returns the environment variable as int or a default
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsFloatOrDefault returns the environment variable as float64 or a default
func getEnvAsFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// UpstreamTimeout returns the per-request upstream timeout
func (c *Config) UpstreamTimeout() time.Duration {
	return time.Duration(c.Upstream.TimeoutSeconds) * time.Second
}

// DetailTTL returns the lookup freshness window
func (c *Config) DetailTTL() time.Duration {
	return time.Duration(c.Cache.DetailTTLSeconds) * time.Second
}

// ReferenceTTL returns the categories/areas freshness window
func (c *Config) ReferenceTTL() time.Duration {
	return time.Duration(c.Cache.ReferenceTTLSeconds) * time.Second
}

// SearchDebounce returns the search text debounce window
func (c *Config) SearchDebounce() time.Duration {
	return time.Duration(c.Browse.SearchDebounceMS) * time.Millisecond
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return errors.New("port cannot be empty")
	}

	if c.Upstream.BaseURL == "" {
		return errors.New("upstream base URL cannot be empty")
	}

	if c.Upstream.TimeoutSeconds < 1 {
		return errors.New("upstream timeout must be at least 1 second")
	}

	if c.Upstream.MaxAttempts < 1 {
		return errors.New("upstream max attempts must be at least 1")
	}

	switch c.Cache.Type {
	case "memory", "redis", "sqlite":
	default:
		return errors.New("cache type must be 'memory', 'redis' or 'sqlite'")
	}

	if c.Cache.Type == "redis" && c.Cache.Redis.Address == "" {
		return errors.New("redis address cannot be empty when using redis cache")
	}

	if c.Cache.Type == "sqlite" && c.Cache.SQLite.Path == "" {
		return errors.New("sqlite path cannot be empty when using sqlite cache")
	}

	if c.Cache.DetailTTLSeconds < 0 || c.Cache.ReferenceTTLSeconds < 0 {
		return errors.New("cache TTLs cannot be negative")
	}

	if c.Browse.MaxFanOut < 1 {
		return errors.New("max fan-out must be at least 1")
	}

	if c.Browse.PageSize < 1 {
		return errors.New("page size must be at least 1")
	}

	if c.Browse.SearchDebounceMS < 0 {
		return errors.New("search debounce cannot be negative")
	}

	if c.RateLimit.RPS <= 0 || c.RateLimit.Burst < 1 {
		return errors.New("rate limit requires a positive rate and a burst of at least 1")
	}

	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return errors.New("log format must be 'text' or 'json'")
	}

	return nil
}
