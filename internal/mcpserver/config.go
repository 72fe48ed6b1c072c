package mcpserver

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/erraggy/annodoc/aggregator"
)

// serverConfig holds all configurable MCP server defaults.
// Loaded once at startup from environment variables via loadConfig().
type serverConfig struct {
	// Cache settings.
	CacheEnabled       bool
	CacheMaxSize       int
	CacheTTL           time.Duration
	CacheSweepInterval time.Duration

	// Scan defaults, overridable per call.
	Strict      bool
	StrictPaths bool
	NoWarnings  bool
	Workers     int
	Collision   string

	// Result and input limits.
	DefaultLimit  int
	MaxLimit      int
	MaxInlineSize int64
}

// cfg is the active server configuration, initialized at package load time.
var cfg = loadConfig()

// loadConfig reads configuration from ANNODOC_* environment variables.
// Invalid values log a warning and fall back to the hardcoded default.
func loadConfig() *serverConfig {
	return &serverConfig{
		CacheEnabled:       envBool("ANNODOC_CACHE_ENABLED", true),
		CacheMaxSize:       envInt("ANNODOC_CACHE_MAX_SIZE", 10),
		CacheTTL:           envDuration("ANNODOC_CACHE_TTL", 15*time.Minute),
		CacheSweepInterval: envDuration("ANNODOC_CACHE_SWEEP_INTERVAL", 60*time.Second),
		Strict:             envBool("ANNODOC_STRICT", false),
		StrictPaths:        envBool("ANNODOC_STRICT_PATHS", false),
		NoWarnings:         envBool("ANNODOC_NO_WARNINGS", false),
		Workers:            envInt("ANNODOC_WORKERS", 0),
		Collision:          envStrategy("ANNODOC_COLLISION"),
		DefaultLimit:       envInt("ANNODOC_LIMIT", 100),
		MaxLimit:           envInt("ANNODOC_MAX_LIMIT", 1000),
		MaxInlineSize:      envInt64("ANNODOC_MAX_INLINE_SIZE", 10*1024*1024),
	}
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("invalid bool env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return b
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		slog.Warn("invalid int env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return n
}

func envInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n <= 0 {
		slog.Warn("invalid int env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return n
}

// envStrategy returns a collision strategy, or the default strategy when
// the variable is unset or invalid.
func envStrategy(key string) string {
	v := os.Getenv(key)
	if v == "" {
		return string(aggregator.DefaultStrategy)
	}
	if !aggregator.IsValidStrategy(v) {
		slog.Warn("invalid strategy env var, using default", "key", key, "value", v, "default", aggregator.DefaultStrategy) //nolint:gosec // G706: values are structured log fields, not format strings
		return string(aggregator.DefaultStrategy)
	}
	return v
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		slog.Warn("invalid duration env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return d
}
