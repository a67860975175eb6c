package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Browser   BrowserConfig
	Retail    RetailConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig
	Cache     CacheConfig
	Log       LogConfig
	CORS      CORSConfig
}

// ServerConfig controls the HTTP server.
type ServerConfig struct {
	Host string // default: "0.0.0.0"
	Port int    // default: 8080
	Mode string // "debug", "release", "test"; default: "release"
}

// BrowserConfig controls the Rod browser instance.
type BrowserConfig struct {
	// Headless controls whether the browser runs headless.
	Headless bool // default: true

	// DefaultProxy is the default proxy URL for all navigation.
	DefaultProxy string

	// NoSandbox disables Chrome's sandbox (needed in Docker).
	NoSandbox bool // default: false

	// BrowserBin overrides the Chromium binary path.
	BrowserBin string

	// Stealth toggles stealth JS injection on new pages.
	Stealth bool // default: true
}

// RetailConfig controls retailer navigation and extraction.
type RetailConfig struct {
	// NavigationTimeout is the max time for a single search-page navigation.
	NavigationTimeout time.Duration // default: 15s

	// SelectorTimeout is the max time to wait for a retailer's results
	// container to appear after navigation.
	SelectorTimeout time.Duration // default: 10s

	// MaxRecords caps how many product records one retailer contributes
	// per shopping-list item.
	MaxRecords int // default: 3

	// RequestTimeout bounds one whole compare request across all items
	// and retailers. Zero disables the bound.
	RequestTimeout time.Duration // default: 120s

	// BlockedResourceTypes lists page resource types to block during
	// retailer navigation. default: ["Image", "Stylesheet", "Font", "Media"]
	BlockedResourceTypes []string
}

// AuthConfig controls API key authentication.
type AuthConfig struct {
	// Enabled toggles API key authentication.
	Enabled bool // default: false

	// APIKeys is the list of valid API keys.
	APIKeys []string
}

// RateLimitConfig controls per-identity rate limiting.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate per identity.
	RequestsPerSecond float64 // default: 5

	// Burst is the maximum burst size per identity.
	Burst int // default: 10
}

// CacheConfig controls the per-retailer query cache.
type CacheConfig struct {
	// MaxEntries is the maximum number of cached query results.
	MaxEntries int // default: 500

	// MaxAge is how long a cached query result stays fresh.
	// Zero disables caching.
	MaxAge time.Duration // default: 5m
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string // default: "info"
	Format string // "json" or "text"; default: "json"
}

// CORSConfig controls cross-origin access for the frontend.
type CORSConfig struct {
	// AllowedOrigins lists origins permitted to call the API.
	AllowedOrigins []string
}

// Load reads configuration from environment variables with sane defaults.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Host: envOr("CARTSCOUT_HOST", "0.0.0.0"),
			Port: envIntOr("CARTSCOUT_PORT", 8080),
			Mode: envOr("CARTSCOUT_MODE", "release"),
		},
		Browser: BrowserConfig{
			Headless:     envBoolOr("CARTSCOUT_HEADLESS", true),
			DefaultProxy: os.Getenv("CARTSCOUT_PROXY"),
			NoSandbox:    envBoolOr("CARTSCOUT_NO_SANDBOX", false),
			BrowserBin:   os.Getenv("CARTSCOUT_BROWSER_BIN"),
			Stealth:      envBoolOr("CARTSCOUT_STEALTH", true),
		},
		Retail: RetailConfig{
			NavigationTimeout: envDurationOr("CARTSCOUT_NAV_TIMEOUT", 15*time.Second),
			SelectorTimeout:   envDurationOr("CARTSCOUT_SELECTOR_TIMEOUT", 10*time.Second),
			MaxRecords:        envIntOr("CARTSCOUT_MAX_RECORDS", 3),
			RequestTimeout:    envDurationOr("CARTSCOUT_REQUEST_TIMEOUT", 120*time.Second),
			BlockedResourceTypes: envSliceOr("CARTSCOUT_BLOCKED_RESOURCES", []string{
				"Image", "Stylesheet", "Font", "Media",
			}),
		},
		Auth: AuthConfig{
			Enabled: envBoolOr("CARTSCOUT_AUTH_ENABLED", false),
			APIKeys: envSliceOr("CARTSCOUT_API_KEYS", nil),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: envFloatOr("CARTSCOUT_RATE_RPS", 5.0),
			Burst:             envIntOr("CARTSCOUT_RATE_BURST", 10),
		},
		Cache: CacheConfig{
			MaxEntries: envIntOr("CARTSCOUT_CACHE_MAX_ENTRIES", 500),
			MaxAge:     envDurationOr("CARTSCOUT_CACHE_MAX_AGE", 5*time.Minute),
		},
		Log: LogConfig{
			Level:  envOr("CARTSCOUT_LOG_LEVEL", "info"),
			Format: envOr("CARTSCOUT_LOG_FORMAT", "json"),
		},
		CORS: CORSConfig{
			AllowedOrigins: envSliceOr("CARTSCOUT_CORS_ORIGINS", []string{
				"https://smart-cart-compare-ai.lovable.app",
			}),
		},
	}
}

// --- helper functions ---

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envBoolOr(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envFloatOr(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envSliceOr(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		return result
	}
	return fallback
}
