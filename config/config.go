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
	Fetch     FetchConfig
	Batch     BatchConfig
	RateLimit RateLimitConfig
	Store     StoreConfig
	Webhook   WebhookConfig
	Log       LogConfig
}

// ServerConfig controls the HTTP server.
type ServerConfig struct {
	Host string // default: "0.0.0.0"
	Port int    // default: 8080
	Mode string // "debug", "release", "test"; default: "release"

	// CORSOrigins lists the origins allowed to call the API from a browser.
	// default: ["*"]
	CORSOrigins []string
}

// FetchConfig controls how page titles are fetched.
type FetchConfig struct {
	// Mode selects the fetch engine: "relay" or "direct". default: "relay"
	Mode string

	// RelayURL is the CORS relay endpoint. The target URL is sent in the
	// "url" query parameter. default: "https://api.allorigins.win/get"
	RelayURL string

	// Timeout bounds a single fetch. Zero leaves the transport default.
	Timeout time.Duration // default: 15s

	// RelayRPS throttles outbound relay calls. Zero disables throttling.
	RelayRPS float64 // default: 0

	// RelayBurst is the limiter burst when RelayRPS > 0.
	RelayBurst int // default: 1

	// TitleSelector is the CSS selector used to locate the page title.
	TitleSelector string // default: "title"

	// Proxy is an optional HTTP proxy for the direct engine.
	Proxy string
}

// BatchConfig controls the batch driver.
type BatchConfig struct {
	// MaxConcurrency caps the per-request fan-out. 1 means sequential.
	MaxConcurrency int // default: 4
}

// RateLimitConfig controls per-client API rate limiting.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate per client IP.
	RequestsPerSecond float64 // default: 2

	// Burst is the maximum burst size per client IP.
	Burst int // default: 5
}

// StoreConfig controls the in-memory batch store.
type StoreConfig struct {
	// TTL is how long a generated batch stays available for edits and export.
	TTL time.Duration // default: 1h
}

// WebhookConfig controls completion webhooks.
type WebhookConfig struct {
	// Secret signs webhook bodies with HMAC-SHA256 when non-empty.
	Secret string
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string // default: "info"
	Format string // "json" or "text"; default: "json"
}

// Load reads configuration from environment variables with sane defaults.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Host:        envOr("LDGEN_HOST", "0.0.0.0"),
			Port:        envIntOr("LDGEN_PORT", 8080),
			Mode:        envOr("LDGEN_MODE", "release"),
			CORSOrigins: envSliceOr("LDGEN_CORS_ORIGINS", []string{"*"}),
		},
		Fetch: FetchConfig{
			Mode:          envOr("LDGEN_FETCH_MODE", "relay"),
			RelayURL:      envOr("LDGEN_RELAY_URL", "https://api.allorigins.win/get"),
			Timeout:       envDurationOr("LDGEN_FETCH_TIMEOUT", 15*time.Second),
			RelayRPS:      envFloatOr("LDGEN_RELAY_RPS", 0),
			RelayBurst:    envIntOr("LDGEN_RELAY_BURST", 1),
			TitleSelector: envOr("LDGEN_TITLE_SELECTOR", "title"),
			Proxy:         os.Getenv("LDGEN_PROXY"),
		},
		Batch: BatchConfig{
			MaxConcurrency: envIntOr("LDGEN_MAX_CONCURRENCY", 4),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: envFloatOr("LDGEN_RATE_RPS", 2.0),
			Burst:             envIntOr("LDGEN_RATE_BURST", 5),
		},
		Store: StoreConfig{
			TTL: envDurationOr("LDGEN_STORE_TTL", time.Hour),
		},
		Webhook: WebhookConfig{
			Secret: os.Getenv("LDGEN_WEBHOOK_SECRET"),
		},
		Log: LogConfig{
			Level:  envOr("LDGEN_LOG_LEVEL", "info"),
			Format: envOr("LDGEN_LOG_FORMAT", "json"),
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
