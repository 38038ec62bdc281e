// ABOUTME: Configuration loader for backend service
// ABOUTME: Layers defaults, an optional TOML file and environment variables (with .env support)

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port               string   `toml:"port"`
	ShutdownTimeout    int      `toml:"shutdown_timeout"`     // seconds
	CORSAllowedOrigins []string `toml:"cors_allowed_origins"` // "*" allows any origin

	// Logging
	LogLevel  string `toml:"log_level"`  // debug, info, warn, error
	LogFormat string `toml:"log_format"` // text, json

	// Metrics
	MetricsEnabled bool   `toml:"metrics_enabled"`
	MetricsPath    string `toml:"metrics_path"`

	// Hotel search proxy
	SearchAPIURL     string `toml:"search_api_url"`
	SearchAPIKey     string `toml:"search_api_key"`
	SearchTimeout    int    `toml:"search_timeout"` // seconds
	CacheTTL         int    `toml:"cache_ttl"`      // seconds, search result cache
	RateLimitEnabled bool   `toml:"rate_limit_enabled"`
	SearchRateLimit  int    `toml:"search_rate_limit"`  // searches per window per client
	SearchRateWindow int    `toml:"search_rate_window"` // seconds
}

// SearchConfigured returns true if the hotel search proxy has an API key
func (c *Config) SearchConfigured() bool {
	return c.SearchAPIKey != ""
}

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	return &Config{
		Port:               "8080",
		ShutdownTimeout:    15,
		CORSAllowedOrigins: []string{"*"},
		LogLevel:           "info",
		LogFormat:          "text",
		MetricsEnabled:     true,
		MetricsPath:        "/metrics",
		SearchAPIURL:       "https://serpapi.com/search.json",
		SearchTimeout:      10,
		CacheTTL:           300,
		RateLimitEnabled:   true,
		SearchRateLimit:    3,
		SearchRateWindow:   3600,
	}
}

// Load builds the configuration. Values from a .env file in the working
// directory never override variables already set in the environment.
// RMS_CONFIG_FILE names an optional TOML file applied before the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := Default()

	if path := os.Getenv("RMS_CONFIG_FILE"); path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.ShutdownTimeout = getEnvInt("SHUTDOWN_TIMEOUT", cfg.ShutdownTimeout)
	if origins := getEnvStringList("CORS_ALLOWED_ORIGINS"); origins != nil {
		cfg.CORSAllowedOrigins = origins
	}

	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = strings.ToLower(getEnv("LOG_FORMAT", cfg.LogFormat))

	cfg.MetricsEnabled = getEnvBool("METRICS_ENABLED", cfg.MetricsEnabled)
	cfg.MetricsPath = getEnv("METRICS_PATH", cfg.MetricsPath)

	cfg.SearchAPIURL = ensureScheme(getEnv("SEARCH_API_URL", cfg.SearchAPIURL))
	cfg.SearchAPIKey = getEnv("SEARCH_API_KEY", cfg.SearchAPIKey)
	cfg.SearchTimeout = getEnvInt("SEARCH_TIMEOUT", cfg.SearchTimeout)
	cfg.CacheTTL = getEnvInt("CACHE_TTL", cfg.CacheTTL)
	cfg.RateLimitEnabled = getEnvBool("RATE_LIMIT_ENABLED", cfg.RateLimitEnabled)
	cfg.SearchRateLimit = getEnvInt("SEARCH_RATE_LIMIT", cfg.SearchRateLimit)
	cfg.SearchRateWindow = getEnvInt("SEARCH_RATE_WINDOW", cfg.SearchRateWindow)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	port, err := strconv.Atoi(c.Port)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("PORT must be a number between 1 and 65535, got %q", c.Port)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("LOG_FORMAT must be text or json, got %q", c.LogFormat)
	}
	if !strings.HasPrefix(c.MetricsPath, "/") {
		return fmt.Errorf("METRICS_PATH must start with /, got %q", c.MetricsPath)
	}
	if c.SearchRateLimit < 1 || c.SearchRateLimit > 10000 {
		return fmt.Errorf("SEARCH_RATE_LIMIT must be between 1 and 10000, got %d", c.SearchRateLimit)
	}
	for _, v := range []struct {
		name  string
		value int
	}{
		{"SEARCH_RATE_WINDOW", c.SearchRateWindow},
		{"SEARCH_TIMEOUT", c.SearchTimeout},
		{"SHUTDOWN_TIMEOUT", c.ShutdownTimeout},
	} {
		if v.value < 1 {
			return fmt.Errorf("%s must be at least 1 second, got %d", v.name, v.value)
		}
	}
	if c.CacheTTL < 0 {
		return fmt.Errorf("CACHE_TTL must not be negative, got %d", c.CacheTTL)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvStringList(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// ensureScheme adds https:// prefix if the URL has no scheme
func ensureScheme(url string) string {
	if url == "" {
		return url
	}
	if !strings.Contains(url, "://") {
		return "https://" + url
	}
	return url
}
