// ABOUTME: Test helpers for e2e tests
// ABOUTME: Builds the service from environment configuration the way main does

package e2e

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Bazzook4/hotel-setup-tool/backend/cache"
	"github.com/Bazzook4/hotel-setup-tool/backend/config"
	"github.com/Bazzook4/hotel-setup-tool/backend/handlers"
	"github.com/Bazzook4/hotel-setup-tool/backend/metrics"
	"github.com/Bazzook4/hotel-setup-tool/backend/middleware"
	"github.com/Bazzook4/hotel-setup-tool/backend/models"
	"github.com/Bazzook4/hotel-setup-tool/backend/services"
)

var envKeys = []string{
	"PORT", "SHUTDOWN_TIMEOUT", "CORS_ALLOWED_ORIGINS", "LOG_LEVEL", "LOG_FORMAT",
	"METRICS_ENABLED", "METRICS_PATH", "SEARCH_API_URL", "SEARCH_API_KEY", "SEARCH_TIMEOUT",
	"CACHE_TTL", "RATE_LIMIT_ENABLED", "SEARCH_RATE_LIMIT", "SEARCH_RATE_WINDOW", "RMS_CONFIG_FILE",
}

// startServer loads configuration from env (after clearing every key the
// service reads) and serves the full router over a real listener.
//
// Example:
//
//	srv := startServer(t, map[string]string{
//	    "CORS_ALLOWED_ORIGINS": "https://example.com",
//	})
func startServer(t *testing.T, env map[string]string) *httptest.Server {
	t.Helper()

	for _, key := range envKeys {
		t.Setenv(key, "")
	}
	for key, value := range env {
		t.Setenv(key, value)
	}
	t.Chdir(t.TempDir())

	cfg, err := config.Load()
	require.NoError(t, err)

	var m *metrics.Metrics
	if cfg.MetricsEnabled {
		m = metrics.New("e2e")
	}

	c := cache.New[*models.HotelSearchResult](time.Duration(cfg.CacheTTL) * time.Second)
	t.Cleanup(c.Close)

	search := services.NewHotelSearchClient(cfg.SearchAPIURL, cfg.SearchAPIKey,
		&http.Client{Timeout: time.Duration(cfg.SearchTimeout) * time.Second}, c).WithObserver(m)

	var limiter middleware.Limiter
	if cfg.RateLimitEnabled {
		limiter = middleware.NewRateLimiter(cfg.SearchRateLimit, time.Duration(cfg.SearchRateWindow)*time.Second)
	}

	srv := httptest.NewServer(handlers.NewHandler(cfg, search, limiter, m).Router())
	t.Cleanup(srv.Close)
	return srv
}

// fakeSearchAPI stands in for the hotel search provider.
func fakeSearchAPI(t *testing.T, payload string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(payload))
	}))
	t.Cleanup(srv.Close)
	return srv
}
