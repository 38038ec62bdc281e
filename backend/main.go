// ABOUTME: Entry point for the hotel revenue management backend service
// ABOUTME: Serves the pricing calculators and the hotel search proxy over HTTP

package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Bazzook4/hotel-setup-tool/backend/cache"
	"github.com/Bazzook4/hotel-setup-tool/backend/config"
	"github.com/Bazzook4/hotel-setup-tool/backend/handlers"
	"github.com/Bazzook4/hotel-setup-tool/backend/logger"
	"github.com/Bazzook4/hotel-setup-tool/backend/metrics"
	"github.com/Bazzook4/hotel-setup-tool/backend/middleware"
	"github.com/Bazzook4/hotel-setup-tool/backend/models"
	"github.com/Bazzook4/hotel-setup-tool/backend/services"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Init("info", "text")
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Initialize structured logging
	logger.Init(cfg.LogLevel, cfg.LogFormat)

	slog.Info("Starting hotel RMS backend")

	var m *metrics.Metrics
	if cfg.MetricsEnabled {
		m = metrics.New("hotel_rms")
		slog.Info("Metrics enabled", "path", cfg.MetricsPath)
	}

	// Initialize search result cache
	cacheTTL := time.Duration(cfg.CacheTTL) * time.Second
	searchCache := cache.New[*models.HotelSearchResult](cacheTTL)
	defer searchCache.Close()
	slog.Info("Cache initialized", "ttl", cacheTTL)

	httpClient := &http.Client{Timeout: time.Duration(cfg.SearchTimeout) * time.Second}
	search := services.NewHotelSearchClient(cfg.SearchAPIURL, cfg.SearchAPIKey, httpClient, searchCache).
		WithObserver(m)
	if cfg.SearchConfigured() {
		slog.Info("Hotel search configured", "url", cfg.SearchAPIURL)
	} else {
		slog.Warn("SEARCH_API_KEY not set, hotel search disabled")
	}

	var limiter middleware.Limiter
	if cfg.RateLimitEnabled {
		window := time.Duration(cfg.SearchRateWindow) * time.Second
		limiter = middleware.NewRateLimiter(cfg.SearchRateLimit, window)
		slog.Info("Search rate limiting enabled", "limit", cfg.SearchRateLimit, "window", window)
	}

	h := handlers.NewHandler(cfg, search, limiter, m)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      h.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	case <-ctx.Done():
	}

	slog.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.ShutdownTimeout)*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Graceful shutdown failed", "error", err)
	}
}
