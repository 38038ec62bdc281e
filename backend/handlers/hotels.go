// ABOUTME: HTTP handler for the hotel search proxy
// ABOUTME: Guards the search API key, applies per-client quotas and shapes responses

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Bazzook4/hotel-setup-tool/backend/metrics"
	"github.com/Bazzook4/hotel-setup-tool/backend/middleware"
	"github.com/Bazzook4/hotel-setup-tool/backend/models"
	"github.com/Bazzook4/hotel-setup-tool/backend/services"
)

const searchCacheControl = "s-maxage=300, stale-while-revalidate=600"

// unlimitedRemaining is reported when search rate limiting is disabled.
const unlimitedRemaining = -1

// SearchHotels proxies a hotel search, returning either a single property
// detail or a listing along with the caller's remaining search quota.
func (h *Handler) SearchHotels(w http.ResponseWriter, r *http.Request) {
	result, err := h.search.Search(r.Context(), r.URL.Query())
	switch {
	case errors.Is(err, services.ErrMissingQuery):
		h.metrics.RecordSearch(metrics.OutcomeInvalid)
		h.writeError(w, "Missing search query (q)", http.StatusBadRequest)
		return
	case errors.Is(err, services.ErrSearchNotConfigured):
		h.metrics.RecordSearch(metrics.OutcomeError)
		h.writeError(w, "Hotel search is not configured", http.StatusServiceUnavailable)
		return
	case err != nil:
		h.metrics.RecordSearch(metrics.OutcomeError)
		slog.Error("Hotel search failed",
			"request_id", middleware.RequestID(r.Context()),
			"error", err)
		h.writeError(w, "Failed to fetch hotel data", http.StatusBadGateway)
		return
	}

	if result.Cached {
		h.metrics.RecordSearch(metrics.OutcomeCacheHit)
	} else {
		h.metrics.RecordSearch(metrics.OutcomeSuccess)
	}

	remaining := unlimitedRemaining
	if d, ok := middleware.RateLimitDecision(r); ok {
		remaining = d.Remaining
	}

	w.Header().Set("Cache-Control", searchCacheControl)
	if result.Detail != nil {
		h.writeJSON(w, http.StatusOK, models.PropertyDetailResponse{
			PropertyDetail: result.Detail,
			Remaining:      remaining,
		})
		return
	}

	properties := result.Properties
	if properties == nil {
		properties = []models.PropertySummary{}
	}
	h.writeJSON(w, http.StatusOK, models.PropertyListResponse{
		Properties: properties,
		Remaining:  remaining,
	})
}

// requireSearch rejects search requests before they are charged against the
// caller's quota when no search API key is configured.
func (h *Handler) requireSearch(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodOptions && !h.search.Configured() {
			h.metrics.RecordSearch(metrics.OutcomeError)
			h.writeError(w, "Hotel search is not configured", http.StatusServiceUnavailable)
			return
		}
		next(w, r)
	}
}

// countingLimiter records denied searches.
type countingLimiter struct {
	middleware.Limiter
	metrics *metrics.Metrics
}

func (l countingLimiter) Check(key string, cost int) middleware.Decision {
	d := l.Limiter.Check(key, cost)
	if !d.Allowed {
		l.metrics.RecordSearch(metrics.OutcomeLimited)
	}
	return d
}
