// ABOUTME: HTTP handler for the health endpoint
// ABOUTME: Reports API status and which optional integrations are configured

package handlers

import (
	"net/http"
)

// Health returns API health status including search proxy configuration.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	resp := map[string]interface{}{
		"status":     "ok",
		"search_api": "not_configured",
		"rate_limit": map[string]interface{}{
			"enabled":        h.searchLimiter != nil,
			"limit":          h.cfg.SearchRateLimit,
			"window_seconds": h.cfg.SearchRateWindow,
		},
		"metrics":        h.cfg.MetricsEnabled && h.metrics != nil,
		"uptime_seconds": int(h.now().Sub(h.startedAt).Seconds()),
	}

	if h.search.Configured() {
		resp["search_api"] = "ok"
	}

	h.writeJSON(w, http.StatusOK, resp)
}
