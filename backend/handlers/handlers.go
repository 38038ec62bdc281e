// ABOUTME: HTTP handlers for the hotel revenue management API
// ABOUTME: Shared handler state plus JSON request and response helpers

package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/Bazzook4/hotel-setup-tool/backend/config"
	"github.com/Bazzook4/hotel-setup-tool/backend/metrics"
	"github.com/Bazzook4/hotel-setup-tool/backend/middleware"
	"github.com/Bazzook4/hotel-setup-tool/backend/models"
	"github.com/Bazzook4/hotel-setup-tool/backend/services"
)

// maxRequestBodySize limits JSON request bodies to 1MB
const maxRequestBodySize = 1 << 20

type Handler struct {
	cfg           *config.Config
	occupancyCalc *services.OccupancyCalculator
	inventoryCalc *services.InventoryCalculator
	search        *services.HotelSearchClient
	searchLimiter middleware.Limiter
	metrics       *metrics.Metrics
	now           func() time.Time
	startedAt     time.Time
}

// NewHandler builds the API handlers. search, limiter and m are optional: a nil
// search client reports the search endpoint as not configured, a nil limiter
// disables search rate limiting and nil metrics are skipped.
func NewHandler(cfg *config.Config, search *services.HotelSearchClient, limiter middleware.Limiter, m *metrics.Metrics) *Handler {
	if cfg == nil {
		cfg = config.Default()
	}
	if limiter != nil && m != nil {
		limiter = countingLimiter{Limiter: limiter, metrics: m}
	}
	return &Handler{
		cfg:           cfg,
		occupancyCalc: services.NewOccupancyCalculator(),
		inventoryCalc: services.NewInventoryCalculator(),
		search:        search,
		searchLimiter: limiter,
		metrics:       m,
		now:           time.Now,
		startedAt:     time.Now(),
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, message string, code int) {
	h.writeJSON(w, code, models.ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// decodeJSON reads a bounded JSON body into dst. An empty body decodes as an
// empty object so that missing fields surface as validation errors. It writes
// the error response itself and reports whether the caller should continue.
func (h *Handler) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)

	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}

	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		h.writeError(w, "Request body too large", http.StatusBadRequest)
		return false
	}
	h.writeError(w, "Invalid JSON", http.StatusBadRequest)
	return false
}

// writeCalculationError maps a calculator error to a response and records it.
func (h *Handler) writeCalculationError(w http.ResponseWriter, r *http.Request, calculator string, err error) {
	var inputErr *services.InvalidInputError
	if errors.As(err, &inputErr) {
		h.metrics.RecordCalculation(calculator, metrics.OutcomeInvalid)
		h.writeJSON(w, http.StatusBadRequest, models.ErrorResponse{
			Error: inputErr.Message,
			Field: inputErr.Field,
			Code:  http.StatusBadRequest,
		})
		return
	}

	h.metrics.RecordCalculation(calculator, metrics.OutcomeError)
	slog.Error("Calculation failed",
		"calculator", calculator,
		"request_id", middleware.RequestID(r.Context()),
		"error", err)
	h.writeError(w, "Calculation failed", http.StatusInternalServerError)
}
