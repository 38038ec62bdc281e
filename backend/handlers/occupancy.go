// ABOUTME: HTTP handlers for occupancy based pricing
// ABOUTME: Slab calculation and RMS export endpoints

package handlers

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/Bazzook4/hotel-setup-tool/backend/export"
	"github.com/Bazzook4/hotel-setup-tool/backend/metrics"
	"github.com/Bazzook4/hotel-setup-tool/backend/models"
	"github.com/Bazzook4/hotel-setup-tool/backend/services"
)

const calculatorOccupancy = "occupancy"

// CalculateOccupancy returns pricing slabs, a per-occupancy rate table and
// recommendations for the submitted hotel profile.
func (h *Handler) CalculateOccupancy(w http.ResponseWriter, r *http.Request) {
	result, ok := h.occupancy(w, r)
	if !ok {
		return
	}

	h.metrics.RecordCalculation(calculatorOccupancy, metrics.OutcomeSuccess)
	h.writeJSON(w, http.StatusOK, models.OccupancyResponse{
		Success:         true,
		OccupancyResult: result,
	})
}

// ExportOccupancy returns the same calculation as an RMS import document.
// The format query parameter selects json (default), yaml or xlsx.
func (h *Handler) ExportOccupancy(w http.ResponseWriter, r *http.Request) {
	format, err := export.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		h.writeError(w, "Unsupported export format", http.StatusBadRequest)
		return
	}

	result, ok := h.occupancy(w, r)
	if !ok {
		return
	}

	generatedAt := h.now().UTC()
	var buf bytes.Buffer
	if err := export.Write(&buf, format, result, generatedAt); err != nil {
		slog.Error("Failed to render export", "format", format, "error", err)
		h.metrics.RecordCalculation(calculatorOccupancy, metrics.OutcomeError)
		h.writeError(w, "Export failed", http.StatusInternalServerError)
		return
	}

	h.metrics.RecordCalculation(calculatorOccupancy, metrics.OutcomeSuccess)
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, format.Filename(generatedAt)))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

func (h *Handler) occupancy(w http.ResponseWriter, r *http.Request) (models.OccupancyResult, bool) {
	var req models.OccupancyRequest
	if !h.decodeJSON(w, r, &req) {
		h.metrics.RecordCalculation(calculatorOccupancy, metrics.OutcomeInvalid)
		return models.OccupancyResult{}, false
	}

	input, err := services.ParseOccupancyRequest(req)
	if err != nil {
		h.writeCalculationError(w, r, calculatorOccupancy, err)
		return models.OccupancyResult{}, false
	}

	result, err := h.occupancyCalc.Calculate(input)
	if err != nil {
		h.writeCalculationError(w, r, calculatorOccupancy, err)
		return models.OccupancyResult{}, false
	}
	return result, true
}
