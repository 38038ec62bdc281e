// ABOUTME: HTTP handler for inventory reallocation
// ABOUTME: Classifies room types into a shared pool and sizes each share

package handlers

import (
	"net/http"

	"github.com/Bazzook4/hotel-setup-tool/backend/metrics"
	"github.com/Bazzook4/hotel-setup-tool/backend/models"
	"github.com/Bazzook4/hotel-setup-tool/backend/services"
)

const calculatorInventory = "inventory"

func (h *Handler) CalculateInventory(w http.ResponseWriter, r *http.Request) {
	var req models.InventoryRequest
	if !h.decodeJSON(w, r, &req) {
		h.metrics.RecordCalculation(calculatorInventory, metrics.OutcomeInvalid)
		return
	}

	input, err := services.ParseInventoryRequest(req)
	if err != nil {
		h.writeCalculationError(w, r, calculatorInventory, err)
		return
	}

	result, err := h.inventoryCalc.Calculate(input)
	if err != nil {
		h.writeCalculationError(w, r, calculatorInventory, err)
		return
	}

	h.metrics.RecordCalculation(calculatorInventory, metrics.OutcomeSuccess)
	h.writeJSON(w, http.StatusOK, models.InventoryResponse{
		Success:         true,
		InventoryResult: result,
	})
}
