package handlers

import (
	"net/http"

	"github.com/avandyk/wealth-analytics/internal/service"
)

// ImportHandler handles CSV bulk import HTTP requests
type ImportHandler struct {
	importService *service.ImportService
}

// NewImportHandler creates a new ImportHandler
func NewImportHandler(importService *service.ImportService) *ImportHandler {
	return &ImportHandler{
		importService: importService,
	}
}

// ImportResponse reports how many rows an import stored
type ImportResponse struct {
	Imported int `json:"imported"`
}

// ImportSnapshots bulk-upserts account snapshots from a CSV request body
// with headers account_id,date,total_assets_cents,transfer_amount_cents.
//
// Endpoint: POST /api/import/snapshots
func (h *ImportHandler) ImportSnapshots(w http.ResponseWriter, r *http.Request) {
	imported, err := h.importService.ImportSnapshots(r.Body)
	if err != nil {
		respondServiceError(w, "failed to import snapshots", err)
		return
	}

	respondJSON(w, http.StatusCreated, ImportResponse{Imported: imported})
}

// ImportValuations bulk-upserts asset valuations from a CSV request body
// with headers account_id,account_name,asset_class,date,value_cents.
//
// Endpoint: POST /api/import/valuations
func (h *ImportHandler) ImportValuations(w http.ResponseWriter, r *http.Request) {
	imported, err := h.importService.ImportValuations(r.Body)
	if err != nil {
		respondServiceError(w, "failed to import valuations", err)
		return
	}

	respondJSON(w, http.StatusCreated, ImportResponse{Imported: imported})
}
