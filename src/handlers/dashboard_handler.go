package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/mics-123/merch-dashboard/src/logger"
	"github.com/mics-123/merch-dashboard/src/services"
	"github.com/mics-123/merch-dashboard/src/utils"
)

type DashboardHandler struct {
	reportService services.ReportService
}

func NewDashboardHandler(reportService services.ReportService) *DashboardHandler {
	return &DashboardHandler{
		reportService: reportService,
	}
}

// HandleGetDashboard serves the combined sales/ads view with ETag support.
func (h *DashboardHandler) HandleGetDashboard(w http.ResponseWriter, r *http.Request) {
	result, err := h.reportService.Dashboard()
	if err != nil {
		logger.L.Error("Error building combined dashboard", "error", err)
		utils.SendJSONError(w, "An internal error occurred while building the dashboard.", http.StatusInternalServerError)
		return
	}

	etag, err := utils.GenerateETag(result)
	if err == nil {
		if match := r.Header.Get("If-None-Match"); match != "" && match == etag {
			w.WriteHeader(http.StatusNotModified)
			return
		}
		w.Header().Set("ETag", etag)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(result); err != nil {
		logger.L.Error("Error encoding JSON response for dashboard", "error", err)
	}
}
