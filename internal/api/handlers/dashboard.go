package handlers

import (
	"net/http"

	"github.com/aquawatch/aquawatch/internal/domain/dashboard"
	"github.com/aquawatch/aquawatch/internal/pkg/logger"
	"github.com/aquawatch/aquawatch/internal/pkg/utils"
)

type DashboardHandler struct {
	service dashboard.Service
	logger  *logger.Logger
}

func NewDashboardHandler(service dashboard.Service, log *logger.Logger) *DashboardHandler {
	return &DashboardHandler{service: service, logger: log}
}

// Overview returns the combined dashboard landing payload
func (h *DashboardHandler) Overview(w http.ResponseWriter, r *http.Request) {
	overview, err := h.service.Overview(r.Context())
	if err != nil {
		utils.WriteAppError(w, err, "Failed to build dashboard overview")
		return
	}
	utils.WriteSuccess(w, http.StatusOK, overview)
}

// Sensors returns per-sensor connectivity status
func (h *DashboardHandler) Sensors(w http.ResponseWriter, r *http.Request) {
	status, err := h.service.SensorStatus(r.Context())
	if err != nil {
		utils.WriteAppError(w, err, "Failed to build sensor status")
		return
	}
	utils.WriteSuccess(w, http.StatusOK, status)
}

// Alerts returns the alert backlog summary
func (h *DashboardHandler) Alerts(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.AlertsSummary(r.Context())
	if err != nil {
		utils.WriteAppError(w, err, "Failed to build alerts summary")
		return
	}
	utils.WriteSuccess(w, http.StatusOK, summary)
}

// Symptoms returns the symptom report summary
func (h *DashboardHandler) Symptoms(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.SymptomsSummary(r.Context())
	if err != nil {
		utils.WriteAppError(w, err, "Failed to build symptoms summary")
		return
	}
	utils.WriteSuccess(w, http.StatusOK, summary)
}

// Trends returns per-parameter time series for the trailing window
func (h *DashboardHandler) Trends(w http.ResponseWriter, r *http.Request) {
	trends, err := h.service.Trends(r.Context(), intQueryParam(r, "hours", 24))
	if err != nil {
		utils.WriteAppError(w, err, "Failed to build trends")
		return
	}
	utils.WriteSuccess(w, http.StatusOK, trends)
}

// Locations returns per-location health rollups
func (h *DashboardHandler) Locations(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.LocationsSummary(r.Context())
	if err != nil {
		utils.WriteAppError(w, err, "Failed to build locations summary")
		return
	}
	utils.WriteSuccess(w, http.StatusOK, summary)
}
