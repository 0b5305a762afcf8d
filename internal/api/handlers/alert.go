package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/aquawatch/aquawatch/internal/api/dto"
	"github.com/aquawatch/aquawatch/internal/domain/alert"
	"github.com/aquawatch/aquawatch/internal/pkg/errors"
	"github.com/aquawatch/aquawatch/internal/pkg/logger"
	"github.com/aquawatch/aquawatch/internal/pkg/utils"
	"github.com/aquawatch/aquawatch/internal/pkg/validator"
)

type AlertHandler struct {
	service   alert.Service
	logger    *logger.Logger
	validator *validator.Validator
}

func NewAlertHandler(service alert.Service, log *logger.Logger, val *validator.Validator) *AlertHandler {
	return &AlertHandler{service: service, logger: log, validator: val}
}

// List returns all alerts, optionally filtered by status or severity
func (h *AlertHandler) List(w http.ResponseWriter, r *http.Request) {
	var (
		alerts []*alert.Alert
		err    error
	)

	switch {
	case r.URL.Query().Get("status") != "":
		alerts, err = h.service.GetByStatus(r.Context(), strings.ToUpper(r.URL.Query().Get("status")))
	case r.URL.Query().Get("severity") != "":
		alerts, err = h.service.GetBySeverity(r.Context(), strings.ToUpper(r.URL.Query().Get("severity")))
	default:
		alerts, err = h.service.GetAll(r.Context())
	}

	if err != nil {
		utils.WriteAppError(w, err, "Failed to list alerts")
		return
	}
	utils.WriteSuccess(w, http.StatusOK, alerts)
}

// Get returns a single alert by ID
func (h *AlertHandler) Get(w http.ResponseWriter, r *http.Request) {
	a, err := h.service.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		utils.WriteAppError(w, err, "Failed to get alert")
		return
	}
	utils.WriteSuccess(w, http.StatusOK, a)
}

// ListActive returns alerts with status ACTIVE
func (h *AlertHandler) ListActive(w http.ResponseWriter, r *http.Request) {
	alerts, err := h.service.GetActive(r.Context())
	if err != nil {
		utils.WriteAppError(w, err, "Failed to list active alerts")
		return
	}
	utils.WriteSuccess(w, http.StatusOK, alerts)
}

// ListCritical returns alerts with severity CRITICAL
func (h *AlertHandler) ListCritical(w http.ResponseWriter, r *http.Request) {
	alerts, err := h.service.GetCritical(r.Context())
	if err != nil {
		utils.WriteAppError(w, err, "Failed to list critical alerts")
		return
	}
	utils.WriteSuccess(w, http.StatusOK, alerts)
}

// ListByLocation returns alerts for a location
func (h *AlertHandler) ListByLocation(w http.ResponseWriter, r *http.Request) {
	alerts, err := h.service.GetByLocation(r.Context(), chi.URLParam(r, "location"))
	if err != nil {
		utils.WriteAppError(w, err, "Failed to list alerts")
		return
	}
	utils.WriteSuccess(w, http.StatusOK, alerts)
}

// Acknowledge marks an alert as acknowledged by a user
func (h *AlertHandler) Acknowledge(w http.ResponseWriter, r *http.Request) {
	var req dto.AcknowledgeAlertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}

	if errs := h.validator.Validate(req); len(errs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", errs))
		return
	}

	a, err := h.service.Acknowledge(r.Context(), chi.URLParam(r, "id"), req.UserID)
	if err != nil {
		utils.WriteAppError(w, err, "Failed to acknowledge alert")
		return
	}
	utils.WriteSuccess(w, http.StatusOK, a)
}

// Resolve marks an alert as resolved
func (h *AlertHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	var req dto.ResolveAlertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}

	if errs := h.validator.Validate(req); len(errs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", errs))
		return
	}

	a, err := h.service.Resolve(r.Context(), chi.URLParam(r, "id"), req.ResolvedBy, req.ResolutionNotes)
	if err != nil {
		utils.WriteAppError(w, err, "Failed to resolve alert")
		return
	}
	utils.WriteSuccess(w, http.StatusOK, a)
}
