package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/aquawatch/aquawatch/internal/api/dto"
	"github.com/aquawatch/aquawatch/internal/domain/symptom"
	"github.com/aquawatch/aquawatch/internal/pkg/errors"
	"github.com/aquawatch/aquawatch/internal/pkg/logger"
	"github.com/aquawatch/aquawatch/internal/pkg/utils"
	"github.com/aquawatch/aquawatch/internal/pkg/validator"
)

type SymptomHandler struct {
	service   symptom.Service
	logger    *logger.Logger
	validator *validator.Validator
}

func NewSymptomHandler(service symptom.Service, log *logger.Logger, val *validator.Validator) *SymptomHandler {
	return &SymptomHandler{service: service, logger: log, validator: val}
}

// Create accepts a new community symptom report
func (h *SymptomHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateSymptomReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}

	if errs := h.validator.Validate(req); len(errs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", errs))
		return
	}

	report, err := h.service.Create(r.Context(), req.ToModel())
	if err != nil {
		utils.WriteAppError(w, err, "Failed to create symptom report")
		return
	}

	utils.WriteSuccess(w, http.StatusCreated, report)
}

// Get returns a single report by ID
func (h *SymptomHandler) Get(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		utils.WriteAppError(w, err, "Failed to get symptom report")
		return
	}
	utils.WriteSuccess(w, http.StatusOK, report)
}

// List returns all reports
func (h *SymptomHandler) List(w http.ResponseWriter, r *http.Request) {
	reports, err := h.service.GetAll(r.Context())
	if err != nil {
		utils.WriteAppError(w, err, "Failed to list symptom reports")
		return
	}
	utils.WriteSuccess(w, http.StatusOK, reports)
}

// ListByUser returns reports submitted by one user
func (h *SymptomHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	reports, err := h.service.GetByUserID(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		utils.WriteAppError(w, err, "Failed to list symptom reports")
		return
	}
	utils.WriteSuccess(w, http.StatusOK, reports)
}

// ListByLocation returns reports for one location
func (h *SymptomHandler) ListByLocation(w http.ResponseWriter, r *http.Request) {
	reports, err := h.service.GetByLocation(r.Context(), chi.URLParam(r, "location"))
	if err != nil {
		utils.WriteAppError(w, err, "Failed to list symptom reports")
		return
	}
	utils.WriteSuccess(w, http.StatusOK, reports)
}

// ListByStatus returns reports with the given investigation status
func (h *SymptomHandler) ListByStatus(w http.ResponseWriter, r *http.Request) {
	status := strings.ToUpper(chi.URLParam(r, "status"))
	reports, err := h.service.GetByStatus(r.Context(), status)
	if err != nil {
		utils.WriteAppError(w, err, "Failed to list symptom reports")
		return
	}
	utils.WriteSuccess(w, http.StatusOK, reports)
}

// ListBySeverity returns reports with the given severity
func (h *SymptomHandler) ListBySeverity(w http.ResponseWriter, r *http.Request) {
	severity := strings.ToUpper(chi.URLParam(r, "severity"))
	reports, err := h.service.GetBySeverity(r.Context(), severity)
	if err != nil {
		utils.WriteAppError(w, err, "Failed to list symptom reports")
		return
	}
	utils.WriteSuccess(w, http.StatusOK, reports)
}

// ListByTimeRange returns reports within the start/end query window
func (h *SymptomHandler) ListByTimeRange(w http.ResponseWriter, r *http.Request) {
	start, end, appErr := timeRangeParams(r)
	if appErr != nil {
		utils.WriteError(w, appErr)
		return
	}

	reports, err := h.service.GetByTimeRange(r.Context(), start, end)
	if err != nil {
		utils.WriteAppError(w, err, "Failed to list symptom reports")
		return
	}
	utils.WriteSuccess(w, http.StatusOK, reports)
}

// Search returns reports matching any of the comma-separated symptoms
func (h *SymptomHandler) Search(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("symptoms")
	if raw == "" {
		utils.WriteError(w, errors.BadRequest("symptoms query parameter is required"))
		return
	}

	var symptoms []string
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			symptoms = append(symptoms, s)
		}
	}

	reports, err := h.service.GetBySymptoms(r.Context(), symptoms)
	if err != nil {
		utils.WriteAppError(w, err, "Failed to search symptom reports")
		return
	}
	utils.WriteSuccess(w, http.StatusOK, reports)
}

// UpdateStatus updates a report's investigation state
func (h *SymptomHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateReportStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}

	if errs := h.validator.Validate(req); len(errs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", errs))
		return
	}

	report, err := h.service.UpdateStatus(r.Context(), chi.URLParam(r, "id"), req.Status, req.InvestigationNotes)
	if err != nil {
		utils.WriteAppError(w, err, "Failed to update symptom report")
		return
	}
	utils.WriteSuccess(w, http.StatusOK, report)
}

// Locations returns all locations with at least one report
func (h *SymptomHandler) Locations(w http.ResponseWriter, r *http.Request) {
	locations, err := h.service.DistinctLocations(r.Context())
	if err != nil {
		utils.WriteAppError(w, err, "Failed to list locations")
		return
	}
	utils.WriteSuccess(w, http.StatusOK, locations)
}
