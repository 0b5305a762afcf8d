package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/aquawatch/aquawatch/internal/api/dto"
	"github.com/aquawatch/aquawatch/internal/domain/reading"
	"github.com/aquawatch/aquawatch/internal/pkg/errors"
	"github.com/aquawatch/aquawatch/internal/pkg/logger"
	"github.com/aquawatch/aquawatch/internal/pkg/utils"
	"github.com/aquawatch/aquawatch/internal/pkg/validator"
)

type ReadingHandler struct {
	service   reading.Service
	logger    *logger.Logger
	validator *validator.Validator
}

func NewReadingHandler(service reading.Service, log *logger.Logger, val *validator.Validator) *ReadingHandler {
	return &ReadingHandler{service: service, logger: log, validator: val}
}

// Ingest accepts a new sensor reading
func (h *ReadingHandler) Ingest(w http.ResponseWriter, r *http.Request) {
	var req dto.IngestReadingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}

	rd, err := h.service.Ingest(r.Context(), req.ToModel())
	if err != nil {
		utils.WriteAppError(w, err, "Failed to ingest reading")
		return
	}

	utils.WriteSuccess(w, http.StatusCreated, rd)
}

// Get returns a single reading by ID
func (h *ReadingHandler) Get(w http.ResponseWriter, r *http.Request) {
	rd, err := h.service.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		utils.WriteAppError(w, err, "Failed to get reading")
		return
	}
	utils.WriteSuccess(w, http.StatusOK, rd)
}

// List returns all readings
func (h *ReadingHandler) List(w http.ResponseWriter, r *http.Request) {
	readings, err := h.service.GetAll(r.Context())
	if err != nil {
		utils.WriteAppError(w, err, "Failed to list readings")
		return
	}
	utils.WriteSuccess(w, http.StatusOK, readings)
}

// ListBySensor returns readings for one sensor
func (h *ReadingHandler) ListBySensor(w http.ResponseWriter, r *http.Request) {
	readings, err := h.service.GetBySensorID(r.Context(), chi.URLParam(r, "sensorId"))
	if err != nil {
		utils.WriteAppError(w, err, "Failed to list readings")
		return
	}
	utils.WriteSuccess(w, http.StatusOK, readings)
}

// ListByLocation returns readings for one location
func (h *ReadingHandler) ListByLocation(w http.ResponseWriter, r *http.Request) {
	readings, err := h.service.GetByLocation(r.Context(), chi.URLParam(r, "location"))
	if err != nil {
		utils.WriteAppError(w, err, "Failed to list readings")
		return
	}
	utils.WriteSuccess(w, http.StatusOK, readings)
}

// ListByTimeRange returns readings within the start/end query window
func (h *ReadingHandler) ListByTimeRange(w http.ResponseWriter, r *http.Request) {
	start, end, appErr := timeRangeParams(r)
	if appErr != nil {
		utils.WriteError(w, appErr)
		return
	}

	readings, err := h.service.GetByTimeRange(r.Context(), start, end)
	if err != nil {
		utils.WriteAppError(w, err, "Failed to list readings")
		return
	}
	utils.WriteSuccess(w, http.StatusOK, readings)
}

// ListRecent returns the newest readings, up to the limit query parameter
func (h *ReadingHandler) ListRecent(w http.ResponseWriter, r *http.Request) {
	readings, err := h.service.GetRecent(r.Context(), intQueryParam(r, "limit", 10))
	if err != nil {
		utils.WriteAppError(w, err, "Failed to list readings")
		return
	}
	utils.WriteSuccess(w, http.StatusOK, readings)
}

// Latest returns the most recent reading across all sensors
func (h *ReadingHandler) Latest(w http.ResponseWriter, r *http.Request) {
	rd, err := h.service.GetLatest(r.Context())
	if err != nil {
		utils.WriteAppError(w, err, "Failed to get latest reading")
		return
	}
	utils.WriteSuccess(w, http.StatusOK, rd)
}

// LatestBySensor returns the most recent reading for a sensor
func (h *ReadingHandler) LatestBySensor(w http.ResponseWriter, r *http.Request) {
	rd, err := h.service.GetLatestBySensorID(r.Context(), chi.URLParam(r, "sensorId"))
	if err != nil {
		utils.WriteAppError(w, err, "Failed to get latest reading")
		return
	}
	utils.WriteSuccess(w, http.StatusOK, rd)
}

// ListByQualityStatus returns readings with the given classifier verdict
func (h *ReadingHandler) ListByQualityStatus(w http.ResponseWriter, r *http.Request) {
	status := strings.ToUpper(chi.URLParam(r, "status"))
	readings, err := h.service.GetByQualityStatus(r.Context(), status)
	if err != nil {
		utils.WriteAppError(w, err, "Failed to list readings")
		return
	}
	utils.WriteSuccess(w, http.StatusOK, readings)
}

// ListCritical returns readings breaching a critical threshold
func (h *ReadingHandler) ListCritical(w http.ResponseWriter, r *http.Request) {
	readings, err := h.service.GetCritical(r.Context())
	if err != nil {
		utils.WriteAppError(w, err, "Failed to list critical readings")
		return
	}
	utils.WriteSuccess(w, http.StatusOK, readings)
}

// Sensors returns all known sensor IDs
func (h *ReadingHandler) Sensors(w http.ResponseWriter, r *http.Request) {
	ids, err := h.service.DistinctSensorIDs(r.Context())
	if err != nil {
		utils.WriteAppError(w, err, "Failed to list sensors")
		return
	}
	utils.WriteSuccess(w, http.StatusOK, ids)
}

// Locations returns all known locations
func (h *ReadingHandler) Locations(w http.ResponseWriter, r *http.Request) {
	locations, err := h.service.DistinctLocations(r.Context())
	if err != nil {
		utils.WriteAppError(w, err, "Failed to list locations")
		return
	}
	utils.WriteSuccess(w, http.StatusOK, locations)
}
