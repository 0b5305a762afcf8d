package handlers

import (
	"database/sql"
	"net/http"

	"github.com/aquawatch/aquawatch/internal/ml"
	"github.com/aquawatch/aquawatch/internal/pkg/utils"
)

type HealthHandler struct {
	db         *sql.DB
	classifier ml.Classifier
	version    string
}

func NewHealthHandler(db *sql.DB, classifier ml.Classifier, version string) *HealthHandler {
	return &HealthHandler{db: db, classifier: classifier, version: version}
}

// Healthz is the liveness probe
func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": h.version,
	})
}

// Readyz is the readiness probe: the database must answer, and the
// classifier state is reported but does not fail readiness since
// ingestion degrades gracefully without it.
func (h *HealthHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	checks := map[string]string{
		"database":   "ok",
		"classifier": "ok",
	}
	status := http.StatusOK

	if err := h.db.PingContext(r.Context()); err != nil {
		checks["database"] = "unreachable"
		status = http.StatusServiceUnavailable
	}

	if h.classifier == nil {
		checks["classifier"] = "disabled"
	} else if err := h.classifier.Health(r.Context()); err != nil {
		checks["classifier"] = "unreachable"
	}

	overall := "ok"
	if status != http.StatusOK {
		overall = "degraded"
	}

	utils.WriteJSON(w, status, map[string]interface{}{
		"status": overall,
		"checks": checks,
	})
}
