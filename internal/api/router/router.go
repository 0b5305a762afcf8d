package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/aquawatch/aquawatch/internal/api/handlers"
	"github.com/aquawatch/aquawatch/internal/api/middleware"
	"github.com/aquawatch/aquawatch/internal/config"
	"github.com/aquawatch/aquawatch/internal/pkg/logger"
	"github.com/aquawatch/aquawatch/internal/pkg/metrics"
)

type Handlers struct {
	Health    *handlers.HealthHandler
	Reading   *handlers.ReadingHandler
	Symptom   *handlers.SymptomHandler
	Alert     *handlers.AlertHandler
	Dashboard *handlers.DashboardHandler
	Live      *handlers.LiveHandler
}

func New(cfg *config.Config, log *logger.Logger, h *Handlers) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(log))
	r.Use(middleware.Recovery(log))
	r.Use(middleware.DefaultCORS(cfg.Server.FrontendURL))
	r.Use(metrics.Middleware())
	r.Use(middleware.RateLimit(100, 200)) // 100 req/sec, burst of 200

	// Health checks and metrics
	r.Get("/health", h.Health.Healthz)
	r.Get("/healthz", h.Health.Healthz)
	r.Get("/readyz", h.Health.Readyz)
	r.Handle("/metrics", metrics.Handler())

	// Live dashboard feed
	r.Get("/ws", h.Live.Serve)

	// Sensor readings
	r.Route("/api/v1/readings", func(r chi.Router) {
		r.Get("/", h.Reading.List)
		r.Post("/", h.Reading.Ingest)
		r.Get("/recent", h.Reading.ListRecent)
		r.Get("/latest", h.Reading.Latest)
		r.Get("/critical", h.Reading.ListCritical)
		r.Get("/range", h.Reading.ListByTimeRange)
		r.Get("/sensors", h.Reading.Sensors)
		r.Get("/locations", h.Reading.Locations)
		r.Get("/sensor/{sensorId}", h.Reading.ListBySensor)
		r.Get("/sensor/{sensorId}/latest", h.Reading.LatestBySensor)
		r.Get("/location/{location}", h.Reading.ListByLocation)
		r.Get("/quality/{status}", h.Reading.ListByQualityStatus)
		r.Get("/{id}", h.Reading.Get)
	})

	// Community symptom reports
	r.Route("/api/v1/symptoms", func(r chi.Router) {
		r.Get("/", h.Symptom.List)
		r.Post("/", h.Symptom.Create)
		r.Get("/search", h.Symptom.Search)
		r.Get("/range", h.Symptom.ListByTimeRange)
		r.Get("/locations", h.Symptom.Locations)
		r.Get("/user/{userId}", h.Symptom.ListByUser)
		r.Get("/location/{location}", h.Symptom.ListByLocation)
		r.Get("/status/{status}", h.Symptom.ListByStatus)
		r.Get("/severity/{severity}", h.Symptom.ListBySeverity)
		r.Get("/{id}", h.Symptom.Get)
		r.Patch("/{id}/status", h.Symptom.UpdateStatus)
	})

	// Alerts
	r.Route("/api/v1/alerts", func(r chi.Router) {
		r.Get("/", h.Alert.List)
		r.Get("/active", h.Alert.ListActive)
		r.Get("/critical", h.Alert.ListCritical)
		r.Get("/location/{location}", h.Alert.ListByLocation)
		r.Get("/{id}", h.Alert.Get)
		r.Post("/{id}/acknowledge", h.Alert.Acknowledge)
		r.Post("/{id}/resolve", h.Alert.Resolve)
	})

	// Dashboard rollups
	r.Route("/api/v1/dashboard", func(r chi.Router) {
		r.Get("/overview", h.Dashboard.Overview)
		r.Get("/sensors", h.Dashboard.Sensors)
		r.Get("/alerts", h.Dashboard.Alerts)
		r.Get("/symptoms", h.Dashboard.Symptoms)
		r.Get("/trends", h.Dashboard.Trends)
		r.Get("/locations", h.Dashboard.Locations)
	})

	return r
}
