package metrics

import (
	"bufio"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "aquawatch",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "aquawatch",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)

	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "aquawatch",
			Subsystem: "http",
			Name:      "requests_in_flight",
			Help:      "Number of HTTP requests currently being served",
		},
	)

	// Ingestion metrics
	readingsIngested = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "aquawatch",
			Subsystem: "ingest",
			Name:      "readings_total",
			Help:      "Total number of sensor readings ingested",
		},
		[]string{"quality_status"},
	)

	classifierFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "aquawatch",
			Subsystem: "ingest",
			Name:      "classifier_failures_total",
			Help:      "Total number of WQI classifier calls that failed",
		},
	)

	// Alert metrics
	alertsTriggered = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "aquawatch",
			Subsystem: "alerts",
			Name:      "triggered_total",
			Help:      "Total number of alerts triggered",
		},
		[]string{"type", "severity"},
	)

	// Live feed metrics
	livePushes = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "aquawatch",
			Subsystem: "live",
			Name:      "pushes_total",
			Help:      "Total number of live feed broadcasts",
		},
	)

	liveClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "aquawatch",
			Subsystem: "live",
			Name:      "clients",
			Help:      "Number of connected live feed clients",
		},
	)
)

// RecordReadingIngested increments the ingested readings counter
func RecordReadingIngested(qualityStatus string) {
	readingsIngested.WithLabelValues(qualityStatus).Inc()
}

// RecordClassifierFailure increments the classifier failure counter
func RecordClassifierFailure() {
	classifierFailures.Inc()
}

// RecordAlertTriggered increments the triggered alerts counter
func RecordAlertTriggered(alertType, severity string) {
	alertsTriggered.WithLabelValues(alertType, severity).Inc()
}

// RecordLivePush increments the live feed broadcast counter
func RecordLivePush() {
	livePushes.Inc()
}

// SetLiveClients sets the connected live client gauge
func SetLiveClients(n int) {
	liveClients.Set(float64(n))
}

// Handler returns the Prometheus metrics HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}

// Middleware returns an HTTP middleware that records request metrics
func Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			httpRequestsInFlight.Inc()
			defer httpRequestsInFlight.Dec()

			wrapped := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(wrapped, r)

			// Use the route pattern, not the raw path, to keep cardinality bounded
			path := r.URL.Path
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if pattern := rctx.RoutePattern(); pattern != "" {
					path = pattern
				}
			}

			status := strconv.Itoa(wrapped.status)
			httpRequestsTotal.WithLabelValues(r.Method, path, status).Inc()
			httpRequestDuration.WithLabelValues(r.Method, path, status).Observe(time.Since(start).Seconds())
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Hijack lets the websocket upgrade work through the metrics wrapper
func (r *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	if hj, ok := r.ResponseWriter.(http.Hijacker); ok {
		return hj.Hijack()
	}
	return nil, nil, fmt.Errorf("response writer does not support hijacking")
}

func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}
