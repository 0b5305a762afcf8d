package alert

import (
	"context"

	"github.com/aquawatch/aquawatch/internal/domain/reading"
)

// Service defines the alert rule engine and lifecycle operations
type Service interface {
	// Create stores a new alert, defaulting status to ACTIVE and
	// triggeredAt to now
	Create(ctx context.Context, a *Alert) (*Alert, error)

	// GetByID retrieves an alert by ID
	GetByID(ctx context.Context, id string) (*Alert, error)

	// GetAll retrieves all alerts
	GetAll(ctx context.Context) ([]*Alert, error)

	// GetByStatus retrieves alerts with the given status
	GetByStatus(ctx context.Context, status string) ([]*Alert, error)

	// GetBySeverity retrieves alerts with the given severity
	GetBySeverity(ctx context.Context, severity string) ([]*Alert, error)

	// GetByLocation retrieves alerts for a location
	GetByLocation(ctx context.Context, location string) ([]*Alert, error)

	// GetActive retrieves alerts with status ACTIVE
	GetActive(ctx context.Context) ([]*Alert, error)

	// GetCritical retrieves alerts with severity CRITICAL
	GetCritical(ctx context.Context) ([]*Alert, error)

	// Acknowledge transitions an alert to ACKNOWLEDGED, stamps
	// acknowledgedAt and records the acknowledging user exactly once
	Acknowledge(ctx context.Context, id, userID string) (*Alert, error)

	// Resolve transitions an alert to RESOLVED from any prior status,
	// stamping resolvedAt and recording who resolved it
	Resolve(ctx context.Context, id, resolvedBy, resolutionNotes string) (*Alert, error)

	// EvaluateReading checks a reading against the fixed water-quality
	// thresholds and creates one alert per breaching parameter
	EvaluateReading(ctx context.Context, r *reading.Reading) ([]*Alert, error)

	// CheckSymptomCluster creates a cluster alert when enough symptom
	// reports have accumulated at a location within the trailing window
	CheckSymptomCluster(ctx context.Context, location string) (*Alert, error)
}
