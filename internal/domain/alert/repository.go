package alert

import "context"

// Repository defines the narrow store interface for alerts.
// Save upserts by ID (document-store semantics): lifecycle transitions
// rewrite the whole document.
type Repository interface {
	// Save persists an alert under its pre-assigned ID, overwriting any
	// existing document with the same ID
	Save(ctx context.Context, a *Alert) error

	// GetByID retrieves an alert by ID
	GetByID(ctx context.Context, id string) (*Alert, error)

	// FindAll retrieves all alerts, newest first by trigger time
	FindAll(ctx context.Context) ([]*Alert, error)

	// FindByStatus retrieves alerts with the given status, newest first
	FindByStatus(ctx context.Context, status string) ([]*Alert, error)

	// FindBySeverity retrieves alerts with the given severity, newest first
	FindBySeverity(ctx context.Context, severity string) ([]*Alert, error)

	// FindByLocation retrieves alerts for a location, newest first
	FindByLocation(ctx context.Context, location string) ([]*Alert, error)

	// FindRecent retrieves the most recently triggered alerts up to limit
	FindRecent(ctx context.Context, limit int) ([]*Alert, error)

	// Count returns the total number of alerts
	Count(ctx context.Context) (int64, error)

	// CountByStatus counts alerts with the given status
	CountByStatus(ctx context.Context, status string) (int64, error)

	// CountBySeverity counts alerts with the given severity
	CountBySeverity(ctx context.Context, severity string) (int64, error)
}
