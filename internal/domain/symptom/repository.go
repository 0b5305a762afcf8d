package symptom

import (
	"context"
	"time"
)

// Repository defines the narrow store interface for symptom reports
type Repository interface {
	// Save persists a report under its pre-assigned ID
	Save(ctx context.Context, r *Report) error

	// GetByID retrieves a report by ID
	GetByID(ctx context.Context, id string) (*Report, error)

	// FindAll retrieves all reports, newest first
	FindAll(ctx context.Context) ([]*Report, error)

	// FindByUserID retrieves reports for a user, newest first
	FindByUserID(ctx context.Context, userID string) ([]*Report, error)

	// FindByLocation retrieves reports for a location, newest first
	FindByLocation(ctx context.Context, location string) ([]*Report, error)

	// FindByStatus retrieves reports with the given status, newest first
	FindByStatus(ctx context.Context, status string) ([]*Report, error)

	// FindBySeverity retrieves reports with the given severity, newest first
	FindBySeverity(ctx context.Context, severity string) ([]*Report, error)

	// FindByTimeRange retrieves reports with start <= reportedAt <= end, newest first
	FindByTimeRange(ctx context.Context, start, end time.Time) ([]*Report, error)

	// FindByLocationAndTimeRange retrieves reports for a location within [start, end], newest first
	FindByLocationAndTimeRange(ctx context.Context, location string, start, end time.Time) ([]*Report, error)

	// FindBySymptom retrieves reports whose symptom list contains the given symptom
	FindBySymptom(ctx context.Context, symptom string) ([]*Report, error)

	// FindSevereSince retrieves SEVERE reports with reportedAt >= since, newest first
	FindSevereSince(ctx context.Context, since time.Time) ([]*Report, error)

	// DistinctLocations lists all locations with at least one report
	DistinctLocations(ctx context.Context) ([]string, error)

	// Count returns the total number of reports
	Count(ctx context.Context) (int64, error)

	// CountByStatus counts reports with the given status
	CountByStatus(ctx context.Context, status string) (int64, error)

	// CountByLocation counts reports for a location
	CountByLocation(ctx context.Context, location string) (int64, error)

	// CountBySeverity counts reports with the given severity
	CountBySeverity(ctx context.Context, severity string) (int64, error)
}
