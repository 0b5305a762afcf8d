package symptom

import (
	"context"
	"time"
)

// Service defines the business logic for symptom reports
type Service interface {
	// Create stores a new report and triggers cluster detection for its location
	Create(ctx context.Context, r *Report) (*Report, error)

	// GetByID retrieves a report by ID
	GetByID(ctx context.Context, id string) (*Report, error)

	// GetAll retrieves all reports
	GetAll(ctx context.Context) ([]*Report, error)

	// GetByUserID retrieves reports for a user
	GetByUserID(ctx context.Context, userID string) ([]*Report, error)

	// GetByLocation retrieves reports for a location
	GetByLocation(ctx context.Context, location string) ([]*Report, error)

	// GetByStatus retrieves reports with the given status
	GetByStatus(ctx context.Context, status string) ([]*Report, error)

	// GetBySeverity retrieves reports with the given severity
	GetBySeverity(ctx context.Context, severity string) ([]*Report, error)

	// GetByTimeRange retrieves reports within [start, end]
	GetByTimeRange(ctx context.Context, start, end time.Time) ([]*Report, error)

	// GetBySymptoms retrieves reports containing any of the given symptoms,
	// deduplicated by report ID
	GetBySymptoms(ctx context.Context, symptoms []string) ([]*Report, error)

	// UpdateStatus updates a report's investigation status and notes
	UpdateStatus(ctx context.Context, id, status, investigationNotes string) (*Report, error)

	// DistinctLocations lists all locations with at least one report
	DistinctLocations(ctx context.Context) ([]string, error)
}
