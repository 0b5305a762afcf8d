package reading

import (
	"context"
	"time"
)

// Service defines the business logic for sensor readings
type Service interface {
	// Ingest classifies and stores a new reading. Missing ID/timestamp are
	// filled in. Classifier failure degrades the quality status to UNKNOWN
	// and is never returned to the caller.
	Ingest(ctx context.Context, r *Reading) (*Reading, error)

	// GetByID retrieves a reading by ID
	GetByID(ctx context.Context, id string) (*Reading, error)

	// GetAll retrieves all readings
	GetAll(ctx context.Context) ([]*Reading, error)

	// GetBySensorID retrieves readings for one sensor, newest first
	GetBySensorID(ctx context.Context, sensorID string) ([]*Reading, error)

	// GetByLocation retrieves readings for one location, newest first
	GetByLocation(ctx context.Context, location string) ([]*Reading, error)

	// GetByTimeRange retrieves readings within [start, end], oldest first
	GetByTimeRange(ctx context.Context, start, end time.Time) ([]*Reading, error)

	// GetRecent retrieves the newest readings up to limit
	GetRecent(ctx context.Context, limit int) ([]*Reading, error)

	// GetLatest retrieves the most recent reading across all sensors
	GetLatest(ctx context.Context) (*Reading, error)

	// GetLatestBySensorID retrieves the most recent reading for a sensor
	GetLatestBySensorID(ctx context.Context, sensorID string) (*Reading, error)

	// GetByQualityStatus retrieves readings tagged with the given quality status
	GetByQualityStatus(ctx context.Context, status string) ([]*Reading, error)

	// GetCritical retrieves readings whose parameters breach a critical threshold
	GetCritical(ctx context.Context) ([]*Reading, error)

	// DistinctSensorIDs lists all known sensor IDs
	DistinctSensorIDs(ctx context.Context) ([]string, error)

	// DistinctLocations lists all known locations
	DistinctLocations(ctx context.Context) ([]string, error)
}
