package reading

import (
	"context"
	"time"
)

// Repository defines the narrow store interface for sensor readings.
// The backing store is a plain document/row store: equality, range and
// ordered queries only, no joins.
type Repository interface {
	// Save persists a reading under its pre-assigned ID
	Save(ctx context.Context, r *Reading) error

	// GetByID retrieves a reading by ID
	GetByID(ctx context.Context, id string) (*Reading, error)

	// FindAll retrieves all readings, newest first
	FindAll(ctx context.Context) ([]*Reading, error)

	// FindBySensorID retrieves readings for one sensor, newest first
	FindBySensorID(ctx context.Context, sensorID string) ([]*Reading, error)

	// FindByLocation retrieves readings for one location, newest first
	FindByLocation(ctx context.Context, location string) ([]*Reading, error)

	// FindByTimeRange retrieves readings with start <= timestamp <= end, oldest first
	FindByTimeRange(ctx context.Context, start, end time.Time) ([]*Reading, error)

	// FindByQualityStatus retrieves readings tagged with the given quality status, newest first
	FindByQualityStatus(ctx context.Context, status string) ([]*Reading, error)

	// FindRecent retrieves the newest readings up to limit
	FindRecent(ctx context.Context, limit int) ([]*Reading, error)

	// LatestBySensorID retrieves the most recent reading for a sensor
	LatestBySensorID(ctx context.Context, sensorID string) (*Reading, error)

	// DistinctSensorIDs lists all sensor IDs that have at least one reading
	DistinctSensorIDs(ctx context.Context) ([]string, error)

	// DistinctLocations lists all non-empty locations seen in readings
	DistinctLocations(ctx context.Context) ([]string, error)

	// CountSensorsByLocation counts distinct sensors reporting from a location
	CountSensorsByLocation(ctx context.Context, location string) (int64, error)

	// Count returns the total number of stored readings
	Count(ctx context.Context) (int64, error)
}
