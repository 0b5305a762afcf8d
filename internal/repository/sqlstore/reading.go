package sqlstore

import (
	"context"
	"database/sql"
	"time"

	"github.com/aquawatch/aquawatch/internal/domain/reading"
	"github.com/aquawatch/aquawatch/internal/pkg/errors"
)

const readingColumns = `id, sensor_id, location, ph, temperature, turbidity, dissolved_oxygen,
	conductivity, total_dissolved_solids, chlorine, hardness, water_level, flow_rate,
	timestamp, quality_status, notes`

type ReadingRepository struct {
	db     *sql.DB
	driver string
}

func NewReadingRepository(db *sql.DB, driver string) reading.Repository {
	return &ReadingRepository{db: db, driver: driver}
}

func (r *ReadingRepository) Save(ctx context.Context, rd *reading.Reading) error {
	query := rebind(r.driver, `
		INSERT INTO readings (`+readingColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)

	_, err := r.db.ExecContext(ctx, query,
		rd.ID, rd.SensorID, rd.Location,
		nullFloat(rd.Ph), nullFloat(rd.Temperature), nullFloat(rd.Turbidity),
		nullFloat(rd.DissolvedOxygen), nullFloat(rd.Conductivity), nullFloat(rd.TotalDissolvedSolids),
		nullFloat(rd.Chlorine), nullFloat(rd.Hardness), nullFloat(rd.WaterLevel), nullFloat(rd.FlowRate),
		formatTime(rd.Timestamp), rd.QualityStatus, rd.Notes,
	)
	if err != nil {
		return errors.DatabaseError("Failed to save reading", err)
	}
	return nil
}

func (r *ReadingRepository) GetByID(ctx context.Context, id string) (*reading.Reading, error) {
	query := rebind(r.driver, `SELECT `+readingColumns+` FROM readings WHERE id = ?`)

	rd, err := scanReading(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("Reading")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get reading", err)
	}
	return rd, nil
}

func (r *ReadingRepository) FindAll(ctx context.Context) ([]*reading.Reading, error) {
	query := `SELECT ` + readingColumns + ` FROM readings ORDER BY timestamp DESC`
	return r.query(ctx, query)
}

func (r *ReadingRepository) FindBySensorID(ctx context.Context, sensorID string) ([]*reading.Reading, error) {
	query := rebind(r.driver, `SELECT `+readingColumns+` FROM readings WHERE sensor_id = ? ORDER BY timestamp DESC`)
	return r.query(ctx, query, sensorID)
}

func (r *ReadingRepository) FindByLocation(ctx context.Context, location string) ([]*reading.Reading, error) {
	query := rebind(r.driver, `SELECT `+readingColumns+` FROM readings WHERE location = ? ORDER BY timestamp DESC`)
	return r.query(ctx, query, location)
}

func (r *ReadingRepository) FindByTimeRange(ctx context.Context, start, end time.Time) ([]*reading.Reading, error) {
	query := rebind(r.driver, `
		SELECT `+readingColumns+` FROM readings
		WHERE timestamp >= ? AND timestamp <= ? ORDER BY timestamp ASC
	`)
	return r.query(ctx, query, formatTime(start), formatTime(end))
}

func (r *ReadingRepository) FindByQualityStatus(ctx context.Context, status string) ([]*reading.Reading, error) {
	query := rebind(r.driver, `SELECT `+readingColumns+` FROM readings WHERE quality_status = ? ORDER BY timestamp DESC`)
	return r.query(ctx, query, status)
}

func (r *ReadingRepository) FindRecent(ctx context.Context, limit int) ([]*reading.Reading, error) {
	query := rebind(r.driver, `SELECT `+readingColumns+` FROM readings ORDER BY timestamp DESC LIMIT ?`)
	return r.query(ctx, query, limit)
}

func (r *ReadingRepository) LatestBySensorID(ctx context.Context, sensorID string) (*reading.Reading, error) {
	query := rebind(r.driver, `
		SELECT `+readingColumns+` FROM readings
		WHERE sensor_id = ? ORDER BY timestamp DESC LIMIT 1
	`)

	rd, err := scanReading(r.db.QueryRowContext(ctx, query, sensorID))
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("Reading")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get latest reading", err)
	}
	return rd, nil
}

func (r *ReadingRepository) DistinctSensorIDs(ctx context.Context) ([]string, error) {
	return r.distinct(ctx, `SELECT DISTINCT sensor_id FROM readings ORDER BY sensor_id`)
}

func (r *ReadingRepository) DistinctLocations(ctx context.Context) ([]string, error) {
	return r.distinct(ctx, `SELECT DISTINCT location FROM readings WHERE location <> '' ORDER BY location`)
}

func (r *ReadingRepository) CountSensorsByLocation(ctx context.Context, location string) (int64, error) {
	query := rebind(r.driver, `SELECT COUNT(DISTINCT sensor_id) FROM readings WHERE location = ?`)

	var n int64
	if err := r.db.QueryRowContext(ctx, query, location).Scan(&n); err != nil {
		return 0, errors.DatabaseError("Failed to count sensors", err)
	}
	return n, nil
}

func (r *ReadingRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM readings`).Scan(&n); err != nil {
		return 0, errors.DatabaseError("Failed to count readings", err)
	}
	return n, nil
}

func (r *ReadingRepository) query(ctx context.Context, query string, args ...interface{}) ([]*reading.Reading, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list readings", err)
	}
	defer rows.Close()

	readings := make([]*reading.Reading, 0, 64)
	for rows.Next() {
		rd, err := scanReading(rows)
		if err != nil {
			return nil, errors.DatabaseError("Failed to scan reading", err)
		}
		readings = append(readings, rd)
	}
	return readings, rows.Err()
}

func (r *ReadingRepository) distinct(ctx context.Context, query string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list distinct values", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, errors.DatabaseError("Failed to scan value", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReading(row rowScanner) (*reading.Reading, error) {
	var rd reading.Reading
	var ph, temp, turb, do, cond, tds, chlorine, hardness, level, flow sql.NullFloat64
	var timestamp string

	err := row.Scan(
		&rd.ID, &rd.SensorID, &rd.Location,
		&ph, &temp, &turb, &do, &cond, &tds, &chlorine, &hardness, &level, &flow,
		&timestamp, &rd.QualityStatus, &rd.Notes,
	)
	if err != nil {
		return nil, err
	}

	rd.Ph = floatPtr(ph)
	rd.Temperature = floatPtr(temp)
	rd.Turbidity = floatPtr(turb)
	rd.DissolvedOxygen = floatPtr(do)
	rd.Conductivity = floatPtr(cond)
	rd.TotalDissolvedSolids = floatPtr(tds)
	rd.Chlorine = floatPtr(chlorine)
	rd.Hardness = floatPtr(hardness)
	rd.WaterLevel = floatPtr(level)
	rd.FlowRate = floatPtr(flow)
	rd.Timestamp = parseTime(timestamp)

	return &rd, nil
}
