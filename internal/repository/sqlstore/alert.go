package sqlstore

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/aquawatch/aquawatch/internal/domain/alert"
	"github.com/aquawatch/aquawatch/internal/pkg/errors"
)

const alertColumns = `id, type, severity, title, description, location, sensor_id, parameter,
	threshold_value, actual_value, sensor_reading_id, related_symptom_report_ids,
	triggered_at, acknowledged_at, resolved_at, status, notified_users,
	resolved_by, resolution_notes, notes`

type AlertRepository struct {
	db     *sql.DB
	driver string
}

func NewAlertRepository(db *sql.DB, driver string) alert.Repository {
	return &AlertRepository{db: db, driver: driver}
}

// Save upserts the alert by ID so lifecycle transitions reuse the same path
func (r *AlertRepository) Save(ctx context.Context, a *alert.Alert) error {
	relatedIDs, err := json.Marshal(a.RelatedSymptomReportIDs)
	if err != nil {
		return errors.DatabaseError("Failed to encode related report IDs", err)
	}
	notified, err := json.Marshal(a.NotifiedUsers)
	if err != nil {
		return errors.DatabaseError("Failed to encode notified users", err)
	}

	query := rebind(r.driver, `
		INSERT INTO alerts (`+alertColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			status = excluded.status,
			acknowledged_at = excluded.acknowledged_at,
			resolved_at = excluded.resolved_at,
			notified_users = excluded.notified_users,
			resolved_by = excluded.resolved_by,
			resolution_notes = excluded.resolution_notes,
			notes = excluded.notes
	`)

	_, err = r.db.ExecContext(ctx, query,
		a.ID, a.Type, a.Severity, a.Title, a.Description, a.Location, a.SensorID, a.Parameter,
		nullFloat(a.ThresholdValue), nullFloat(a.ActualValue), a.SensorReadingID, string(relatedIDs),
		formatTime(a.TriggeredAt), nullTime(a.AcknowledgedAt), nullTime(a.ResolvedAt), a.Status,
		string(notified), a.ResolvedBy, a.ResolutionNotes, a.Notes,
	)
	if err != nil {
		return errors.DatabaseError("Failed to save alert", err)
	}
	return nil
}

func (r *AlertRepository) GetByID(ctx context.Context, id string) (*alert.Alert, error) {
	query := rebind(r.driver, `SELECT `+alertColumns+` FROM alerts WHERE id = ?`)

	a, err := scanAlert(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("Alert")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get alert", err)
	}
	return a, nil
}

func (r *AlertRepository) FindAll(ctx context.Context) ([]*alert.Alert, error) {
	return r.query(ctx, `SELECT `+alertColumns+` FROM alerts ORDER BY triggered_at DESC`)
}

func (r *AlertRepository) FindByStatus(ctx context.Context, status string) ([]*alert.Alert, error) {
	query := rebind(r.driver, `SELECT `+alertColumns+` FROM alerts WHERE status = ? ORDER BY triggered_at DESC`)
	return r.query(ctx, query, status)
}

func (r *AlertRepository) FindBySeverity(ctx context.Context, severity string) ([]*alert.Alert, error) {
	query := rebind(r.driver, `SELECT `+alertColumns+` FROM alerts WHERE severity = ? ORDER BY triggered_at DESC`)
	return r.query(ctx, query, severity)
}

func (r *AlertRepository) FindByLocation(ctx context.Context, location string) ([]*alert.Alert, error) {
	query := rebind(r.driver, `SELECT `+alertColumns+` FROM alerts WHERE location = ? ORDER BY triggered_at DESC`)
	return r.query(ctx, query, location)
}

func (r *AlertRepository) FindRecent(ctx context.Context, limit int) ([]*alert.Alert, error) {
	query := rebind(r.driver, `SELECT `+alertColumns+` FROM alerts ORDER BY triggered_at DESC LIMIT ?`)
	return r.query(ctx, query, limit)
}

func (r *AlertRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM alerts`).Scan(&n); err != nil {
		return 0, errors.DatabaseError("Failed to count alerts", err)
	}
	return n, nil
}

func (r *AlertRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	query := rebind(r.driver, `SELECT COUNT(*) FROM alerts WHERE status = ?`)

	var n int64
	if err := r.db.QueryRowContext(ctx, query, status).Scan(&n); err != nil {
		return 0, errors.DatabaseError("Failed to count alerts", err)
	}
	return n, nil
}

func (r *AlertRepository) CountBySeverity(ctx context.Context, severity string) (int64, error) {
	query := rebind(r.driver, `SELECT COUNT(*) FROM alerts WHERE severity = ?`)

	var n int64
	if err := r.db.QueryRowContext(ctx, query, severity).Scan(&n); err != nil {
		return 0, errors.DatabaseError("Failed to count alerts", err)
	}
	return n, nil
}

func (r *AlertRepository) query(ctx context.Context, query string, args ...interface{}) ([]*alert.Alert, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list alerts", err)
	}
	defer rows.Close()

	alerts := make([]*alert.Alert, 0, 64)
	for rows.Next() {
		a, err := scanAlert(rows)
		if err != nil {
			return nil, errors.DatabaseError("Failed to scan alert", err)
		}
		alerts = append(alerts, a)
	}
	return alerts, rows.Err()
}

func scanAlert(row rowScanner) (*alert.Alert, error) {
	var a alert.Alert
	var threshold, actual sql.NullFloat64
	var relatedIDs, notified, triggeredAt string
	var acknowledgedAt, resolvedAt sql.NullString

	err := row.Scan(
		&a.ID, &a.Type, &a.Severity, &a.Title, &a.Description, &a.Location, &a.SensorID, &a.Parameter,
		&threshold, &actual, &a.SensorReadingID, &relatedIDs,
		&triggeredAt, &acknowledgedAt, &resolvedAt, &a.Status,
		&notified, &a.ResolvedBy, &a.ResolutionNotes, &a.Notes,
	)
	if err != nil {
		return nil, err
	}

	a.ThresholdValue = floatPtr(threshold)
	a.ActualValue = floatPtr(actual)
	if err := json.Unmarshal([]byte(relatedIDs), &a.RelatedSymptomReportIDs); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(notified), &a.NotifiedUsers); err != nil {
		return nil, err
	}
	a.TriggeredAt = parseTime(triggeredAt)
	a.AcknowledgedAt = timePtr(acknowledgedAt)
	a.ResolvedAt = timePtr(resolvedAt)

	return &a, nil
}
