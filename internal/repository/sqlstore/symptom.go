package sqlstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/aquawatch/aquawatch/internal/domain/symptom"
	"github.com/aquawatch/aquawatch/internal/pkg/errors"
)

const reportColumns = `id, user_id, location, water_source, symptoms, severity, duration,
	water_consumption, additional_notes, contact_info, reported_at, status,
	investigation_notes, investigated_at`

type SymptomRepository struct {
	db     *sql.DB
	driver string
}

func NewSymptomRepository(db *sql.DB, driver string) symptom.Repository {
	return &SymptomRepository{db: db, driver: driver}
}

func (r *SymptomRepository) Save(ctx context.Context, rep *symptom.Report) error {
	symptoms, err := json.Marshal(rep.Symptoms)
	if err != nil {
		return errors.DatabaseError("Failed to encode symptoms", err)
	}

	query := rebind(r.driver, `
		INSERT INTO symptom_reports (`+reportColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			status = excluded.status,
			investigation_notes = excluded.investigation_notes,
			investigated_at = excluded.investigated_at
	`)

	_, err = r.db.ExecContext(ctx, query,
		rep.ID, rep.UserID, rep.Location, rep.WaterSource, string(symptoms),
		rep.Severity, rep.Duration, rep.WaterConsumption, rep.AdditionalNotes,
		rep.ContactInfo, formatTime(rep.ReportedAt), rep.Status,
		rep.InvestigationNotes, nullTime(rep.InvestigatedAt),
	)
	if err != nil {
		return errors.DatabaseError("Failed to save symptom report", err)
	}
	return nil
}

func (r *SymptomRepository) GetByID(ctx context.Context, id string) (*symptom.Report, error) {
	query := rebind(r.driver, `SELECT `+reportColumns+` FROM symptom_reports WHERE id = ?`)

	rep, err := scanReport(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("Symptom report")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get symptom report", err)
	}
	return rep, nil
}

func (r *SymptomRepository) FindAll(ctx context.Context) ([]*symptom.Report, error) {
	return r.query(ctx, `SELECT `+reportColumns+` FROM symptom_reports ORDER BY reported_at DESC`)
}

func (r *SymptomRepository) FindByUserID(ctx context.Context, userID string) ([]*symptom.Report, error) {
	query := rebind(r.driver, `SELECT `+reportColumns+` FROM symptom_reports WHERE user_id = ? ORDER BY reported_at DESC`)
	return r.query(ctx, query, userID)
}

func (r *SymptomRepository) FindByLocation(ctx context.Context, location string) ([]*symptom.Report, error) {
	query := rebind(r.driver, `SELECT `+reportColumns+` FROM symptom_reports WHERE location = ? ORDER BY reported_at DESC`)
	return r.query(ctx, query, location)
}

func (r *SymptomRepository) FindByStatus(ctx context.Context, status string) ([]*symptom.Report, error) {
	query := rebind(r.driver, `SELECT `+reportColumns+` FROM symptom_reports WHERE status = ? ORDER BY reported_at DESC`)
	return r.query(ctx, query, status)
}

func (r *SymptomRepository) FindBySeverity(ctx context.Context, severity string) ([]*symptom.Report, error) {
	query := rebind(r.driver, `SELECT `+reportColumns+` FROM symptom_reports WHERE severity = ? ORDER BY reported_at DESC`)
	return r.query(ctx, query, severity)
}

func (r *SymptomRepository) FindByTimeRange(ctx context.Context, start, end time.Time) ([]*symptom.Report, error) {
	query := rebind(r.driver, `
		SELECT `+reportColumns+` FROM symptom_reports
		WHERE reported_at >= ? AND reported_at <= ? ORDER BY reported_at DESC
	`)
	return r.query(ctx, query, formatTime(start), formatTime(end))
}

func (r *SymptomRepository) FindByLocationAndTimeRange(ctx context.Context, location string, start, end time.Time) ([]*symptom.Report, error) {
	query := rebind(r.driver, `
		SELECT `+reportColumns+` FROM symptom_reports
		WHERE location = ? AND reported_at >= ? AND reported_at <= ?
		ORDER BY reported_at DESC
	`)
	return r.query(ctx, query, location, formatTime(start), formatTime(end))
}

// FindBySymptom matches against the JSON-encoded symptom list. Matching
// on the quoted value avoids substring hits across list entries.
func (r *SymptomRepository) FindBySymptom(ctx context.Context, sym string) ([]*symptom.Report, error) {
	encoded, err := json.Marshal(sym)
	if err != nil {
		return nil, errors.DatabaseError("Failed to encode symptom", err)
	}

	query := rebind(r.driver, `
		SELECT `+reportColumns+` FROM symptom_reports
		WHERE symptoms LIKE ? ORDER BY reported_at DESC
	`)
	return r.query(ctx, query, "%"+string(encoded)+"%")
}

func (r *SymptomRepository) FindSevereSince(ctx context.Context, since time.Time) ([]*symptom.Report, error) {
	query := rebind(r.driver, `
		SELECT `+reportColumns+` FROM symptom_reports
		WHERE severity = ? AND reported_at >= ? ORDER BY reported_at DESC
	`)
	return r.query(ctx, query, symptom.SeveritySevere, formatTime(since))
}

func (r *SymptomRepository) DistinctLocations(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT DISTINCT location FROM symptom_reports ORDER BY location`)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list locations", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, errors.DatabaseError("Failed to scan location", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r *SymptomRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM symptom_reports`).Scan(&n); err != nil {
		return 0, errors.DatabaseError("Failed to count symptom reports", err)
	}
	return n, nil
}

func (r *SymptomRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM symptom_reports WHERE status = ?`, status)
}

func (r *SymptomRepository) CountByLocation(ctx context.Context, location string) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM symptom_reports WHERE location = ?`, location)
}

func (r *SymptomRepository) CountBySeverity(ctx context.Context, severity string) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM symptom_reports WHERE severity = ?`, severity)
}

func (r *SymptomRepository) count(ctx context.Context, query string, args ...interface{}) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, rebind(r.driver, query), args...).Scan(&n); err != nil {
		return 0, errors.DatabaseError("Failed to count symptom reports", err)
	}
	return n, nil
}

func (r *SymptomRepository) query(ctx context.Context, query string, args ...interface{}) ([]*symptom.Report, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list symptom reports", err)
	}
	defer rows.Close()

	reports := make([]*symptom.Report, 0, 64)
	for rows.Next() {
		rep, err := scanReport(rows)
		if err != nil {
			return nil, errors.DatabaseError("Failed to scan symptom report", err)
		}
		reports = append(reports, rep)
	}
	return reports, rows.Err()
}

func scanReport(row rowScanner) (*symptom.Report, error) {
	var rep symptom.Report
	var symptoms, reportedAt string
	var investigatedAt sql.NullString

	err := row.Scan(
		&rep.ID, &rep.UserID, &rep.Location, &rep.WaterSource, &symptoms,
		&rep.Severity, &rep.Duration, &rep.WaterConsumption, &rep.AdditionalNotes,
		&rep.ContactInfo, &reportedAt, &rep.Status,
		&rep.InvestigationNotes, &investigatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(symptoms), &rep.Symptoms); err != nil {
		return nil, err
	}
	rep.ReportedAt = parseTime(reportedAt)
	rep.InvestigatedAt = timePtr(investigatedAt)

	return &rep, nil
}
