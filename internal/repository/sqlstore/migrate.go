package sqlstore

import (
	"database/sql"
	"fmt"
)

// Bootstrap creates the schema if it does not exist. The DDL is kept to
// the dialect subset both SQLite and PostgreSQL accept.
func Bootstrap(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS readings (
			id TEXT PRIMARY KEY,
			sensor_id TEXT NOT NULL,
			location TEXT NOT NULL DEFAULT '',
			ph DOUBLE PRECISION,
			temperature DOUBLE PRECISION,
			turbidity DOUBLE PRECISION,
			dissolved_oxygen DOUBLE PRECISION,
			conductivity DOUBLE PRECISION,
			total_dissolved_solids DOUBLE PRECISION,
			chlorine DOUBLE PRECISION,
			hardness DOUBLE PRECISION,
			water_level DOUBLE PRECISION,
			flow_rate DOUBLE PRECISION,
			timestamp TEXT NOT NULL,
			quality_status TEXT NOT NULL DEFAULT '',
			notes TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE INDEX IF NOT EXISTS idx_readings_sensor ON readings (sensor_id, timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_readings_location ON readings (location)`,
		`CREATE INDEX IF NOT EXISTS idx_readings_timestamp ON readings (timestamp)`,

		`CREATE TABLE IF NOT EXISTS symptom_reports (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL DEFAULT '',
			location TEXT NOT NULL,
			water_source TEXT NOT NULL DEFAULT '',
			symptoms TEXT NOT NULL DEFAULT '[]',
			severity TEXT NOT NULL DEFAULT '',
			duration TEXT NOT NULL DEFAULT '',
			water_consumption INTEGER NOT NULL DEFAULT 0,
			additional_notes TEXT NOT NULL DEFAULT '',
			contact_info TEXT NOT NULL DEFAULT '',
			reported_at TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'PENDING',
			investigation_notes TEXT NOT NULL DEFAULT '',
			investigated_at TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_reports_location ON symptom_reports (location, reported_at)`,
		`CREATE INDEX IF NOT EXISTS idx_reports_status ON symptom_reports (status)`,

		`CREATE TABLE IF NOT EXISTS alerts (
			id TEXT PRIMARY KEY,
			type TEXT NOT NULL,
			severity TEXT NOT NULL,
			title TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			location TEXT NOT NULL DEFAULT '',
			sensor_id TEXT NOT NULL DEFAULT '',
			parameter TEXT NOT NULL DEFAULT '',
			threshold_value DOUBLE PRECISION,
			actual_value DOUBLE PRECISION,
			sensor_reading_id TEXT NOT NULL DEFAULT '',
			related_symptom_report_ids TEXT NOT NULL DEFAULT '[]',
			triggered_at TEXT NOT NULL,
			acknowledged_at TEXT,
			resolved_at TEXT,
			status TEXT NOT NULL DEFAULT 'ACTIVE',
			notified_users TEXT NOT NULL DEFAULT '[]',
			resolved_by TEXT NOT NULL DEFAULT '',
			resolution_notes TEXT NOT NULL DEFAULT '',
			notes TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE INDEX IF NOT EXISTS idx_alerts_status ON alerts (status)`,
		`CREATE INDEX IF NOT EXISTS idx_alerts_severity ON alerts (severity)`,
		`CREATE INDEX IF NOT EXISTS idx_alerts_location ON alerts (location)`,
	}

	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to bootstrap schema: %w", err)
		}
	}
	return nil
}
