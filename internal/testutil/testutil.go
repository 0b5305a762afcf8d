// Package testutil provides in-memory doubles and helpers shared by the
// service and repository tests.
package testutil

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/aquawatch/aquawatch/internal/pkg/logger"
	"github.com/aquawatch/aquawatch/internal/repository/sqlstore"
)

// NewTestDB creates an in-memory SQLite database with the full schema
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := sqlstore.Bootstrap(db); err != nil {
		t.Fatalf("Failed to bootstrap test schema: %v", err)
	}

	return db
}

// NewTestLogger creates a logger that stays quiet during tests
func NewTestLogger() *logger.Logger {
	return logger.New(logger.Config{Level: "error", Format: "console"})
}

// FloatPtr returns a pointer to v, for building readings in tests
func FloatPtr(v float64) *float64 {
	return &v
}
