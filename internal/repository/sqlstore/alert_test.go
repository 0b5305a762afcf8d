package sqlstore_test

import (
	"context"
	"testing"
	"time"

	"github.com/aquawatch/aquawatch/internal/domain/alert"
	"github.com/aquawatch/aquawatch/internal/pkg/errors"
	"github.com/aquawatch/aquawatch/internal/repository/sqlstore"
	"github.com/aquawatch/aquawatch/internal/testutil"
)

func TestAlertRepositoryRoundTrip(t *testing.T) {
	repo := sqlstore.NewAlertRepository(testutil.NewTestDB(t), "sqlite")
	ts := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	a := &alert.Alert{
		ID:                      "a1",
		Type:                    alert.TypeSymptomCluster,
		Severity:                alert.SeverityHigh,
		Title:                   "Symptom Cluster Alert",
		Description:             "High number of symptom reports (5) in the last 24 hours in Village B",
		Location:                "Village B",
		RelatedSymptomReportIDs: []string{"s1", "s2", "s3", "s4", "s5"},
		TriggeredAt:             ts,
		Status:                  alert.StatusActive,
	}
	if err := repo.Save(context.Background(), a); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := repo.GetByID(context.Background(), "a1")
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Type != alert.TypeSymptomCluster || got.Severity != alert.SeverityHigh {
		t.Errorf("got %s/%s", got.Type, got.Severity)
	}
	if len(got.RelatedSymptomReportIDs) != 5 {
		t.Errorf("relatedSymptomReportIDs = %v", got.RelatedSymptomReportIDs)
	}
	if !got.TriggeredAt.Equal(ts) {
		t.Errorf("triggeredAt = %v, want %v", got.TriggeredAt, ts)
	}
	if got.AcknowledgedAt != nil || got.ResolvedAt != nil {
		t.Error("lifecycle stamps must start unset")
	}
}

func TestAlertRepositoryUpsertLifecycle(t *testing.T) {
	repo := sqlstore.NewAlertRepository(testutil.NewTestDB(t), "sqlite")
	ts := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	a := &alert.Alert{
		ID:          "a1",
		Type:        alert.TypeWaterQuality,
		Severity:    alert.SeverityCritical,
		Title:       "pH CRITICAL Alert - Well A",
		Location:    "Well A",
		TriggeredAt: ts,
		Status:      alert.StatusActive,
	}
	if err := repo.Save(context.Background(), a); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	ackAt := ts.Add(10 * time.Minute)
	a.Status = alert.StatusAcknowledged
	a.AcknowledgedAt = &ackAt
	a.NotifiedUsers = []string{"user-1"}
	if err := repo.Save(context.Background(), a); err != nil {
		t.Fatalf("Save() after acknowledge error = %v", err)
	}

	resolvedAt := ts.Add(time.Hour)
	a.Status = alert.StatusResolved
	a.ResolvedAt = &resolvedAt
	a.ResolvedBy = "operator"
	a.ResolutionNotes = "flushed the line"
	if err := repo.Save(context.Background(), a); err != nil {
		t.Fatalf("Save() after resolve error = %v", err)
	}

	got, err := repo.GetByID(context.Background(), "a1")
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Status != alert.StatusResolved {
		t.Errorf("status = %s, want %s", got.Status, alert.StatusResolved)
	}
	if got.AcknowledgedAt == nil || !got.AcknowledgedAt.Equal(ackAt) {
		t.Errorf("acknowledgedAt = %v, want %v", got.AcknowledgedAt, ackAt)
	}
	if got.ResolvedAt == nil || !got.ResolvedAt.Equal(resolvedAt) {
		t.Errorf("resolvedAt = %v, want %v", got.ResolvedAt, resolvedAt)
	}
	if got.ResolvedBy != "operator" || got.ResolutionNotes != "flushed the line" {
		t.Errorf("resolution fields = %s/%q", got.ResolvedBy, got.ResolutionNotes)
	}
	if len(got.NotifiedUsers) != 1 || got.NotifiedUsers[0] != "user-1" {
		t.Errorf("notifiedUsers = %v", got.NotifiedUsers)
	}

	n, err := repo.Count(context.Background())
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if n != 1 {
		t.Errorf("Count() = %d, upsert must not duplicate rows", n)
	}
}

func TestAlertRepositoryFilters(t *testing.T) {
	repo := sqlstore.NewAlertRepository(testutil.NewTestDB(t), "sqlite")
	base := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	seed := func(id, status, severity, location string, offset time.Duration) {
		a := &alert.Alert{
			ID: id, Type: alert.TypeWaterQuality, Status: status,
			Severity: severity, Location: location,
			Title: id, TriggeredAt: base.Add(offset),
		}
		if err := repo.Save(context.Background(), a); err != nil {
			t.Fatalf("Save(%s) error = %v", id, err)
		}
	}
	seed("a1", alert.StatusActive, alert.SeverityCritical, "Well A", 0)
	seed("a2", alert.StatusActive, alert.SeverityMedium, "Well B", time.Minute)
	seed("a3", alert.StatusResolved, alert.SeverityCritical, "Well A", 2*time.Minute)

	t.Run("FindByStatus", func(t *testing.T) {
		got, err := repo.FindByStatus(context.Background(), alert.StatusActive)
		if err != nil {
			t.Fatalf("FindByStatus() error = %v", err)
		}
		if len(got) != 2 || got[0].ID != "a2" {
			t.Errorf("FindByStatus() = %d alerts, first %s", len(got), got[0].ID)
		}
	})

	t.Run("FindBySeverity", func(t *testing.T) {
		got, err := repo.FindBySeverity(context.Background(), alert.SeverityCritical)
		if err != nil {
			t.Fatalf("FindBySeverity() error = %v", err)
		}
		if len(got) != 2 {
			t.Errorf("FindBySeverity() = %d alerts, want 2", len(got))
		}
	})

	t.Run("FindByLocation", func(t *testing.T) {
		got, err := repo.FindByLocation(context.Background(), "Well B")
		if err != nil {
			t.Fatalf("FindByLocation() error = %v", err)
		}
		if len(got) != 1 || got[0].ID != "a2" {
			t.Errorf("FindByLocation() = %d alerts", len(got))
		}
	})

	t.Run("CountByStatus", func(t *testing.T) {
		n, err := repo.CountByStatus(context.Background(), alert.StatusResolved)
		if err != nil {
			t.Fatalf("CountByStatus() error = %v", err)
		}
		if n != 1 {
			t.Errorf("CountByStatus() = %d, want 1", n)
		}
	})

	t.Run("FindRecent", func(t *testing.T) {
		got, err := repo.FindRecent(context.Background(), 2)
		if err != nil {
			t.Fatalf("FindRecent() error = %v", err)
		}
		if len(got) != 2 || got[0].ID != "a3" {
			t.Errorf("FindRecent(2) = %d alerts, first %s", len(got), got[0].ID)
		}
	})
}

func TestAlertRepositoryGetByIDNotFound(t *testing.T) {
	repo := sqlstore.NewAlertRepository(testutil.NewTestDB(t), "sqlite")

	_, err := repo.GetByID(context.Background(), "missing")
	if !errors.IsNotFound(err) {
		t.Errorf("GetByID() error = %v, want not found", err)
	}
}
