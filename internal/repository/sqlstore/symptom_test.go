package sqlstore_test

import (
	"context"
	"testing"
	"time"

	"github.com/aquawatch/aquawatch/internal/domain/symptom"
	"github.com/aquawatch/aquawatch/internal/repository/sqlstore"
	"github.com/aquawatch/aquawatch/internal/testutil"
)

func seedReport(t *testing.T, repo symptom.Repository, id, location string, symptoms []string, ts time.Time, mutate func(*symptom.Report)) {
	t.Helper()
	r := &symptom.Report{
		ID:         id,
		UserID:     "user-1",
		Location:   location,
		Symptoms:   symptoms,
		Severity:   symptom.SeverityModerate,
		Status:     symptom.StatusPending,
		ReportedAt: ts,
	}
	if mutate != nil {
		mutate(r)
	}
	if err := repo.Save(context.Background(), r); err != nil {
		t.Fatalf("Save(%s) error = %v", id, err)
	}
}

func TestSymptomRepositoryRoundTrip(t *testing.T) {
	repo := sqlstore.NewSymptomRepository(testutil.NewTestDB(t), "sqlite")
	ts := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	seedReport(t, repo, "s1", "Village B", []string{"nausea", "fever"}, ts, func(r *symptom.Report) {
		r.WaterSource = symptom.SourceWell
		r.Duration = symptom.DurationDays
		r.WaterConsumption = 3
	})

	got, err := repo.GetByID(context.Background(), "s1")
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if len(got.Symptoms) != 2 || got.Symptoms[0] != "nausea" {
		t.Errorf("symptoms = %v", got.Symptoms)
	}
	if got.WaterSource != symptom.SourceWell || got.WaterConsumption != 3 {
		t.Errorf("waterSource = %s, consumption = %d", got.WaterSource, got.WaterConsumption)
	}
	if !got.ReportedAt.Equal(ts) {
		t.Errorf("reportedAt = %v, want %v", got.ReportedAt, ts)
	}
	if got.InvestigatedAt != nil {
		t.Error("investigatedAt must start unset")
	}
}

func TestSymptomRepositoryUpsertInvestigation(t *testing.T) {
	repo := sqlstore.NewSymptomRepository(testutil.NewTestDB(t), "sqlite")
	ts := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	seedReport(t, repo, "s1", "Village B", []string{"nausea"}, ts, nil)

	investigatedAt := ts.Add(2 * time.Hour)
	updated := &symptom.Report{
		ID:                 "s1",
		UserID:             "user-1",
		Location:           "Village B",
		Symptoms:           []string{"nausea"},
		Severity:           symptom.SeverityModerate,
		ReportedAt:         ts,
		Status:             symptom.StatusInvestigated,
		InvestigationNotes: "sampling scheduled",
		InvestigatedAt:     &investigatedAt,
	}
	if err := repo.Save(context.Background(), updated); err != nil {
		t.Fatalf("Save() update error = %v", err)
	}

	got, err := repo.GetByID(context.Background(), "s1")
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Status != symptom.StatusInvestigated {
		t.Errorf("status = %s, want %s", got.Status, symptom.StatusInvestigated)
	}
	if got.InvestigationNotes != "sampling scheduled" {
		t.Errorf("investigationNotes = %q", got.InvestigationNotes)
	}
	if got.InvestigatedAt == nil || !got.InvestigatedAt.Equal(investigatedAt) {
		t.Errorf("investigatedAt = %v, want %v", got.InvestigatedAt, investigatedAt)
	}

	n, err := repo.Count(context.Background())
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if n != 1 {
		t.Errorf("Count() = %d, upsert must not duplicate rows", n)
	}
}

func TestSymptomRepositoryFindBySymptom(t *testing.T) {
	repo := sqlstore.NewSymptomRepository(testutil.NewTestDB(t), "sqlite")
	ts := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	seedReport(t, repo, "s1", "Village B", []string{"nausea", "fever"}, ts, nil)
	seedReport(t, repo, "s2", "Village B", []string{"headache"}, ts.Add(time.Minute), nil)
	// "fev" must not match "fever" as a partial entry.
	seedReport(t, repo, "s3", "Village B", []string{"fev"}, ts.Add(2*time.Minute), nil)

	got, err := repo.FindBySymptom(context.Background(), "fever")
	if err != nil {
		t.Fatalf("FindBySymptom() error = %v", err)
	}
	if len(got) != 1 || got[0].ID != "s1" {
		t.Errorf("FindBySymptom(fever) = %d reports", len(got))
	}

	got, err = repo.FindBySymptom(context.Background(), "fev")
	if err != nil {
		t.Fatalf("FindBySymptom() error = %v", err)
	}
	if len(got) != 1 || got[0].ID != "s3" {
		t.Errorf("FindBySymptom(fev) = %d reports, exact entry match expected", len(got))
	}
}

func TestSymptomRepositoryLocationWindow(t *testing.T) {
	repo := sqlstore.NewSymptomRepository(testutil.NewTestDB(t), "sqlite")
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	seedReport(t, repo, "in-1", "Village B", []string{"nausea"}, now.Add(-time.Hour), nil)
	seedReport(t, repo, "in-2", "Village B", []string{"nausea"}, now.Add(-23*time.Hour), nil)
	seedReport(t, repo, "stale", "Village B", []string{"nausea"}, now.Add(-25*time.Hour), nil)
	seedReport(t, repo, "elsewhere", "Well A", []string{"nausea"}, now.Add(-time.Hour), nil)

	got, err := repo.FindByLocationAndTimeRange(context.Background(), "Village B", now.Add(-24*time.Hour), now)
	if err != nil {
		t.Fatalf("FindByLocationAndTimeRange() error = %v", err)
	}
	if len(got) != 2 {
		t.Errorf("FindByLocationAndTimeRange() = %d reports, want 2", len(got))
	}
	for _, r := range got {
		if r.ID == "stale" || r.ID == "elsewhere" {
			t.Errorf("window unexpectedly includes %s", r.ID)
		}
	}
}

func TestSymptomRepositoryFindSevereSince(t *testing.T) {
	repo := sqlstore.NewSymptomRepository(testutil.NewTestDB(t), "sqlite")
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	seedReport(t, repo, "severe-new", "Village B", []string{"vomiting"}, now.Add(-time.Hour), func(r *symptom.Report) {
		r.Severity = symptom.SeveritySevere
	})
	seedReport(t, repo, "severe-old", "Village B", []string{"vomiting"}, now.Add(-48*time.Hour), func(r *symptom.Report) {
		r.Severity = symptom.SeveritySevere
	})
	seedReport(t, repo, "mild-new", "Village B", []string{"nausea"}, now.Add(-time.Hour), func(r *symptom.Report) {
		r.Severity = symptom.SeverityMild
	})

	got, err := repo.FindSevereSince(context.Background(), now.Add(-24*time.Hour))
	if err != nil {
		t.Fatalf("FindSevereSince() error = %v", err)
	}
	if len(got) != 1 || got[0].ID != "severe-new" {
		t.Errorf("FindSevereSince() = %d reports", len(got))
	}
}
