package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/aquawatch/aquawatch/internal/domain/alert"
	"github.com/aquawatch/aquawatch/internal/domain/symptom"
	apperrors "github.com/aquawatch/aquawatch/internal/pkg/errors"
	"github.com/aquawatch/aquawatch/internal/pkg/logger"
)

// SymptomService implements symptom.Service
type SymptomService struct {
	repo     symptom.Repository
	alertSvc alert.Service
	logger   *logger.Logger
	now      func() time.Time
}

// NewSymptomService creates a new symptom report service. A nil alert
// service disables cluster detection.
func NewSymptomService(repo symptom.Repository, alertSvc alert.Service, log *logger.Logger) symptom.Service {
	return &SymptomService{
		repo:     repo,
		alertSvc: alertSvc,
		logger:   log,
		now:      time.Now,
	}
}

// Create stores a new report and runs cluster detection for its location.
// A cluster-check failure is logged, not returned: the report is already
// committed by then.
func (s *SymptomService) Create(ctx context.Context, r *symptom.Report) (*symptom.Report, error) {
	if r.Location == "" {
		return nil, apperrors.BadRequest("location is required")
	}
	if len(r.Symptoms) == 0 {
		return nil, apperrors.BadRequest("at least one symptom is required")
	}
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	if r.ReportedAt.IsZero() {
		r.ReportedAt = s.now()
	}
	if r.Status == "" {
		r.Status = symptom.StatusPending
	}

	if err := s.repo.Save(ctx, r); err != nil {
		s.logger.ErrorWithErr(err, "Failed to save symptom report")
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"report_id": r.ID,
		"location":  r.Location,
		"severity":  r.Severity,
	}).Info("Symptom report created")

	if s.alertSvc != nil {
		if _, err := s.alertSvc.CheckSymptomCluster(ctx, r.Location); err != nil {
			s.logger.ErrorWithErr(err, "Cluster check failed")
		}
	}

	return r, nil
}

// GetByID retrieves a report by ID
func (s *SymptomService) GetByID(ctx context.Context, id string) (*symptom.Report, error) {
	return s.repo.GetByID(ctx, id)
}

// GetAll retrieves all reports
func (s *SymptomService) GetAll(ctx context.Context) ([]*symptom.Report, error) {
	return s.repo.FindAll(ctx)
}

// GetByUserID retrieves reports for a user
func (s *SymptomService) GetByUserID(ctx context.Context, userID string) ([]*symptom.Report, error) {
	return s.repo.FindByUserID(ctx, userID)
}

// GetByLocation retrieves reports for a location
func (s *SymptomService) GetByLocation(ctx context.Context, location string) ([]*symptom.Report, error) {
	return s.repo.FindByLocation(ctx, location)
}

// GetByStatus retrieves reports with the given status
func (s *SymptomService) GetByStatus(ctx context.Context, status string) ([]*symptom.Report, error) {
	return s.repo.FindByStatus(ctx, status)
}

// GetBySeverity retrieves reports with the given severity
func (s *SymptomService) GetBySeverity(ctx context.Context, severity string) ([]*symptom.Report, error) {
	return s.repo.FindBySeverity(ctx, severity)
}

// GetByTimeRange retrieves reports within [start, end]
func (s *SymptomService) GetByTimeRange(ctx context.Context, start, end time.Time) ([]*symptom.Report, error) {
	if end.Before(start) {
		return nil, apperrors.BadRequest("end must not be before start")
	}
	return s.repo.FindByTimeRange(ctx, start, end)
}

// GetBySymptoms retrieves reports containing any of the given symptoms,
// deduplicated by report ID
func (s *SymptomService) GetBySymptoms(ctx context.Context, symptoms []string) ([]*symptom.Report, error) {
	seen := make(map[string]bool)
	var out []*symptom.Report

	for _, sym := range symptoms {
		reports, err := s.repo.FindBySymptom(ctx, sym)
		if err != nil {
			return nil, err
		}
		for _, r := range reports {
			if !seen[r.ID] {
				seen[r.ID] = true
				out = append(out, r)
			}
		}
	}
	return out, nil
}

// UpdateStatus updates a report's investigation status and notes
func (s *SymptomService) UpdateStatus(ctx context.Context, id, status, investigationNotes string) (*symptom.Report, error) {
	switch status {
	case symptom.StatusPending, symptom.StatusInvestigated, symptom.StatusResolved:
	default:
		return nil, apperrors.BadRequest("invalid report status: " + status)
	}

	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := s.now()
	r.Status = status
	r.InvestigationNotes = investigationNotes
	r.InvestigatedAt = &now

	if err := s.repo.Save(ctx, r); err != nil {
		s.logger.ErrorWithErr(err, "Failed to update symptom report")
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"report_id": id,
		"status":    status,
	}).Info("Symptom report status updated")

	return r, nil
}

// DistinctLocations lists all locations with at least one report
func (s *SymptomService) DistinctLocations(ctx context.Context) ([]string, error) {
	return s.repo.DistinctLocations(ctx)
}
