package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/aquawatch/aquawatch/internal/domain/alert"
	"github.com/aquawatch/aquawatch/internal/domain/reading"
	"github.com/aquawatch/aquawatch/internal/domain/symptom"
	"github.com/aquawatch/aquawatch/internal/pkg/logger"
	"github.com/aquawatch/aquawatch/internal/pkg/metrics"
)

// Fixed water-quality thresholds. These are engine constants, not policy:
// changing them is a code change.
const (
	PhMin             = 6.5
	PhMax             = 8.5
	PhHighMin         = 5.0
	PhHighMax         = 9.0
	PhCriticalMin     = 4.0
	PhCriticalMax     = 10.0
	TurbidityMax      = 5.0  // NTU
	TurbidityCritical = 10.0 // NTU
	ConductivityMax   = 1000.0 // µS/cm
	ConductivityCritical = 2000.0 // µS/cm

	// ClusterThreshold is the number of symptom reports at one location
	// within ClusterWindow that triggers a cluster alert.
	ClusterThreshold = 5
	ClusterWindow    = 24 * time.Hour
)

// AlertService implements alert.Service
type AlertService struct {
	repo        alert.Repository
	symptomRepo symptom.Repository
	logger      *logger.Logger
	now         func() time.Time
}

// NewAlertService creates a new alert service
func NewAlertService(repo alert.Repository, symptomRepo symptom.Repository, log *logger.Logger) alert.Service {
	return &AlertService{
		repo:        repo,
		symptomRepo: symptomRepo,
		logger:      log,
		now:         time.Now,
	}
}

// Create stores a new alert, defaulting status and trigger time
func (s *AlertService) Create(ctx context.Context, a *alert.Alert) (*alert.Alert, error) {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	if a.Status == "" {
		a.Status = alert.StatusActive
	}
	if a.TriggeredAt.IsZero() {
		a.TriggeredAt = s.now()
	}

	if err := s.repo.Save(ctx, a); err != nil {
		s.logger.ErrorWithErr(err, "Failed to create alert")
		return nil, err
	}

	metrics.RecordAlertTriggered(a.Type, a.Severity)
	s.logger.WithFields(map[string]interface{}{
		"alert_id": a.ID,
		"type":     a.Type,
		"severity": a.Severity,
		"location": a.Location,
	}).Info("Alert created")

	return a, nil
}

// GetByID retrieves an alert by ID
func (s *AlertService) GetByID(ctx context.Context, id string) (*alert.Alert, error) {
	return s.repo.GetByID(ctx, id)
}

// GetAll retrieves all alerts
func (s *AlertService) GetAll(ctx context.Context) ([]*alert.Alert, error) {
	return s.repo.FindAll(ctx)
}

// GetByStatus retrieves alerts with the given status
func (s *AlertService) GetByStatus(ctx context.Context, status string) ([]*alert.Alert, error) {
	return s.repo.FindByStatus(ctx, status)
}

// GetBySeverity retrieves alerts with the given severity
func (s *AlertService) GetBySeverity(ctx context.Context, severity string) ([]*alert.Alert, error) {
	return s.repo.FindBySeverity(ctx, severity)
}

// GetByLocation retrieves alerts for a location
func (s *AlertService) GetByLocation(ctx context.Context, location string) ([]*alert.Alert, error) {
	return s.repo.FindByLocation(ctx, location)
}

// GetActive retrieves alerts with status ACTIVE
func (s *AlertService) GetActive(ctx context.Context) ([]*alert.Alert, error) {
	return s.repo.FindByStatus(ctx, alert.StatusActive)
}

// GetCritical retrieves alerts with severity CRITICAL
func (s *AlertService) GetCritical(ctx context.Context) ([]*alert.Alert, error) {
	return s.repo.FindBySeverity(ctx, alert.SeverityCritical)
}

// Acknowledge transitions an alert to ACKNOWLEDGED
func (s *AlertService) Acknowledge(ctx context.Context, id, userID string) (*alert.Alert, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := s.now()
	a.Status = alert.StatusAcknowledged
	a.AcknowledgedAt = &now
	if !containsString(a.NotifiedUsers, userID) {
		a.NotifiedUsers = append(a.NotifiedUsers, userID)
	}

	if err := s.repo.Save(ctx, a); err != nil {
		s.logger.ErrorWithErr(err, "Failed to acknowledge alert")
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"alert_id": id,
		"user_id":  userID,
	}).Info("Alert acknowledged")

	return a, nil
}

// Resolve transitions an alert to RESOLVED. Resolving an already resolved
// alert overwrites the resolution stamp rather than erroring.
func (s *AlertService) Resolve(ctx context.Context, id, resolvedBy, resolutionNotes string) (*alert.Alert, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := s.now()
	a.Status = alert.StatusResolved
	a.ResolvedAt = &now
	a.ResolvedBy = resolvedBy
	a.ResolutionNotes = resolutionNotes

	if err := s.repo.Save(ctx, a); err != nil {
		s.logger.ErrorWithErr(err, "Failed to resolve alert")
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"alert_id":    id,
		"resolved_by": resolvedBy,
	}).Info("Alert resolved")

	return a, nil
}

// EvaluateReading checks pH, turbidity and conductivity independently
// against their thresholds. Every breaching parameter yields its own
// alert; consecutive breaching readings re-trigger.
func (s *AlertService) EvaluateReading(ctx context.Context, r *reading.Reading) ([]*alert.Alert, error) {
	var created []*alert.Alert

	if r.Ph != nil && (*r.Ph < PhMin || *r.Ph > PhMax) {
		bound := PhMin
		if *r.Ph > PhMax {
			bound = PhMax
		}
		a, err := s.Create(ctx, s.waterQualityAlert(r, "pH", *r.Ph, bound))
		if err != nil {
			return created, err
		}
		created = append(created, a)
	}

	if r.Turbidity != nil && *r.Turbidity > TurbidityMax {
		a, err := s.Create(ctx, s.waterQualityAlert(r, "Turbidity", *r.Turbidity, TurbidityMax))
		if err != nil {
			return created, err
		}
		created = append(created, a)
	}

	if r.Conductivity != nil && *r.Conductivity > ConductivityMax {
		a, err := s.Create(ctx, s.waterQualityAlert(r, "Conductivity", *r.Conductivity, ConductivityMax))
		if err != nil {
			return created, err
		}
		created = append(created, a)
	}

	return created, nil
}

// CheckSymptomCluster fires a cluster alert when the trailing-window report
// count at a location reaches the threshold. There is no suppression
// window: every qualifying report re-triggers until the window drains.
func (s *AlertService) CheckSymptomCluster(ctx context.Context, location string) (*alert.Alert, error) {
	now := s.now()
	recent, err := s.symptomRepo.FindByLocationAndTimeRange(ctx, location, now.Add(-ClusterWindow), now)
	if err != nil {
		s.logger.ErrorWithErr(err, "Failed to query reports for cluster check")
		return nil, err
	}

	if len(recent) < ClusterThreshold {
		return nil, nil
	}

	ids := make([]string, len(recent))
	for i, r := range recent {
		ids[i] = r.ID
	}

	return s.Create(ctx, &alert.Alert{
		Type:     alert.TypeSymptomCluster,
		Severity: alert.SeverityHigh,
		Title:    "Symptom Cluster Alert",
		Description: fmt.Sprintf("High number of symptom reports (%d) in the last 24 hours in %s",
			len(recent), location),
		Location:                location,
		RelatedSymptomReportIDs: ids,
	})
}

func (s *AlertService) waterQualityAlert(r *reading.Reading, parameter string, value, threshold float64) *alert.Alert {
	severity := severityForParameter(parameter, value)
	location := r.Location
	if location == "" {
		location = "Unknown Location"
	}

	v := value
	t := threshold
	return &alert.Alert{
		Type:     alert.TypeWaterQuality,
		Severity: severity,
		Title:    fmt.Sprintf("%s %s Alert - %s", parameter, severity, location),
		Description: fmt.Sprintf("%s value of %.2f is outside the normal range at %s",
			parameter, value, location),
		Location:        r.Location,
		SensorID:        r.SensorID,
		Parameter:       parameter,
		ThresholdValue:  &t,
		ActualValue:     &v,
		SensorReadingID: r.ID,
	}
}

// severityForParameter maps a breaching value to a severity band
func severityForParameter(parameter string, value float64) string {
	switch parameter {
	case "pH":
		if value < PhCriticalMin || value > PhCriticalMax {
			return alert.SeverityCritical
		}
		if value < PhHighMin || value > PhHighMax {
			return alert.SeverityHigh
		}
		return alert.SeverityMedium

	case "Turbidity":
		if value > TurbidityCritical {
			return alert.SeverityCritical
		}
		if value > TurbidityMax {
			return alert.SeverityHigh
		}
		return alert.SeverityMedium

	case "Conductivity":
		if value > ConductivityCritical {
			return alert.SeverityCritical
		}
		if value > ConductivityMax {
			return alert.SeverityHigh
		}
		return alert.SeverityMedium

	default:
		return alert.SeverityMedium
	}
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
