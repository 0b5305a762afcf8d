package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/aquawatch/aquawatch/internal/domain/alert"
	"github.com/aquawatch/aquawatch/internal/domain/reading"
	"github.com/aquawatch/aquawatch/internal/ml"
	apperrors "github.com/aquawatch/aquawatch/internal/pkg/errors"
	"github.com/aquawatch/aquawatch/internal/pkg/logger"
	"github.com/aquawatch/aquawatch/internal/pkg/metrics"
)

// ReadingService implements reading.Service
type ReadingService struct {
	repo       reading.Repository
	classifier ml.Classifier
	alertSvc   alert.Service
	logger     *logger.Logger
	now        func() time.Time
}

// NewReadingService creates a new reading service. The classifier and
// alert service are optional; nil disables classification and threshold
// evaluation respectively.
func NewReadingService(repo reading.Repository, classifier ml.Classifier, alertSvc alert.Service, log *logger.Logger) reading.Service {
	return &ReadingService{
		repo:       repo,
		classifier: classifier,
		alertSvc:   alertSvc,
		logger:     log,
		now:        time.Now,
	}
}

// Ingest classifies, stores and evaluates a new reading. The reading is
// stored even when the classifier is down, and alert evaluation failures
// are logged but never surface to the sensor.
func (s *ReadingService) Ingest(ctx context.Context, r *reading.Reading) (*reading.Reading, error) {
	if r.SensorID == "" {
		return nil, apperrors.BadRequest("sensorId is required")
	}
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	if r.Timestamp.IsZero() {
		r.Timestamp = s.now()
	}

	r.QualityStatus = s.classify(ctx, r)

	if err := s.repo.Save(ctx, r); err != nil {
		s.logger.ErrorWithErr(err, "Failed to save reading")
		return nil, err
	}

	metrics.RecordReadingIngested(r.QualityStatus)
	s.logger.WithFields(map[string]interface{}{
		"reading_id":     r.ID,
		"sensor_id":      r.SensorID,
		"quality_status": r.QualityStatus,
	}).Info("Reading ingested")

	if s.alertSvc != nil {
		if _, err := s.alertSvc.EvaluateReading(ctx, r); err != nil {
			s.logger.ErrorWithErr(err, "Threshold evaluation failed")
		}
	}

	return r, nil
}

func (s *ReadingService) classify(ctx context.Context, r *reading.Reading) string {
	if s.classifier == nil {
		return reading.QualityUnknown
	}

	pred, err := s.classifier.Predict(ctx, ml.Input{
		Ph:                   r.Ph,
		Temperature:          r.Temperature,
		TotalDissolvedSolids: r.TotalDissolvedSolids,
		DissolvedOxygen:      r.DissolvedOxygen,
		Turbidity:            r.Turbidity,
	})
	if err != nil {
		metrics.RecordClassifierFailure()
		s.logger.WarnWithErr(err, "Classifier unavailable, tagging reading UNKNOWN")
		return reading.QualityUnknown
	}
	return pred.QualityStatus
}

// GetByID retrieves a reading by ID
func (s *ReadingService) GetByID(ctx context.Context, id string) (*reading.Reading, error) {
	return s.repo.GetByID(ctx, id)
}

// GetAll retrieves all readings
func (s *ReadingService) GetAll(ctx context.Context) ([]*reading.Reading, error) {
	return s.repo.FindAll(ctx)
}

// GetBySensorID retrieves readings for one sensor
func (s *ReadingService) GetBySensorID(ctx context.Context, sensorID string) ([]*reading.Reading, error) {
	return s.repo.FindBySensorID(ctx, sensorID)
}

// GetByLocation retrieves readings for one location
func (s *ReadingService) GetByLocation(ctx context.Context, location string) ([]*reading.Reading, error) {
	return s.repo.FindByLocation(ctx, location)
}

// GetByTimeRange retrieves readings within [start, end]
func (s *ReadingService) GetByTimeRange(ctx context.Context, start, end time.Time) ([]*reading.Reading, error) {
	if end.Before(start) {
		return nil, apperrors.BadRequest("end must not be before start")
	}
	return s.repo.FindByTimeRange(ctx, start, end)
}

// GetRecent retrieves the newest readings up to limit
func (s *ReadingService) GetRecent(ctx context.Context, limit int) ([]*reading.Reading, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.repo.FindRecent(ctx, limit)
}

// GetLatest retrieves the most recent reading across all sensors
func (s *ReadingService) GetLatest(ctx context.Context) (*reading.Reading, error) {
	recent, err := s.repo.FindRecent(ctx, 1)
	if err != nil {
		return nil, err
	}
	if len(recent) == 0 {
		return nil, apperrors.NotFound("no readings recorded yet")
	}
	return recent[0], nil
}

// GetLatestBySensorID retrieves the most recent reading for a sensor
func (s *ReadingService) GetLatestBySensorID(ctx context.Context, sensorID string) (*reading.Reading, error) {
	return s.repo.LatestBySensorID(ctx, sensorID)
}

// GetByQualityStatus retrieves readings tagged with the given quality status
func (s *ReadingService) GetByQualityStatus(ctx context.Context, status string) ([]*reading.Reading, error) {
	return s.repo.FindByQualityStatus(ctx, status)
}

// GetCritical retrieves readings whose parameters breach a critical
// threshold, regardless of the classifier's verdict
func (s *ReadingService) GetCritical(ctx context.Context) ([]*reading.Reading, error) {
	all, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	var critical []*reading.Reading
	for _, r := range all {
		if isCriticalReading(r) {
			critical = append(critical, r)
		}
	}
	return critical, nil
}

func isCriticalReading(r *reading.Reading) bool {
	if r.Ph != nil && (*r.Ph < PhCriticalMin || *r.Ph > PhCriticalMax) {
		return true
	}
	if r.Turbidity != nil && *r.Turbidity > TurbidityCritical {
		return true
	}
	if r.Conductivity != nil && *r.Conductivity > ConductivityCritical {
		return true
	}
	return false
}

// DistinctSensorIDs lists all known sensor IDs
func (s *ReadingService) DistinctSensorIDs(ctx context.Context) ([]string, error) {
	return s.repo.DistinctSensorIDs(ctx)
}

// DistinctLocations lists all known locations
func (s *ReadingService) DistinctLocations(ctx context.Context) ([]string, error) {
	return s.repo.DistinctLocations(ctx)
}
