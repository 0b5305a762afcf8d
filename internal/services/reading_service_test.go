package services

import (
	"context"
	goerrors "errors"
	"fmt"
	"testing"
	"time"

	"github.com/aquawatch/aquawatch/internal/domain/reading"
	"github.com/aquawatch/aquawatch/internal/ml"
	"github.com/aquawatch/aquawatch/internal/pkg/errors"
	"github.com/aquawatch/aquawatch/internal/testutil"
)

func newTestReadingService(repo *testutil.MockReadingRepository, classifier ml.Classifier) *ReadingService {
	svc := NewReadingService(repo, classifier, nil, testutil.NewTestLogger()).(*ReadingService)
	svc.now = func() time.Time {
		return time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	}
	return svc
}

func TestIngest(t *testing.T) {
	repo := testutil.NewMockReadingRepository()
	classifier := &testutil.MockClassifier{
		Prediction: &ml.Prediction{WQI: 92, QualityStatus: reading.QualityGood},
	}
	svc := newTestReadingService(repo, classifier)

	r, err := svc.Ingest(context.Background(), &reading.Reading{
		SensorID: "sensor-1",
		Location: "Well A",
		Ph:       testutil.FloatPtr(7.2),
	})
	if err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}
	if r.ID == "" {
		t.Error("ID not assigned")
	}
	if r.Timestamp.IsZero() {
		t.Error("timestamp not defaulted")
	}
	if r.QualityStatus != reading.QualityGood {
		t.Errorf("qualityStatus = %s, want %s", r.QualityStatus, reading.QualityGood)
	}
	if len(classifier.Calls) != 1 {
		t.Errorf("classifier called %d times, want 1", len(classifier.Calls))
	}
	if _, ok := repo.Readings[r.ID]; !ok {
		t.Error("reading not saved")
	}
}

func TestIngestRequiresSensorID(t *testing.T) {
	svc := newTestReadingService(testutil.NewMockReadingRepository(), &testutil.MockClassifier{})

	_, err := svc.Ingest(context.Background(), &reading.Reading{Location: "Well A"})
	appErr, ok := err.(*errors.AppError)
	if !ok || appErr.Code != errors.ErrCodeBadRequest {
		t.Errorf("Ingest() error = %v, want bad request", err)
	}
}

func TestIngestClassifierDown(t *testing.T) {
	repo := testutil.NewMockReadingRepository()
	classifier := &testutil.MockClassifier{
		PredictError: goerrors.New("connection refused"),
	}
	svc := newTestReadingService(repo, classifier)

	r, err := svc.Ingest(context.Background(), &reading.Reading{
		SensorID: "sensor-1",
		Ph:       testutil.FloatPtr(7.0),
	})
	if err != nil {
		t.Fatalf("Ingest() error = %v, reading must survive a classifier outage", err)
	}
	if r.QualityStatus != reading.QualityUnknown {
		t.Errorf("qualityStatus = %s, want %s", r.QualityStatus, reading.QualityUnknown)
	}
	if _, ok := repo.Readings[r.ID]; !ok {
		t.Error("reading not saved despite classifier outage")
	}
}

func TestIngestNoClassifier(t *testing.T) {
	repo := testutil.NewMockReadingRepository()
	svc := newTestReadingService(repo, nil)

	r, err := svc.Ingest(context.Background(), &reading.Reading{SensorID: "sensor-1"})
	if err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}
	if r.QualityStatus != reading.QualityUnknown {
		t.Errorf("qualityStatus = %s, want %s", r.QualityStatus, reading.QualityUnknown)
	}
}

func TestIngestEvaluatesThresholds(t *testing.T) {
	alertRepo := testutil.NewMockAlertRepository()
	alertSvc := newTestAlertService(alertRepo, testutil.NewMockSymptomRepository())

	repo := testutil.NewMockReadingRepository()
	svc := NewReadingService(repo, &testutil.MockClassifier{}, alertSvc, testutil.NewTestLogger()).(*ReadingService)

	_, err := svc.Ingest(context.Background(), &reading.Reading{
		SensorID:  "sensor-1",
		Location:  "Well A",
		Turbidity: testutil.FloatPtr(12.0),
	})
	if err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}
	if len(alertRepo.Alerts) != 1 {
		t.Errorf("ingest raised %d alerts, want 1", len(alertRepo.Alerts))
	}
}

func TestGetCritical(t *testing.T) {
	repo := testutil.NewMockReadingRepository()
	svc := newTestReadingService(repo, nil)
	base := svc.now()

	add := func(id string, mutate func(*reading.Reading)) {
		r := &reading.Reading{ID: id, SensorID: "sensor-1", Timestamp: base}
		mutate(r)
		repo.Readings[id] = r
	}

	add("ph-low", func(r *reading.Reading) { r.Ph = testutil.FloatPtr(3.5) })
	add("ph-high", func(r *reading.Reading) { r.Ph = testutil.FloatPtr(10.5) })
	add("ph-edge", func(r *reading.Reading) { r.Ph = testutil.FloatPtr(4.0) })
	add("turbidity", func(r *reading.Reading) { r.Turbidity = testutil.FloatPtr(11.0) })
	add("conductivity", func(r *reading.Reading) { r.Conductivity = testutil.FloatPtr(2100) })
	add("normal", func(r *reading.Reading) { r.Ph = testutil.FloatPtr(7.0) })
	add("empty", func(r *reading.Reading) {})

	critical, err := svc.GetCritical(context.Background())
	if err != nil {
		t.Fatalf("GetCritical() error = %v", err)
	}

	want := map[string]bool{"ph-low": true, "ph-high": true, "turbidity": true, "conductivity": true}
	if len(critical) != len(want) {
		t.Fatalf("GetCritical() returned %d readings, want %d", len(critical), len(want))
	}
	for _, r := range critical {
		if !want[r.ID] {
			t.Errorf("GetCritical() unexpectedly included %s", r.ID)
		}
	}
}

func TestGetLatest(t *testing.T) {
	repo := testutil.NewMockReadingRepository()
	svc := newTestReadingService(repo, nil)
	base := svc.now()

	_, err := svc.GetLatest(context.Background())
	if !errors.IsNotFound(err) {
		t.Errorf("GetLatest() on empty store error = %v, want not found", err)
	}

	for i := 0; i < 3; i++ {
		id := fmt.Sprintf("reading-%d", i)
		repo.Readings[id] = &reading.Reading{
			ID:        id,
			SensorID:  "sensor-1",
			Timestamp: base.Add(time.Duration(i) * time.Minute),
		}
	}

	latest, err := svc.GetLatest(context.Background())
	if err != nil {
		t.Fatalf("GetLatest() error = %v", err)
	}
	if latest.ID != "reading-2" {
		t.Errorf("GetLatest() = %s, want reading-2", latest.ID)
	}
}

func TestGetByTimeRangeValidation(t *testing.T) {
	svc := newTestReadingService(testutil.NewMockReadingRepository(), nil)
	now := svc.now()

	_, err := svc.GetByTimeRange(context.Background(), now, now.Add(-time.Hour))
	appErr, ok := err.(*errors.AppError)
	if !ok || appErr.Code != errors.ErrCodeBadRequest {
		t.Errorf("GetByTimeRange() error = %v, want bad request", err)
	}
}

func TestGetRecentDefaultsLimit(t *testing.T) {
	repo := testutil.NewMockReadingRepository()
	svc := newTestReadingService(repo, nil)
	base := svc.now()

	for i := 0; i < 15; i++ {
		id := fmt.Sprintf("reading-%d", i)
		repo.Readings[id] = &reading.Reading{
			ID:        id,
			SensorID:  "sensor-1",
			Timestamp: base.Add(time.Duration(i) * time.Minute),
		}
	}

	recent, err := svc.GetRecent(context.Background(), 0)
	if err != nil {
		t.Fatalf("GetRecent() error = %v", err)
	}
	if len(recent) != 10 {
		t.Errorf("GetRecent(0) returned %d readings, want 10", len(recent))
	}
}
