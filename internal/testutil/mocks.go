package testutil

import (
	"context"
	"sort"
	"time"

	"github.com/aquawatch/aquawatch/internal/domain/alert"
	"github.com/aquawatch/aquawatch/internal/domain/reading"
	"github.com/aquawatch/aquawatch/internal/domain/symptom"
	"github.com/aquawatch/aquawatch/internal/ml"
	"github.com/aquawatch/aquawatch/internal/pkg/errors"
)

// MockReadingRepository is an in-memory implementation of reading.Repository
type MockReadingRepository struct {
	Readings  map[string]*reading.Reading
	SaveError error
	GetError  error
}

func NewMockReadingRepository() *MockReadingRepository {
	return &MockReadingRepository{
		Readings: make(map[string]*reading.Reading),
	}
}

func (m *MockReadingRepository) Save(ctx context.Context, r *reading.Reading) error {
	if m.SaveError != nil {
		return m.SaveError
	}
	m.Readings[r.ID] = r
	return nil
}

func (m *MockReadingRepository) GetByID(ctx context.Context, id string) (*reading.Reading, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	r, ok := m.Readings[id]
	if !ok {
		return nil, errors.NotFound("Reading")
	}
	return r, nil
}

func (m *MockReadingRepository) FindAll(ctx context.Context) ([]*reading.Reading, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	return m.sorted(func(*reading.Reading) bool { return true }, false), nil
}

func (m *MockReadingRepository) FindBySensorID(ctx context.Context, sensorID string) ([]*reading.Reading, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	return m.sorted(func(r *reading.Reading) bool { return r.SensorID == sensorID }, false), nil
}

func (m *MockReadingRepository) FindByLocation(ctx context.Context, location string) ([]*reading.Reading, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	return m.sorted(func(r *reading.Reading) bool { return r.Location == location }, false), nil
}

func (m *MockReadingRepository) FindByTimeRange(ctx context.Context, start, end time.Time) ([]*reading.Reading, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	return m.sorted(func(r *reading.Reading) bool {
		return !r.Timestamp.Before(start) && !r.Timestamp.After(end)
	}, true), nil
}

func (m *MockReadingRepository) FindByQualityStatus(ctx context.Context, status string) ([]*reading.Reading, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	return m.sorted(func(r *reading.Reading) bool { return r.QualityStatus == status }, false), nil
}

func (m *MockReadingRepository) FindRecent(ctx context.Context, limit int) ([]*reading.Reading, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	all := m.sorted(func(*reading.Reading) bool { return true }, false)
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (m *MockReadingRepository) LatestBySensorID(ctx context.Context, sensorID string) (*reading.Reading, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	matches := m.sorted(func(r *reading.Reading) bool { return r.SensorID == sensorID }, false)
	if len(matches) == 0 {
		return nil, errors.NotFound("Reading")
	}
	return matches[0], nil
}

func (m *MockReadingRepository) DistinctSensorIDs(ctx context.Context) ([]string, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	seen := make(map[string]bool)
	var ids []string
	for _, r := range m.Readings {
		if !seen[r.SensorID] {
			seen[r.SensorID] = true
			ids = append(ids, r.SensorID)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func (m *MockReadingRepository) DistinctLocations(ctx context.Context) ([]string, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	seen := make(map[string]bool)
	var locations []string
	for _, r := range m.Readings {
		if r.Location != "" && !seen[r.Location] {
			seen[r.Location] = true
			locations = append(locations, r.Location)
		}
	}
	sort.Strings(locations)
	return locations, nil
}

func (m *MockReadingRepository) CountSensorsByLocation(ctx context.Context, location string) (int64, error) {
	seen := make(map[string]bool)
	for _, r := range m.Readings {
		if r.Location == location {
			seen[r.SensorID] = true
		}
	}
	return int64(len(seen)), nil
}

func (m *MockReadingRepository) Count(ctx context.Context) (int64, error) {
	return int64(len(m.Readings)), nil
}

func (m *MockReadingRepository) sorted(keep func(*reading.Reading) bool, ascending bool) []*reading.Reading {
	out := make([]*reading.Reading, 0, len(m.Readings))
	for _, r := range m.Readings {
		if keep(r) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if ascending {
			return out[i].Timestamp.Before(out[j].Timestamp)
		}
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out
}

// MockSymptomRepository is an in-memory implementation of symptom.Repository
type MockSymptomRepository struct {
	Reports   map[string]*symptom.Report
	SaveError error
	GetError  error
}

func NewMockSymptomRepository() *MockSymptomRepository {
	return &MockSymptomRepository{
		Reports: make(map[string]*symptom.Report),
	}
}

func (m *MockSymptomRepository) Save(ctx context.Context, r *symptom.Report) error {
	if m.SaveError != nil {
		return m.SaveError
	}
	m.Reports[r.ID] = r
	return nil
}

func (m *MockSymptomRepository) GetByID(ctx context.Context, id string) (*symptom.Report, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	r, ok := m.Reports[id]
	if !ok {
		return nil, errors.NotFound("Symptom report")
	}
	return r, nil
}

func (m *MockSymptomRepository) FindAll(ctx context.Context) ([]*symptom.Report, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	return m.sorted(func(*symptom.Report) bool { return true }), nil
}

func (m *MockSymptomRepository) FindByUserID(ctx context.Context, userID string) ([]*symptom.Report, error) {
	return m.sorted(func(r *symptom.Report) bool { return r.UserID == userID }), nil
}

func (m *MockSymptomRepository) FindByLocation(ctx context.Context, location string) ([]*symptom.Report, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	return m.sorted(func(r *symptom.Report) bool { return r.Location == location }), nil
}

func (m *MockSymptomRepository) FindByStatus(ctx context.Context, status string) ([]*symptom.Report, error) {
	return m.sorted(func(r *symptom.Report) bool { return r.Status == status }), nil
}

func (m *MockSymptomRepository) FindBySeverity(ctx context.Context, severity string) ([]*symptom.Report, error) {
	return m.sorted(func(r *symptom.Report) bool { return r.Severity == severity }), nil
}

func (m *MockSymptomRepository) FindByTimeRange(ctx context.Context, start, end time.Time) ([]*symptom.Report, error) {
	return m.sorted(func(r *symptom.Report) bool {
		return !r.ReportedAt.Before(start) && !r.ReportedAt.After(end)
	}), nil
}

func (m *MockSymptomRepository) FindByLocationAndTimeRange(ctx context.Context, location string, start, end time.Time) ([]*symptom.Report, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	return m.sorted(func(r *symptom.Report) bool {
		return r.Location == location && !r.ReportedAt.Before(start) && !r.ReportedAt.After(end)
	}), nil
}

func (m *MockSymptomRepository) FindBySymptom(ctx context.Context, sym string) ([]*symptom.Report, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	return m.sorted(func(r *symptom.Report) bool {
		for _, s := range r.Symptoms {
			if s == sym {
				return true
			}
		}
		return false
	}), nil
}

func (m *MockSymptomRepository) FindSevereSince(ctx context.Context, since time.Time) ([]*symptom.Report, error) {
	return m.sorted(func(r *symptom.Report) bool {
		return r.Severity == symptom.SeveritySevere && !r.ReportedAt.Before(since)
	}), nil
}

func (m *MockSymptomRepository) DistinctLocations(ctx context.Context) ([]string, error) {
	seen := make(map[string]bool)
	var locations []string
	for _, r := range m.Reports {
		if !seen[r.Location] {
			seen[r.Location] = true
			locations = append(locations, r.Location)
		}
	}
	sort.Strings(locations)
	return locations, nil
}

func (m *MockSymptomRepository) Count(ctx context.Context) (int64, error) {
	return int64(len(m.Reports)), nil
}

func (m *MockSymptomRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	var n int64
	for _, r := range m.Reports {
		if r.Status == status {
			n++
		}
	}
	return n, nil
}

func (m *MockSymptomRepository) CountByLocation(ctx context.Context, location string) (int64, error) {
	var n int64
	for _, r := range m.Reports {
		if r.Location == location {
			n++
		}
	}
	return n, nil
}

func (m *MockSymptomRepository) CountBySeverity(ctx context.Context, severity string) (int64, error) {
	var n int64
	for _, r := range m.Reports {
		if r.Severity == severity {
			n++
		}
	}
	return n, nil
}

func (m *MockSymptomRepository) sorted(keep func(*symptom.Report) bool) []*symptom.Report {
	out := make([]*symptom.Report, 0, len(m.Reports))
	for _, r := range m.Reports {
		if keep(r) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ReportedAt.After(out[j].ReportedAt)
	})
	return out
}

// MockAlertRepository is an in-memory implementation of alert.Repository
type MockAlertRepository struct {
	Alerts    map[string]*alert.Alert
	SaveError error
	GetError  error
}

func NewMockAlertRepository() *MockAlertRepository {
	return &MockAlertRepository{
		Alerts: make(map[string]*alert.Alert),
	}
}

func (m *MockAlertRepository) Save(ctx context.Context, a *alert.Alert) error {
	if m.SaveError != nil {
		return m.SaveError
	}
	m.Alerts[a.ID] = a
	return nil
}

func (m *MockAlertRepository) GetByID(ctx context.Context, id string) (*alert.Alert, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	a, ok := m.Alerts[id]
	if !ok {
		return nil, errors.NotFound("Alert")
	}
	return a, nil
}

func (m *MockAlertRepository) FindAll(ctx context.Context) ([]*alert.Alert, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	return m.sorted(func(*alert.Alert) bool { return true }), nil
}

func (m *MockAlertRepository) FindByStatus(ctx context.Context, status string) ([]*alert.Alert, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	return m.sorted(func(a *alert.Alert) bool { return a.Status == status }), nil
}

func (m *MockAlertRepository) FindBySeverity(ctx context.Context, severity string) ([]*alert.Alert, error) {
	return m.sorted(func(a *alert.Alert) bool { return a.Severity == severity }), nil
}

func (m *MockAlertRepository) FindByLocation(ctx context.Context, location string) ([]*alert.Alert, error) {
	return m.sorted(func(a *alert.Alert) bool { return a.Location == location }), nil
}

func (m *MockAlertRepository) FindRecent(ctx context.Context, limit int) ([]*alert.Alert, error) {
	all := m.sorted(func(*alert.Alert) bool { return true })
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (m *MockAlertRepository) Count(ctx context.Context) (int64, error) {
	return int64(len(m.Alerts)), nil
}

func (m *MockAlertRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	var n int64
	for _, a := range m.Alerts {
		if a.Status == status {
			n++
		}
	}
	return n, nil
}

func (m *MockAlertRepository) CountBySeverity(ctx context.Context, severity string) (int64, error) {
	var n int64
	for _, a := range m.Alerts {
		if a.Severity == severity {
			n++
		}
	}
	return n, nil
}

func (m *MockAlertRepository) sorted(keep func(*alert.Alert) bool) []*alert.Alert {
	out := make([]*alert.Alert, 0, len(m.Alerts))
	for _, a := range m.Alerts {
		if keep(a) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].TriggeredAt.After(out[j].TriggeredAt)
	})
	return out
}

// MockClassifier is a canned ml.Classifier
type MockClassifier struct {
	Prediction   *ml.Prediction
	PredictError error
	HealthError  error
	Calls        []ml.Input
}

func (m *MockClassifier) Predict(ctx context.Context, in ml.Input) (*ml.Prediction, error) {
	m.Calls = append(m.Calls, in)
	if m.PredictError != nil {
		return nil, m.PredictError
	}
	if m.Prediction != nil {
		return m.Prediction, nil
	}
	return &ml.Prediction{WQI: 85, QualityStatus: reading.QualityGood}, nil
}

func (m *MockClassifier) Health(ctx context.Context) error {
	return m.HealthError
}
