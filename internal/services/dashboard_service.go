package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/aquawatch/aquawatch/internal/domain/alert"
	"github.com/aquawatch/aquawatch/internal/domain/dashboard"
	"github.com/aquawatch/aquawatch/internal/domain/reading"
	"github.com/aquawatch/aquawatch/internal/domain/symptom"
	"github.com/aquawatch/aquawatch/internal/pkg/logger"
)

const recentLimit = 10

// DashboardService implements dashboard.Service by recomputing rollups
// from the repositories on every call.
type DashboardService struct {
	readings reading.Repository
	symptoms symptom.Repository
	alerts   alert.Repository
	logger   *logger.Logger
	now      func() time.Time
}

// NewDashboardService creates a new dashboard aggregation service
func NewDashboardService(readings reading.Repository, symptoms symptom.Repository, alerts alert.Repository, log *logger.Logger) dashboard.Service {
	return &DashboardService{
		readings: readings,
		symptoms: symptoms,
		alerts:   alerts,
		logger:   log,
		now:      time.Now,
	}
}

// SensorStatus classifies every known sensor as ONLINE or OFFLINE based
// on its latest reading age.
func (s *DashboardService) SensorStatus(ctx context.Context) (*dashboard.SensorStatus, error) {
	out := &dashboard.SensorStatus{SensorStatus: make(map[string]string)}

	sensorIDs, err := s.readings.DistinctSensorIDs(ctx)
	if err != nil {
		s.logger.ErrorWithErr(err, "Failed to list sensors")
		return out, nil
	}

	now := s.now()
	for _, id := range sensorIDs {
		latest, err := s.readings.LatestBySensorID(ctx, id)
		if err != nil || latest == nil {
			out.SensorStatus[id] = reading.SensorOffline
			out.OfflineSensors++
			continue
		}
		if now.Sub(latest.Timestamp) <= reading.OfflineAfter {
			out.SensorStatus[id] = reading.SensorOnline
			out.OnlineSensors++
		} else {
			out.SensorStatus[id] = reading.SensorOffline
			out.OfflineSensors++
		}
	}
	out.TotalSensors = len(sensorIDs)

	if locations, err := s.readings.DistinctLocations(ctx); err == nil {
		out.TotalLocations = len(locations)
	}

	return out, nil
}

// AlertsSummary returns alert counts and the most recent alerts
func (s *DashboardService) AlertsSummary(ctx context.Context) (*dashboard.AlertsSummary, error) {
	out := &dashboard.AlertsSummary{RecentAlerts: []*alert.Alert{}}

	if n, err := s.alerts.Count(ctx); err == nil {
		out.TotalAlerts = n
	} else {
		s.logger.ErrorWithErr(err, "Failed to count alerts")
	}
	if n, err := s.alerts.CountByStatus(ctx, alert.StatusActive); err == nil {
		out.ActiveAlerts = n
	}
	if n, err := s.alerts.CountBySeverity(ctx, alert.SeverityCritical); err == nil {
		out.CriticalAlerts = n
	}
	if recent, err := s.alerts.FindRecent(ctx, recentLimit); err == nil {
		out.RecentAlerts = recent
	}

	return out, nil
}

// SymptomsSummary returns report counts and recent severe reports
func (s *DashboardService) SymptomsSummary(ctx context.Context) (*dashboard.SymptomsSummary, error) {
	out := &dashboard.SymptomsSummary{RecentReports: []*symptom.Report{}}

	if n, err := s.symptoms.Count(ctx); err == nil {
		out.TotalReports = n
	} else {
		s.logger.ErrorWithErr(err, "Failed to count symptom reports")
	}
	if n, err := s.symptoms.CountByStatus(ctx, symptom.StatusPending); err == nil {
		out.PendingReports = n
	}
	if n, err := s.symptoms.CountByStatus(ctx, symptom.StatusResolved); err == nil {
		out.ResolvedReports = n
	}

	since := s.now().Add(-24 * time.Hour)
	if severe, err := s.symptoms.FindSevereSince(ctx, since); err == nil {
		out.RecentHighSeverityReports = int64(len(severe))
		if len(severe) > recentLimit {
			severe = severe[:recentLimit]
		}
		out.RecentReports = severe
	}

	return out, nil
}

// Trends returns per-parameter time series for the trailing window.
// Parameters absent from every reading in the window are omitted from
// the map entirely rather than reported as empty series.
func (s *DashboardService) Trends(ctx context.Context, hours int) (*dashboard.Trends, error) {
	if hours <= 0 {
		hours = 24
	}

	out := &dashboard.Trends{
		Trends:       make(map[string][]dashboard.DataPoint),
		LatestValues: make(map[string]float64),
		TimeRange:    fmt.Sprintf("%dh", hours),
	}

	now := s.now()
	window, err := s.readings.FindByTimeRange(ctx, now.Add(-time.Duration(hours)*time.Hour), now)
	if err != nil {
		s.logger.ErrorWithErr(err, "Failed to load trend window")
		return out, nil
	}

	for _, r := range window {
		for _, p := range reading.TrendParameters {
			if v := r.Parameter(p); v != nil {
				out.Trends[p] = append(out.Trends[p], dashboard.DataPoint{
					Timestamp: r.Timestamp,
					Value:     *v,
				})
			}
		}
	}

	for _, p := range reading.TrendParameters {
		series := out.Trends[p]
		if len(series) > 0 {
			out.LatestValues[p] = series[len(series)-1].Value
		}
	}

	return out, nil
}

// snapshotParameters is the subset shown in the per-location latest
// readings snapshot; conductivity is tracked in trends but not here.
var snapshotParameters = []string{"ph", "temperature", "turbidity", "dissolvedOxygen"}

// LocationsSummary returns per-location rollups with a derived status:
// CRITICAL when the location has an outstanding critical alert, WARNING
// when it has an outstanding high-severity alert, else HEALTHY. Resolved
// and dismissed alerts stop counting toward the status.
func (s *DashboardService) LocationsSummary(ctx context.Context) (*dashboard.LocationsSummary, error) {
	out := &dashboard.LocationsSummary{Locations: []dashboard.LocationSummary{}}

	locations, err := s.allLocations(ctx)
	if err != nil {
		s.logger.ErrorWithErr(err, "Failed to list locations")
		return out, nil
	}

	for _, loc := range locations {
		summary := dashboard.LocationSummary{
			Location:       loc,
			Status:         dashboard.LocationHealthy,
			LatestReadings: make(map[string]float64),
		}

		if n, err := s.readings.CountSensorsByLocation(ctx, loc); err == nil {
			summary.SensorCount = int(n)
		}
		if n, err := s.symptoms.CountByLocation(ctx, loc); err == nil {
			summary.SymptomReportCount = int(n)
		}

		var outstandingCritical, outstandingHigh int
		if alerts, err := s.alerts.FindByLocation(ctx, loc); err == nil {
			summary.AlertCount = len(alerts)
			for _, a := range alerts {
				if a.Status == alert.StatusResolved || a.Status == alert.StatusDismissed {
					continue
				}
				switch a.Severity {
				case alert.SeverityCritical:
					outstandingCritical++
				case alert.SeverityHigh:
					outstandingHigh++
				}
			}
		}

		switch {
		case outstandingCritical > 0:
			summary.Status = dashboard.LocationCritical
		case outstandingHigh > 0:
			summary.Status = dashboard.LocationWarning
		}

		if latest, err := s.latestAtLocation(ctx, loc); err == nil && latest != nil {
			for _, p := range snapshotParameters {
				if v := latest.Parameter(p); v != nil {
					summary.LatestReadings[p] = *v
				}
			}
		}

		out.Locations = append(out.Locations, summary)
	}

	sort.Slice(out.Locations, func(i, j int) bool {
		return out.Locations[i].Location < out.Locations[j].Location
	})
	out.TotalLocations = len(out.Locations)

	return out, nil
}

// Overview returns the combined landing payload. The overall status is
// CRITICAL when critical alerts exist, WARNING when any active alerts
// exist, else HEALTHY.
func (s *DashboardService) Overview(ctx context.Context) (*dashboard.Overview, error) {
	sensors, _ := s.SensorStatus(ctx)
	alerts, _ := s.AlertsSummary(ctx)
	symptoms, _ := s.SymptomsSummary(ctx)

	status := dashboard.LocationHealthy
	switch {
	case alerts.CriticalAlerts > 0:
		status = dashboard.LocationCritical
	case alerts.ActiveAlerts > 0:
		status = dashboard.LocationWarning
	}

	return &dashboard.Overview{
		OverallStatus: status,
		LastUpdated:   s.now(),
		Sensors:       *sensors,
		Alerts:        *alerts,
		Symptoms:      *symptoms,
	}, nil
}

// allLocations merges the distinct locations seen in readings and
// symptom reports.
func (s *DashboardService) allLocations(ctx context.Context) ([]string, error) {
	fromReadings, err := s.readings.DistinctLocations(ctx)
	if err != nil {
		return nil, err
	}
	fromSymptoms, err := s.symptoms.DistinctLocations(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var out []string
	for _, loc := range append(fromReadings, fromSymptoms...) {
		if loc != "" && !seen[loc] {
			seen[loc] = true
			out = append(out, loc)
		}
	}
	return out, nil
}

func (s *DashboardService) latestAtLocation(ctx context.Context, location string) (*reading.Reading, error) {
	readings, err := s.readings.FindByLocation(ctx, location)
	if err != nil {
		return nil, err
	}
	if len(readings) == 0 {
		return nil, nil
	}
	return readings[0], nil
}
