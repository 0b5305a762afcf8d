package services

import (
	"context"
	"testing"
	"time"

	"github.com/aquawatch/aquawatch/internal/domain/alert"
	"github.com/aquawatch/aquawatch/internal/domain/dashboard"
	"github.com/aquawatch/aquawatch/internal/domain/reading"
	"github.com/aquawatch/aquawatch/internal/domain/symptom"
	"github.com/aquawatch/aquawatch/internal/testutil"
)

type dashboardFixture struct {
	readings *testutil.MockReadingRepository
	symptoms *testutil.MockSymptomRepository
	alerts   *testutil.MockAlertRepository
	svc      *DashboardService
	now      time.Time
}

func newDashboardFixture() *dashboardFixture {
	f := &dashboardFixture{
		readings: testutil.NewMockReadingRepository(),
		symptoms: testutil.NewMockSymptomRepository(),
		alerts:   testutil.NewMockAlertRepository(),
		now:      time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC),
	}
	f.svc = NewDashboardService(f.readings, f.symptoms, f.alerts, testutil.NewTestLogger()).(*DashboardService)
	f.svc.now = func() time.Time { return f.now }
	return f
}

func (f *dashboardFixture) addReading(id, sensorID, location string, age time.Duration, mutate func(*reading.Reading)) {
	r := &reading.Reading{
		ID:        id,
		SensorID:  sensorID,
		Location:  location,
		Timestamp: f.now.Add(-age),
	}
	if mutate != nil {
		mutate(r)
	}
	f.readings.Readings[id] = r
}

func TestSensorStatus(t *testing.T) {
	tests := []struct {
		name       string
		age        time.Duration
		wantStatus string
	}{
		{name: "fresh reading is online", age: 5 * time.Minute, wantStatus: reading.SensorOnline},
		{name: "exactly one hour old is online", age: time.Hour, wantStatus: reading.SensorOnline},
		{name: "just over one hour is offline", age: time.Hour + time.Second, wantStatus: reading.SensorOffline},
		{name: "day-old reading is offline", age: 24 * time.Hour, wantStatus: reading.SensorOffline},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newDashboardFixture()
			f.addReading("reading-1", "sensor-1", "Well A", tt.age, nil)

			out, err := f.svc.SensorStatus(context.Background())
			if err != nil {
				t.Fatalf("SensorStatus() error = %v", err)
			}
			if got := out.SensorStatus["sensor-1"]; got != tt.wantStatus {
				t.Errorf("sensor-1 status = %s, want %s", got, tt.wantStatus)
			}
			if out.TotalSensors != 1 {
				t.Errorf("totalSensors = %d, want 1", out.TotalSensors)
			}
		})
	}
}

func TestSensorStatusCounts(t *testing.T) {
	f := newDashboardFixture()
	f.addReading("r1", "sensor-1", "Well A", 10*time.Minute, nil)
	f.addReading("r2", "sensor-2", "Well A", 2*time.Hour, nil)
	f.addReading("r3", "sensor-3", "Well B", 30*time.Minute, nil)
	// An older reading for sensor-1 must not drag it offline.
	f.addReading("r4", "sensor-1", "Well A", 3*time.Hour, nil)

	out, err := f.svc.SensorStatus(context.Background())
	if err != nil {
		t.Fatalf("SensorStatus() error = %v", err)
	}
	if out.TotalSensors != 3 {
		t.Errorf("totalSensors = %d, want 3", out.TotalSensors)
	}
	if out.OnlineSensors != 2 {
		t.Errorf("onlineSensors = %d, want 2", out.OnlineSensors)
	}
	if out.OfflineSensors != 1 {
		t.Errorf("offlineSensors = %d, want 1", out.OfflineSensors)
	}
	if out.TotalLocations != 2 {
		t.Errorf("totalLocations = %d, want 2", out.TotalLocations)
	}
}

func TestAlertsSummary(t *testing.T) {
	f := newDashboardFixture()
	f.alerts.Alerts["a1"] = &alert.Alert{ID: "a1", Status: alert.StatusActive, Severity: alert.SeverityCritical, TriggeredAt: f.now}
	f.alerts.Alerts["a2"] = &alert.Alert{ID: "a2", Status: alert.StatusActive, Severity: alert.SeverityMedium, TriggeredAt: f.now.Add(-time.Hour)}
	f.alerts.Alerts["a3"] = &alert.Alert{ID: "a3", Status: alert.StatusResolved, Severity: alert.SeverityHigh, TriggeredAt: f.now.Add(-2 * time.Hour)}

	out, err := f.svc.AlertsSummary(context.Background())
	if err != nil {
		t.Fatalf("AlertsSummary() error = %v", err)
	}
	if out.TotalAlerts != 3 {
		t.Errorf("totalAlerts = %d, want 3", out.TotalAlerts)
	}
	if out.ActiveAlerts != 2 {
		t.Errorf("activeAlerts = %d, want 2", out.ActiveAlerts)
	}
	if out.CriticalAlerts != 1 {
		t.Errorf("criticalAlerts = %d, want 1", out.CriticalAlerts)
	}
	if len(out.RecentAlerts) != 3 {
		t.Errorf("recentAlerts = %d, want 3", len(out.RecentAlerts))
	}
	if out.RecentAlerts[0].ID != "a1" {
		t.Errorf("recentAlerts[0] = %s, want a1 (newest first)", out.RecentAlerts[0].ID)
	}
}

func TestSymptomsSummaryTruncatesRecent(t *testing.T) {
	f := newDashboardFixture()
	for i := 0; i < 13; i++ {
		id := string(rune('a' + i))
		f.symptoms.Reports[id] = &symptom.Report{
			ID:         id,
			Location:   "Village B",
			Severity:   symptom.SeveritySevere,
			Status:     symptom.StatusPending,
			ReportedAt: f.now.Add(-time.Duration(i) * time.Minute),
		}
	}
	// Severe but outside the 24h window.
	f.symptoms.Reports["old"] = &symptom.Report{
		ID:         "old",
		Location:   "Village B",
		Severity:   symptom.SeveritySevere,
		Status:     symptom.StatusResolved,
		ReportedAt: f.now.Add(-25 * time.Hour),
	}

	out, err := f.svc.SymptomsSummary(context.Background())
	if err != nil {
		t.Fatalf("SymptomsSummary() error = %v", err)
	}
	if out.TotalReports != 14 {
		t.Errorf("totalReports = %d, want 14", out.TotalReports)
	}
	if out.PendingReports != 13 {
		t.Errorf("pendingReports = %d, want 13", out.PendingReports)
	}
	if out.ResolvedReports != 1 {
		t.Errorf("resolvedReports = %d, want 1", out.ResolvedReports)
	}
	if out.RecentHighSeverityReports != 13 {
		t.Errorf("recentHighSeverityReports = %d, want 13", out.RecentHighSeverityReports)
	}
	if len(out.RecentReports) != 10 {
		t.Errorf("recentReports = %d, want 10", len(out.RecentReports))
	}
}

func TestTrends(t *testing.T) {
	f := newDashboardFixture()
	f.addReading("r1", "sensor-1", "Well A", 3*time.Hour, func(r *reading.Reading) {
		r.Ph = testutil.FloatPtr(7.0)
		r.Temperature = testutil.FloatPtr(21.5)
	})
	f.addReading("r2", "sensor-1", "Well A", time.Hour, func(r *reading.Reading) {
		r.Ph = testutil.FloatPtr(7.4)
	})
	// Outside the window.
	f.addReading("r3", "sensor-1", "Well A", 30*time.Hour, func(r *reading.Reading) {
		r.Ph = testutil.FloatPtr(5.0)
	})

	out, err := f.svc.Trends(context.Background(), 24)
	if err != nil {
		t.Fatalf("Trends() error = %v", err)
	}
	if out.TimeRange != "24h" {
		t.Errorf("timeRange = %s, want 24h", out.TimeRange)
	}
	if len(out.Trends["ph"]) != 2 {
		t.Errorf("ph series has %d points, want 2", len(out.Trends["ph"]))
	}
	if len(out.Trends["temperature"]) != 1 {
		t.Errorf("temperature series has %d points, want 1", len(out.Trends["temperature"]))
	}
	// Parameters absent from every in-range reading are left out entirely.
	for _, p := range []string{"turbidity", "dissolvedOxygen", "conductivity"} {
		if series, ok := out.Trends[p]; ok {
			t.Errorf("trends carries %s = %v, want key omitted", p, series)
		}
	}
	if out.LatestValues["ph"] != 7.4 {
		t.Errorf("latest ph = %v, want 7.4", out.LatestValues["ph"])
	}
	if _, ok := out.LatestValues["turbidity"]; ok {
		t.Error("latestValues must not carry parameters without samples")
	}
}

func TestTrendsDefaultsWindow(t *testing.T) {
	f := newDashboardFixture()

	out, err := f.svc.Trends(context.Background(), 0)
	if err != nil {
		t.Fatalf("Trends() error = %v", err)
	}
	if out.TimeRange != "24h" {
		t.Errorf("timeRange = %s, want 24h", out.TimeRange)
	}
}

func TestLocationsSummaryStatus(t *testing.T) {
	tests := []struct {
		name       string
		setup      func(f *dashboardFixture)
		wantStatus string
	}{
		{
			name:       "no alerts or severe reports",
			setup:      func(f *dashboardFixture) {},
			wantStatus: dashboard.LocationHealthy,
		},
		{
			name: "active critical alert",
			setup: func(f *dashboardFixture) {
				f.alerts.Alerts["a1"] = &alert.Alert{ID: "a1", Location: "Well A", Status: alert.StatusActive, Severity: alert.SeverityCritical}
			},
			wantStatus: dashboard.LocationCritical,
		},
		{
			name: "acknowledged critical alert still counts",
			setup: func(f *dashboardFixture) {
				f.alerts.Alerts["a1"] = &alert.Alert{ID: "a1", Location: "Well A", Status: alert.StatusAcknowledged, Severity: alert.SeverityCritical}
			},
			wantStatus: dashboard.LocationCritical,
		},
		{
			name: "active high alert",
			setup: func(f *dashboardFixture) {
				f.alerts.Alerts["a1"] = &alert.Alert{ID: "a1", Location: "Well A", Status: alert.StatusActive, Severity: alert.SeverityHigh}
			},
			wantStatus: dashboard.LocationWarning,
		},
		{
			name: "active medium alert does not change status",
			setup: func(f *dashboardFixture) {
				f.alerts.Alerts["a1"] = &alert.Alert{ID: "a1", Location: "Well A", Status: alert.StatusActive, Severity: alert.SeverityMedium}
			},
			wantStatus: dashboard.LocationHealthy,
		},
		{
			name: "resolved critical alert does not count",
			setup: func(f *dashboardFixture) {
				f.alerts.Alerts["a1"] = &alert.Alert{ID: "a1", Location: "Well A", Status: alert.StatusResolved, Severity: alert.SeverityCritical}
			},
			wantStatus: dashboard.LocationHealthy,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newDashboardFixture()
			f.addReading("r1", "sensor-1", "Well A", 10*time.Minute, func(r *reading.Reading) {
				r.Ph = testutil.FloatPtr(7.1)
				r.Conductivity = testutil.FloatPtr(850)
			})
			tt.setup(f)

			out, err := f.svc.LocationsSummary(context.Background())
			if err != nil {
				t.Fatalf("LocationsSummary() error = %v", err)
			}
			if len(out.Locations) != 1 {
				t.Fatalf("locations = %d, want 1", len(out.Locations))
			}
			loc := out.Locations[0]
			if loc.Status != tt.wantStatus {
				t.Errorf("status = %s, want %s", loc.Status, tt.wantStatus)
			}
			if loc.LatestReadings["ph"] != 7.1 {
				t.Errorf("latestReadings[ph] = %v, want 7.1", loc.LatestReadings["ph"])
			}
			if _, ok := loc.LatestReadings["conductivity"]; ok {
				t.Error("latestReadings must not carry conductivity")
			}
		})
	}
}

func TestLocationsSummaryMergesSources(t *testing.T) {
	f := newDashboardFixture()
	f.addReading("r1", "sensor-1", "Well A", 10*time.Minute, nil)
	f.symptoms.Reports["s1"] = &symptom.Report{
		ID: "s1", Location: "Village B", ReportedAt: f.now,
	}

	out, err := f.svc.LocationsSummary(context.Background())
	if err != nil {
		t.Fatalf("LocationsSummary() error = %v", err)
	}
	if out.TotalLocations != 2 {
		t.Fatalf("totalLocations = %d, want 2", out.TotalLocations)
	}
	// Sorted by location name.
	if out.Locations[0].Location != "Village B" || out.Locations[1].Location != "Well A" {
		t.Errorf("locations = [%s, %s], want [Village B, Well A]",
			out.Locations[0].Location, out.Locations[1].Location)
	}
}

func TestOverviewStatus(t *testing.T) {
	tests := []struct {
		name       string
		setup      func(f *dashboardFixture)
		wantStatus string
	}{
		{
			name:       "no alerts",
			setup:      func(f *dashboardFixture) {},
			wantStatus: dashboard.LocationHealthy,
		},
		{
			name: "active alerts",
			setup: func(f *dashboardFixture) {
				f.alerts.Alerts["a1"] = &alert.Alert{ID: "a1", Status: alert.StatusActive, Severity: alert.SeverityMedium}
			},
			wantStatus: dashboard.LocationWarning,
		},
		{
			name: "critical alerts",
			setup: func(f *dashboardFixture) {
				f.alerts.Alerts["a1"] = &alert.Alert{ID: "a1", Status: alert.StatusActive, Severity: alert.SeverityCritical}
			},
			wantStatus: dashboard.LocationCritical,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newDashboardFixture()
			tt.setup(f)

			out, err := f.svc.Overview(context.Background())
			if err != nil {
				t.Fatalf("Overview() error = %v", err)
			}
			if out.OverallStatus != tt.wantStatus {
				t.Errorf("overallStatus = %s, want %s", out.OverallStatus, tt.wantStatus)
			}
			if !out.LastUpdated.Equal(f.now) {
				t.Errorf("lastUpdated = %v, want %v", out.LastUpdated, f.now)
			}
		})
	}
}
