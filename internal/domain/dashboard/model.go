package dashboard

import (
	"time"

	"github.com/aquawatch/aquawatch/internal/domain/alert"
	"github.com/aquawatch/aquawatch/internal/domain/symptom"
)

// SensorStatus summarizes sensor connectivity
type SensorStatus struct {
	TotalSensors   int               `json:"totalSensors"`
	OnlineSensors  int               `json:"onlineSensors"`
	OfflineSensors int               `json:"offlineSensors"`
	SensorStatus   map[string]string `json:"sensorStatusMap"`
	TotalLocations int               `json:"totalLocations"`
}

// AlertsSummary summarizes the alert backlog
type AlertsSummary struct {
	TotalAlerts    int64          `json:"totalAlerts"`
	ActiveAlerts   int64          `json:"activeAlerts"`
	CriticalAlerts int64          `json:"criticalAlerts"`
	RecentAlerts   []*alert.Alert `json:"recentAlerts"`
}

// SymptomsSummary summarizes symptom report volume
type SymptomsSummary struct {
	TotalReports              int64             `json:"totalReports"`
	PendingReports            int64             `json:"pendingReports"`
	ResolvedReports           int64             `json:"resolvedReports"`
	RecentHighSeverityReports int64             `json:"recentHighSeverityReports"`
	RecentReports             []*symptom.Report `json:"recentReports"`
}

// DataPoint is a single (timestamp, value) trend sample
type DataPoint struct {
	Timestamp time.Time `json:"timestamp"`
	Value     float64   `json:"value"`
}

// Trends holds per-parameter time series for a look-back window
type Trends struct {
	Trends       map[string][]DataPoint `json:"trends"`
	LatestValues map[string]float64     `json:"latestValues"`
	TimeRange    string                 `json:"timeRange"`
}

// LocationSummary is the per-location rollup
type LocationSummary struct {
	Location           string             `json:"location"`
	Status             string             `json:"status"`
	SensorCount        int                `json:"sensorCount"`
	AlertCount         int                `json:"alertCount"`
	SymptomReportCount int                `json:"symptomReportCount"`
	LatestReadings     map[string]float64 `json:"latestReadings"`
}

// LocationsSummary aggregates all location rollups
type LocationsSummary struct {
	Locations      []LocationSummary `json:"locations"`
	TotalLocations int               `json:"totalLocations"`
}

// Overview is the combined dashboard landing payload
type Overview struct {
	OverallStatus string          `json:"overallStatus"`
	LastUpdated   time.Time       `json:"lastUpdated"`
	Sensors       SensorStatus    `json:"sensors"`
	Alerts        AlertsSummary   `json:"alerts"`
	Symptoms      SymptomsSummary `json:"symptoms"`
}

// Location status values
const (
	LocationHealthy  = "HEALTHY"
	LocationWarning  = "WARNING"
	LocationCritical = "CRITICAL"
)
