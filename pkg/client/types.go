package client

import "time"

// Reading is a water-quality measurement as returned by the API
type Reading struct {
	ID                   string    `json:"id"`
	SensorID             string    `json:"sensorId"`
	Location             string    `json:"location,omitempty"`
	Ph                   *float64  `json:"ph,omitempty"`
	Temperature          *float64  `json:"temperature,omitempty"`
	Turbidity            *float64  `json:"turbidity,omitempty"`
	DissolvedOxygen      *float64  `json:"dissolvedOxygen,omitempty"`
	Conductivity         *float64  `json:"conductivity,omitempty"`
	TotalDissolvedSolids *float64  `json:"totalDissolvedSolids,omitempty"`
	Timestamp            time.Time `json:"timestamp"`
	QualityStatus        string    `json:"qualityStatus"`
	Notes                string    `json:"notes,omitempty"`
}

// Alert is an alert as returned by the API
type Alert struct {
	ID              string     `json:"id"`
	Type            string     `json:"alertType"`
	Severity        string     `json:"severity"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	Location        string     `json:"location,omitempty"`
	SensorID        string     `json:"sensorId,omitempty"`
	Parameter       string     `json:"parameter,omitempty"`
	ThresholdValue  *float64   `json:"thresholdValue,omitempty"`
	ActualValue     *float64   `json:"actualValue,omitempty"`
	TriggeredAt     time.Time  `json:"triggeredAt"`
	AcknowledgedAt  *time.Time `json:"acknowledgedAt,omitempty"`
	ResolvedAt      *time.Time `json:"resolvedAt,omitempty"`
	Status          string     `json:"status"`
	ResolvedBy      string     `json:"resolvedBy,omitempty"`
	ResolutionNotes string     `json:"resolutionNotes,omitempty"`
}

// Overview is the combined dashboard payload
type Overview struct {
	OverallStatus string    `json:"overallStatus"`
	LastUpdated   time.Time `json:"lastUpdated"`
	Sensors       struct {
		TotalSensors   int `json:"totalSensors"`
		OnlineSensors  int `json:"onlineSensors"`
		OfflineSensors int `json:"offlineSensors"`
		TotalLocations int `json:"totalLocations"`
	} `json:"sensors"`
	Alerts struct {
		TotalAlerts    int64 `json:"totalAlerts"`
		ActiveAlerts   int64 `json:"activeAlerts"`
		CriticalAlerts int64 `json:"criticalAlerts"`
	} `json:"alerts"`
	Symptoms struct {
		TotalReports   int64 `json:"totalReports"`
		PendingReports int64 `json:"pendingReports"`
	} `json:"symptoms"`
}

// Health is the readiness probe payload
type Health struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}
