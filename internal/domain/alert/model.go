package alert

import "time"

// Alert represents a derived health or water-quality alert
type Alert struct {
	ID                      string     `json:"id"`
	Type                    string     `json:"alertType"`
	Severity                string     `json:"severity"`
	Title                   string     `json:"title"`
	Description             string     `json:"description"`
	Location                string     `json:"location,omitempty"`
	SensorID                string     `json:"sensorId,omitempty"`
	Parameter               string     `json:"parameter,omitempty"`
	ThresholdValue          *float64   `json:"thresholdValue,omitempty"`
	ActualValue             *float64   `json:"actualValue,omitempty"`
	SensorReadingID         string     `json:"sensorReadingId,omitempty"`
	RelatedSymptomReportIDs []string   `json:"relatedSymptomReportIds,omitempty"`
	TriggeredAt             time.Time  `json:"triggeredAt"`
	AcknowledgedAt          *time.Time `json:"acknowledgedAt,omitempty"`
	ResolvedAt              *time.Time `json:"resolvedAt,omitempty"`
	Status                  string     `json:"status"`
	NotifiedUsers           []string   `json:"notifiedUsers,omitempty"`
	ResolvedBy              string     `json:"resolvedBy,omitempty"`
	ResolutionNotes         string     `json:"resolutionNotes,omitempty"`
	Notes                   string     `json:"notes,omitempty"`
}

// Alert types
const (
	TypeWaterQuality   = "WATER_QUALITY"
	TypeSensorOffline  = "SENSOR_OFFLINE"
	TypeSymptomCluster = "SYMPTOM_CLUSTER"
)

// Alert severity levels
const (
	SeverityLow      = "LOW"
	SeverityMedium   = "MEDIUM"
	SeverityHigh     = "HIGH"
	SeverityCritical = "CRITICAL"
)

// Alert status. Transitions move forward only:
// ACTIVE -> ACKNOWLEDGED -> RESOLVED, with DISMISSED reachable from
// ACTIVE or ACKNOWLEDGED as a terminal state.
const (
	StatusActive       = "ACTIVE"
	StatusAcknowledged = "ACKNOWLEDGED"
	StatusResolved     = "RESOLVED"
	StatusDismissed    = "DISMISSED"
)
