package reading

import "time"

// Reading represents a single water-quality measurement from an IoT sensor.
// Parameter fields are pointers: a nil value means the sensor did not report
// that parameter, which keeps absent parameters out of trend aggregation.
type Reading struct {
	ID                   string     `json:"id"`
	SensorID             string     `json:"sensorId"`
	Location             string     `json:"location,omitempty"` // free text, usually "lat,lon"
	Ph                   *float64   `json:"ph,omitempty"`
	Temperature          *float64   `json:"temperature,omitempty"`
	Turbidity            *float64   `json:"turbidity,omitempty"`
	DissolvedOxygen      *float64   `json:"dissolvedOxygen,omitempty"`
	Conductivity         *float64   `json:"conductivity,omitempty"`
	TotalDissolvedSolids *float64   `json:"totalDissolvedSolids,omitempty"`
	Chlorine             *float64   `json:"chlorine,omitempty"`
	Hardness             *float64   `json:"hardness,omitempty"`
	WaterLevel           *float64   `json:"waterLevel,omitempty"`
	FlowRate             *float64   `json:"flowRate,omitempty"`
	Timestamp            time.Time  `json:"timestamp"`
	QualityStatus        string     `json:"qualityStatus"`
	Notes                string     `json:"notes,omitempty"`
}

// Quality status values
const (
	QualityGood     = "GOOD"
	QualityWarning  = "WARNING"
	QualityCritical = "CRITICAL"
	QualityUnknown  = "UNKNOWN"
)

// Sensor connectivity status
const (
	SensorOnline  = "ONLINE"
	SensorOffline = "OFFLINE"
)

// OfflineAfter is how long a sensor may stay silent before it counts as offline.
const OfflineAfter = time.Hour

// Parameter returns the named parameter value, or nil if the reading does not
// carry it. Names follow the wire representation (ph, temperature, turbidity,
// dissolvedOxygen, conductivity).
func (r *Reading) Parameter(name string) *float64 {
	switch name {
	case "ph":
		return r.Ph
	case "temperature":
		return r.Temperature
	case "turbidity":
		return r.Turbidity
	case "dissolvedOxygen":
		return r.DissolvedOxygen
	case "conductivity":
		return r.Conductivity
	default:
		return nil
	}
}

// TrendParameters are the parameters tracked by the dashboard trend query.
var TrendParameters = []string{"ph", "temperature", "turbidity", "dissolvedOxygen", "conductivity"}
