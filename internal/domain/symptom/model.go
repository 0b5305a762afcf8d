package symptom

import "time"

// Report represents a user-submitted health symptom report tied to a water source
type Report struct {
	ID                 string     `json:"id"`
	UserID             string     `json:"userId"`
	Location           string     `json:"location"`
	WaterSource        string     `json:"waterSource"`
	Symptoms           []string   `json:"symptoms"`
	Severity           string     `json:"severity"`
	Duration           string     `json:"duration"`
	WaterConsumption   int        `json:"waterConsumption"` // liters per day
	AdditionalNotes    string     `json:"additionalNotes,omitempty"`
	ContactInfo        string     `json:"contactInfo,omitempty"`
	ReportedAt         time.Time  `json:"reportedAt"`
	Status             string     `json:"status"`
	InvestigationNotes string     `json:"investigationNotes,omitempty"`
	InvestigatedAt     *time.Time `json:"investigatedAt,omitempty"`
}

// Water sources
const (
	SourceTap     = "TAP"
	SourceWell    = "WELL"
	SourceBottled = "BOTTLED"
	SourceOther   = "OTHER"
)

// Severity levels
const (
	SeverityMild     = "MILD"
	SeverityModerate = "MODERATE"
	SeveritySevere   = "SEVERE"
)

// Symptom durations
const (
	DurationHours = "HOURS"
	DurationDays  = "DAYS"
	DurationWeeks = "WEEKS"
)

// Report status
const (
	StatusPending      = "PENDING"
	StatusInvestigated = "INVESTIGATED"
	StatusResolved     = "RESOLVED"
)
