package dto

import "github.com/aquawatch/aquawatch/internal/domain/symptom"

// CreateSymptomReportRequest is the payload for a community health report
type CreateSymptomReportRequest struct {
	UserID           string   `json:"userId"`
	Location         string   `json:"location" validate:"required"`
	WaterSource      string   `json:"waterSource" validate:"omitempty,oneof=TAP WELL BOTTLED OTHER"`
	Symptoms         []string `json:"symptoms" validate:"required,min=1"`
	Severity         string   `json:"severity" validate:"omitempty,oneof=MILD MODERATE SEVERE"`
	Duration         string   `json:"duration" validate:"omitempty,oneof=HOURS DAYS WEEKS"`
	WaterConsumption int      `json:"waterConsumption" validate:"omitempty,gte=0,lte=20"`
	AdditionalNotes  string   `json:"additionalNotes"`
	ContactInfo      string   `json:"contactInfo"`
}

// ToModel converts the request to a domain report
func (req *CreateSymptomReportRequest) ToModel() *symptom.Report {
	return &symptom.Report{
		UserID:           req.UserID,
		Location:         req.Location,
		WaterSource:      req.WaterSource,
		Symptoms:         req.Symptoms,
		Severity:         req.Severity,
		Duration:         req.Duration,
		WaterConsumption: req.WaterConsumption,
		AdditionalNotes:  req.AdditionalNotes,
		ContactInfo:      req.ContactInfo,
	}
}

// UpdateReportStatusRequest updates a report's investigation state
type UpdateReportStatusRequest struct {
	Status             string `json:"status" validate:"required,oneof=PENDING INVESTIGATED RESOLVED"`
	InvestigationNotes string `json:"investigationNotes"`
}
