package dto

// AcknowledgeAlertRequest records who acknowledged an alert
type AcknowledgeAlertRequest struct {
	UserID string `json:"userId" validate:"required"`
}

// ResolveAlertRequest records who resolved an alert and why
type ResolveAlertRequest struct {
	ResolvedBy      string `json:"resolvedBy" validate:"required"`
	ResolutionNotes string `json:"resolutionNotes"`
}
