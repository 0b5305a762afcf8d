package dashboard

import "context"

// Service computes read-only rollups over the current store state.
// Everything is recomputed per call; store failures degrade individual
// sections to zeroed values instead of failing the whole response.
type Service interface {
	// SensorStatus classifies every known sensor as ONLINE or OFFLINE
	SensorStatus(ctx context.Context) (*SensorStatus, error)

	// AlertsSummary returns alert counts and the 10 most recent alerts
	AlertsSummary(ctx context.Context) (*AlertsSummary, error)

	// SymptomsSummary returns report counts and recent severe reports
	SymptomsSummary(ctx context.Context) (*SymptomsSummary, error)

	// Trends returns per-parameter time series for the trailing window
	Trends(ctx context.Context, hours int) (*Trends, error)

	// LocationsSummary returns per-location rollups with derived status
	LocationsSummary(ctx context.Context) (*LocationsSummary, error)

	// Overview returns the combined landing payload
	Overview(ctx context.Context) (*Overview, error)
}
