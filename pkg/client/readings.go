package client

import (
	"context"
	"fmt"
	"net/http"
)

// ReadingService accesses sensor reading endpoints
type ReadingService struct {
	client *Client
}

// Latest returns the most recent reading across all sensors
func (s *ReadingService) Latest(ctx context.Context) (*Reading, error) {
	var r Reading
	if err := s.client.doRequest(ctx, http.MethodGet, "/api/v1/readings/latest", nil, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// Recent returns the newest readings up to limit
func (s *ReadingService) Recent(ctx context.Context, limit int) ([]Reading, error) {
	var readings []Reading
	path := fmt.Sprintf("/api/v1/readings/recent?limit=%d", limit)
	if err := s.client.doRequest(ctx, http.MethodGet, path, nil, &readings); err != nil {
		return nil, err
	}
	return readings, nil
}

// Critical returns readings breaching a critical threshold
func (s *ReadingService) Critical(ctx context.Context) ([]Reading, error) {
	var readings []Reading
	if err := s.client.doRequest(ctx, http.MethodGet, "/api/v1/readings/critical", nil, &readings); err != nil {
		return nil, err
	}
	return readings, nil
}

// Ingest submits a new reading
func (s *ReadingService) Ingest(ctx context.Context, r *Reading) (*Reading, error) {
	var created Reading
	if err := s.client.doRequest(ctx, http.MethodPost, "/api/v1/readings", r, &created); err != nil {
		return nil, err
	}
	return &created, nil
}
