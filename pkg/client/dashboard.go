package client

import (
	"context"
	"net/http"
)

// DashboardService accesses dashboard rollup endpoints
type DashboardService struct {
	client *Client
}

// Overview returns the combined landing payload
func (s *DashboardService) Overview(ctx context.Context) (*Overview, error) {
	var o Overview
	if err := s.client.doRequest(ctx, http.MethodGet, "/api/v1/dashboard/overview", nil, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

// Health returns the server readiness payload
func (s *DashboardService) Health(ctx context.Context) (*Health, error) {
	var h Health
	if err := s.client.getBare(ctx, "/readyz", &h); err != nil {
		return nil, err
	}
	return &h, nil
}
