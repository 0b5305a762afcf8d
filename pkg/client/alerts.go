package client

import (
	"context"
	"net/http"
	"net/url"
)

// AlertService accesses alert endpoints
type AlertService struct {
	client *Client
}

// AlertListOptions filters the alert list
type AlertListOptions struct {
	Status   string
	Severity string
}

// List returns alerts, optionally filtered
func (s *AlertService) List(ctx context.Context, opts *AlertListOptions) ([]Alert, error) {
	path := "/api/v1/alerts"
	if opts != nil {
		q := url.Values{}
		if opts.Status != "" {
			q.Set("status", opts.Status)
		}
		if opts.Severity != "" {
			q.Set("severity", opts.Severity)
		}
		if len(q) > 0 {
			path += "?" + q.Encode()
		}
	}

	var alerts []Alert
	if err := s.client.doRequest(ctx, http.MethodGet, path, nil, &alerts); err != nil {
		return nil, err
	}
	return alerts, nil
}

// Get returns a single alert
func (s *AlertService) Get(ctx context.Context, id string) (*Alert, error) {
	var a Alert
	if err := s.client.doRequest(ctx, http.MethodGet, "/api/v1/alerts/"+id, nil, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// Active returns alerts with status ACTIVE
func (s *AlertService) Active(ctx context.Context) ([]Alert, error) {
	var alerts []Alert
	if err := s.client.doRequest(ctx, http.MethodGet, "/api/v1/alerts/active", nil, &alerts); err != nil {
		return nil, err
	}
	return alerts, nil
}

// Acknowledge marks an alert acknowledged by the given user
func (s *AlertService) Acknowledge(ctx context.Context, id, userID string) (*Alert, error) {
	var a Alert
	body := map[string]string{"userId": userID}
	if err := s.client.doRequest(ctx, http.MethodPost, "/api/v1/alerts/"+id+"/acknowledge", body, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// Resolve marks an alert resolved
func (s *AlertService) Resolve(ctx context.Context, id, resolvedBy, notes string) (*Alert, error) {
	var a Alert
	body := map[string]string{"resolvedBy": resolvedBy, "resolutionNotes": notes}
	if err := s.client.doRequest(ctx, http.MethodPost, "/api/v1/alerts/"+id+"/resolve", body, &a); err != nil {
		return nil, err
	}
	return &a, nil
}
