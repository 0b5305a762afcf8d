// Package ml is the HTTP client for the external WQI prediction service.
package ml

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/aquawatch/aquawatch/internal/pkg/logger"
)

// Classifier predicts a water quality verdict for a set of sensor parameters
type Classifier interface {
	Predict(ctx context.Context, in Input) (*Prediction, error)
	Health(ctx context.Context) error
}

// Input holds the parameters sent to the prediction service.
// Nil fields are omitted; the service rejects incomplete inputs, which
// the caller treats the same as any other classifier failure.
type Input struct {
	Ph                   *float64 `json:"ph,omitempty"`
	Temperature          *float64 `json:"temperature,omitempty"`
	TotalDissolvedSolids *float64 `json:"tds,omitempty"`
	DissolvedOxygen      *float64 `json:"dissolved_oxygen,omitempty"`
	Turbidity            *float64 `json:"turbidity,omitempty"`
}

// Prediction is the service's verdict
type Prediction struct {
	WQI           float64 `json:"wqi"`
	QualityStatus string  `json:"quality_status"`
}

// Client calls the prediction service over HTTP
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *logger.Logger
}

// Config contains classifier client configuration
type Config struct {
	URL     string
	Timeout time.Duration
}

// NewClient creates a new classifier client
func NewClient(cfg Config, log *logger.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		baseURL:    cfg.URL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     log,
	}
}

// Predict sends the reading parameters to the prediction service and
// returns its WQI verdict
func (c *Client) Predict(ctx context.Context, in Input) (*Prediction, error) {
	body, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("encode predict request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/predict", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build predict request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call prediction service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("prediction service returned %d: %s", resp.StatusCode, data)
	}

	var pred Prediction
	if err := json.NewDecoder(resp.Body).Decode(&pred); err != nil {
		return nil, fmt.Errorf("decode predict response: %w", err)
	}
	if pred.QualityStatus == "" {
		return nil, fmt.Errorf("prediction service returned empty quality status")
	}

	c.logger.WithFields(map[string]interface{}{
		"wqi":            pred.WQI,
		"quality_status": pred.QualityStatus,
	}).Debug("WQI prediction")

	return &pred, nil
}

// Health checks the prediction service health endpoint
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("build health request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("call prediction service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("prediction service unhealthy: status %d", resp.StatusCode)
	}
	return nil
}
