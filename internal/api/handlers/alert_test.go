package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aquawatch/aquawatch/internal/domain/alert"
	"github.com/aquawatch/aquawatch/internal/pkg/validator"
	"github.com/aquawatch/aquawatch/internal/services"
	"github.com/aquawatch/aquawatch/internal/testutil"
)

func newAlertFixture() (*AlertHandler, *testutil.MockAlertRepository) {
	repo := testutil.NewMockAlertRepository()
	log := testutil.NewTestLogger()
	service := services.NewAlertService(repo, testutil.NewMockSymptomRepository(), log)
	return NewAlertHandler(service, log, validator.New()), repo
}

func TestAlertHandler_List(t *testing.T) {
	handler, repo := newAlertFixture()
	now := time.Now()
	repo.Alerts["a1"] = &alert.Alert{ID: "a1", Status: alert.StatusActive, Severity: alert.SeverityCritical, TriggeredAt: now}
	repo.Alerts["a2"] = &alert.Alert{ID: "a2", Status: alert.StatusResolved, Severity: alert.SeverityMedium, TriggeredAt: now}

	tests := []struct {
		name          string
		query         string
		expectedCount int
	}{
		{name: "all alerts", query: "", expectedCount: 2},
		{name: "filter by status", query: "?status=active", expectedCount: 1},
		{name: "filter by severity", query: "?severity=critical", expectedCount: 1},
		{name: "no matches", query: "?status=acknowledged", expectedCount: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/alerts"+tt.query, nil)
			rr := httptest.NewRecorder()

			handler.List(rr, req)

			if rr.Code != http.StatusOK {
				t.Fatalf("got status %v, want %v", rr.Code, http.StatusOK)
			}
			response := decodeEnvelope(t, rr)
			data, _ := response["data"].([]interface{})
			if len(data) != tt.expectedCount {
				t.Errorf("got %d alerts, want %d", len(data), tt.expectedCount)
			}
		})
	}
}

func TestAlertHandler_Acknowledge(t *testing.T) {
	tests := []struct {
		name           string
		alertID        string
		body           string
		expectedStatus int
	}{
		{
			name:           "valid acknowledge",
			alertID:        "a1",
			body:           `{"userId": "user-1"}`,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing user id",
			alertID:        "a1",
			body:           `{}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "unknown alert",
			alertID:        "missing",
			body:           `{"userId": "user-1"}`,
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, repo := newAlertFixture()
			repo.Alerts["a1"] = &alert.Alert{ID: "a1", Status: alert.StatusActive}

			req := httptest.NewRequest(http.MethodPost, "/api/v1/alerts/"+tt.alertID+"/acknowledge", bytes.NewBufferString(tt.body))
			req = withURLParam(req, "id", tt.alertID)
			rr := httptest.NewRecorder()

			handler.Acknowledge(rr, req)

			if rr.Code != tt.expectedStatus {
				t.Errorf("got status %v, want %v", rr.Code, tt.expectedStatus)
			}
			if rr.Code == http.StatusOK && repo.Alerts["a1"].Status != alert.StatusAcknowledged {
				t.Errorf("alert status = %s, want %s", repo.Alerts["a1"].Status, alert.StatusAcknowledged)
			}
		})
	}
}

func TestAlertHandler_Resolve(t *testing.T) {
	handler, repo := newAlertFixture()
	repo.Alerts["a1"] = &alert.Alert{ID: "a1", Status: alert.StatusActive}

	body := `{"resolvedBy": "operator", "resolutionNotes": "flushed the line"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/alerts/a1/resolve", bytes.NewBufferString(body))
	req = withURLParam(req, "id", "a1")
	rr := httptest.NewRecorder()

	handler.Resolve(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("got status %v, want %v", rr.Code, http.StatusOK)
	}
	a := repo.Alerts["a1"]
	if a.Status != alert.StatusResolved || a.ResolvedBy != "operator" {
		t.Errorf("alert = %s by %s, want resolved by operator", a.Status, a.ResolvedBy)
	}
}
