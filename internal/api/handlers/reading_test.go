package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/aquawatch/aquawatch/internal/domain/reading"
	"github.com/aquawatch/aquawatch/internal/pkg/validator"
	"github.com/aquawatch/aquawatch/internal/services"
	"github.com/aquawatch/aquawatch/internal/testutil"
)

func newReadingFixture() (*ReadingHandler, *testutil.MockReadingRepository) {
	repo := testutil.NewMockReadingRepository()
	log := testutil.NewTestLogger()
	service := services.NewReadingService(repo, &testutil.MockClassifier{}, nil, log)
	return NewReadingHandler(service, log, validator.New()), repo
}

func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var response map[string]interface{}
	if err := json.NewDecoder(rr.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return response
}

func TestReadingHandler_Ingest(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		expectedStatus int
	}{
		{
			name:           "flat payload",
			body:           `{"sensorId": "sensor-1", "location": "Well A", "ph": 7.2}`,
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "firmware payload",
			body:           `{"deviceId": "esp32-07", "location": {"lat": 12.97, "lon": 77.59}, "sensors": {"pH": 6.9}}`,
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "missing sensor id",
			body:           `{"location": "Well A", "ph": 7.2}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "malformed json",
			body:           `{"sensorId": `,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, _ := newReadingFixture()

			req := httptest.NewRequest(http.MethodPost, "/api/v1/readings", bytes.NewBufferString(tt.body))
			rr := httptest.NewRecorder()

			handler.Ingest(rr, req)

			if rr.Code != tt.expectedStatus {
				t.Errorf("handler returned wrong status code: got %v want %v", rr.Code, tt.expectedStatus)
			}

			response := decodeEnvelope(t, rr)
			wantSuccess := tt.expectedStatus < 400
			if response["success"] != wantSuccess {
				t.Errorf("success = %v, want %v", response["success"], wantSuccess)
			}
		})
	}
}

func TestReadingHandler_Latest(t *testing.T) {
	handler, repo := newReadingFixture()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/readings/latest", nil)
	rr := httptest.NewRecorder()
	handler.Latest(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Errorf("empty store: got status %v, want %v", rr.Code, http.StatusNotFound)
	}

	repo.Readings["r1"] = &reading.Reading{
		ID:        "r1",
		SensorID:  "sensor-1",
		Timestamp: time.Now(),
	}

	rr = httptest.NewRecorder()
	handler.Latest(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("got status %v, want %v", rr.Code, http.StatusOK)
	}
	response := decodeEnvelope(t, rr)
	data, ok := response["data"].(map[string]interface{})
	if !ok || data["id"] != "r1" {
		t.Errorf("data = %v, want reading r1", response["data"])
	}
}

func TestReadingHandler_Get(t *testing.T) {
	handler, repo := newReadingFixture()
	repo.Readings["r1"] = &reading.Reading{ID: "r1", SensorID: "sensor-1"}

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/v1/readings/r1", nil), "id", "r1")
	rr := httptest.NewRecorder()
	handler.Get(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("got status %v, want %v", rr.Code, http.StatusOK)
	}

	req = withURLParam(httptest.NewRequest(http.MethodGet, "/api/v1/readings/missing", nil), "id", "missing")
	rr = httptest.NewRecorder()
	handler.Get(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Errorf("unknown id: got status %v, want %v", rr.Code, http.StatusNotFound)
	}
}

func TestReadingHandler_ListCritical(t *testing.T) {
	handler, repo := newReadingFixture()
	repo.Readings["bad"] = &reading.Reading{
		ID: "bad", SensorID: "sensor-1", Ph: testutil.FloatPtr(3.0), Timestamp: time.Now(),
	}
	repo.Readings["fine"] = &reading.Reading{
		ID: "fine", SensorID: "sensor-1", Ph: testutil.FloatPtr(7.0), Timestamp: time.Now(),
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/readings/critical", nil)
	rr := httptest.NewRecorder()
	handler.ListCritical(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("got status %v, want %v", rr.Code, http.StatusOK)
	}
	response := decodeEnvelope(t, rr)
	data, ok := response["data"].([]interface{})
	if !ok || len(data) != 1 {
		t.Errorf("data = %v, want one critical reading", response["data"])
	}
}
