package dto

import (
	"encoding/json"
	"testing"
)

func TestFlexLocationUnmarshal(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "plain string", input: `"Well A"`, want: "Well A"},
		{name: "geo point", input: `{"lat": 12.97, "lon": 77.59}`, want: "12.97,77.59"},
		{name: "integer coordinates", input: `{"lat": 13, "lon": 77}`, want: "13,77"},
		{name: "number", input: `42`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var l FlexLocation
			err := json.Unmarshal([]byte(tt.input), &l)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Unmarshal(%s) expected error, got %q", tt.input, l)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unmarshal(%s) error = %v", tt.input, err)
			}
			if string(l) != tt.want {
				t.Errorf("Unmarshal(%s) = %q, want %q", tt.input, l, tt.want)
			}
		})
	}
}

func TestIngestReadingRequestFlatShape(t *testing.T) {
	payload := `{
		"sensorId": "sensor-1",
		"location": "Well A",
		"ph": 7.2,
		"turbidity": 3.5,
		"timestamp": "2025-06-15T12:00:00Z"
	}`

	var req IngestReadingRequest
	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	r := req.ToModel()
	if r.SensorID != "sensor-1" {
		t.Errorf("sensorID = %s", r.SensorID)
	}
	if r.Location != "Well A" {
		t.Errorf("location = %s", r.Location)
	}
	if r.Ph == nil || *r.Ph != 7.2 {
		t.Errorf("ph = %v, want 7.2", r.Ph)
	}
	if r.Timestamp.IsZero() {
		t.Error("timestamp not parsed")
	}
}

func TestIngestReadingRequestFirmwareShape(t *testing.T) {
	payload := `{
		"deviceId": "esp32-07",
		"location": {"lat": 12.97, "lon": 77.59},
		"sensors": {
			"pH": 6.9,
			"temperature_C": 24.5,
			"turbidity_NTU": 2.1,
			"DO_mgL": 6.8,
			"TDS_ppm": 310
		},
		"battery": {"voltage": 3.7},
		"timestamp": 1750000000
	}`

	var req IngestReadingRequest
	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	r := req.ToModel()
	if r.SensorID != "esp32-07" {
		t.Errorf("sensorID = %s, want deviceId fallback", r.SensorID)
	}
	if r.Location != "12.97,77.59" {
		t.Errorf("location = %s", r.Location)
	}
	if r.Ph == nil || *r.Ph != 6.9 {
		t.Errorf("ph = %v, want 6.9", r.Ph)
	}
	if r.Temperature == nil || *r.Temperature != 24.5 {
		t.Errorf("temperature = %v, want 24.5", r.Temperature)
	}
	if r.TotalDissolvedSolids == nil || *r.TotalDissolvedSolids != 310 {
		t.Errorf("tds = %v, want 310", r.TotalDissolvedSolids)
	}
}

func TestIngestReadingRequestFlatFieldsWin(t *testing.T) {
	payload := `{
		"sensorId": "sensor-1",
		"ph": 7.0,
		"sensors": {"pH": 5.0}
	}`

	var req IngestReadingRequest
	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	r := req.ToModel()
	if r.Ph == nil || *r.Ph != 7.0 {
		t.Errorf("ph = %v, want flat field to win", r.Ph)
	}
}
