package dto

import (
	"encoding/json"
	"fmt"

	"github.com/aquawatch/aquawatch/internal/domain/reading"
)

// GeoPoint is a lat/lon pair as sent by GPS-equipped sensor units
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// FlexLocation accepts either a free-text location string or a GeoPoint
// object, normalizing the latter to "lat,lon".
type FlexLocation string

func (l *FlexLocation) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*l = FlexLocation(s)
		return nil
	}

	var p GeoPoint
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("location must be a string or a {lat, lon} object")
	}
	*l = FlexLocation(fmt.Sprintf("%g,%g", p.Lat, p.Lon))
	return nil
}

// SensorsPayload is the nested parameter block used by IoT firmware
type SensorsPayload struct {
	PH           *float64 `json:"pH"`
	TemperatureC *float64 `json:"temperature_C"`
	TurbidityNTU *float64 `json:"turbidity_NTU"`
	DOMgL        *float64 `json:"DO_mgL"`
	TDSPpm       *float64 `json:"TDS_ppm"`
}

// BatteryPayload carries device health data; currently logged only
type BatteryPayload struct {
	Voltage *float64 `json:"voltage"`
}

// IngestReadingRequest accepts both the flat JSON shape used by the API
// clients and the nested shape pushed by sensor firmware. Flat fields
// win when both are present.
type IngestReadingRequest struct {
	SensorID string       `json:"sensorId"`
	DeviceID string       `json:"deviceId"`
	Location FlexLocation `json:"location"`

	Ph                   *float64 `json:"ph"`
	Temperature          *float64 `json:"temperature"`
	Turbidity            *float64 `json:"turbidity"`
	DissolvedOxygen      *float64 `json:"dissolvedOxygen"`
	Conductivity         *float64 `json:"conductivity"`
	TotalDissolvedSolids *float64 `json:"totalDissolvedSolids"`
	Chlorine             *float64 `json:"chlorine"`
	Hardness             *float64 `json:"hardness"`
	WaterLevel           *float64 `json:"waterLevel"`
	FlowRate             *float64 `json:"flowRate"`

	Sensors *SensorsPayload `json:"sensors"`
	Battery *BatteryPayload `json:"battery"`

	Timestamp Timestamp `json:"timestamp"`
	Notes     string    `json:"notes"`
}

// ToModel flattens the request into a domain reading
func (req *IngestReadingRequest) ToModel() *reading.Reading {
	r := &reading.Reading{
		SensorID:             req.SensorID,
		Location:             string(req.Location),
		Ph:                   req.Ph,
		Temperature:          req.Temperature,
		Turbidity:            req.Turbidity,
		DissolvedOxygen:      req.DissolvedOxygen,
		Conductivity:         req.Conductivity,
		TotalDissolvedSolids: req.TotalDissolvedSolids,
		Chlorine:             req.Chlorine,
		Hardness:             req.Hardness,
		WaterLevel:           req.WaterLevel,
		FlowRate:             req.FlowRate,
		Timestamp:            req.Timestamp.Time,
		Notes:                req.Notes,
	}

	if r.SensorID == "" {
		r.SensorID = req.DeviceID
	}

	if s := req.Sensors; s != nil {
		if r.Ph == nil {
			r.Ph = s.PH
		}
		if r.Temperature == nil {
			r.Temperature = s.TemperatureC
		}
		if r.Turbidity == nil {
			r.Turbidity = s.TurbidityNTU
		}
		if r.DissolvedOxygen == nil {
			r.DissolvedOxygen = s.DOMgL
		}
		if r.TotalDissolvedSolids == nil {
			r.TotalDissolvedSolids = s.TDSPpm
		}
	}

	return r
}
