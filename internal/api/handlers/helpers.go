package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/aquawatch/aquawatch/internal/pkg/errors"
)

// parseTimeParam parses a query-string timestamp, accepting epoch seconds
// and RFC3339
func parseTimeParam(value string) (time.Time, error) {
	if secs, err := strconv.ParseInt(value, 10, 64); err == nil {
		return time.Unix(secs, 0).UTC(), nil
	}
	return time.Parse(time.RFC3339, value)
}

// timeRangeParams extracts and validates the start/end query parameters
func timeRangeParams(r *http.Request) (time.Time, time.Time, *errors.AppError) {
	startRaw := r.URL.Query().Get("start")
	endRaw := r.URL.Query().Get("end")
	if startRaw == "" || endRaw == "" {
		return time.Time{}, time.Time{}, errors.BadRequest("start and end query parameters are required")
	}

	start, err := parseTimeParam(startRaw)
	if err != nil {
		return time.Time{}, time.Time{}, errors.BadRequest("invalid start timestamp")
	}
	end, err := parseTimeParam(endRaw)
	if err != nil {
		return time.Time{}, time.Time{}, errors.BadRequest("invalid end timestamp")
	}

	return start, end, nil
}

// intQueryParam returns the named query parameter as an int, or the
// default when absent or unparsable
func intQueryParam(r *http.Request, name string, def int) int {
	if raw := r.URL.Query().Get(name); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			return v
		}
	}
	return def
}
