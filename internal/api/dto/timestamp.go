package dto

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Timestamp accepts the formats sensor firmware actually sends: epoch
// seconds, epoch milliseconds, RFC3339, and a couple of bare layouts
// without zone information (interpreted as UTC).
type Timestamp struct {
	time.Time
}

// epochMillisCutoff separates epoch seconds from epoch milliseconds.
// Anything above it is year 2286 in seconds, so it must be millis.
const epochMillisCutoff = 1e11

var bareLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" || s == `""` {
		t.Time = time.Time{}
		return nil
	}

	if n, err := strconv.ParseFloat(s, 64); err == nil {
		if n > epochMillisCutoff {
			t.Time = time.UnixMilli(int64(n)).UTC()
		} else {
			t.Time = time.Unix(int64(n), 0).UTC()
		}
		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return fmt.Errorf("invalid timestamp %s", s)
	}

	for _, layout := range bareLayouts {
		if parsed, err := time.Parse(layout, str); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("unrecognized timestamp format %q", str)
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.Time.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Time)
}
