package domain

import (
	"strings"
	"time"
)

// DateLayout is the human readable format every stored exercise date uses.
const DateLayout = "Mon Jan 02 2006"

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	DateLayout,
}

// ParseDate parses s as a calendar date. The result is midnight UTC of that day so
// that dates from different layouts compare correctly.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// NormalizeDate formats raw in DateLayout. An empty or unparseable raw falls back
// to the calendar day of now.
func NormalizeDate(raw string, now time.Time) string {
	if t, err := ParseDate(raw); err == nil {
		return t.Format(DateLayout)
	}
	return now.Format(DateLayout)
}
