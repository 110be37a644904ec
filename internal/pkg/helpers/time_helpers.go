package helpers

import (
	"fmt"
	"time"

	"github.com/ravi1475/school-erp-backend/internal/pkg/logger"
)

// ParseDuration parses a duration string, returns the default duration on error.
func ParseDuration(durationStr string, defaultDuration time.Duration) time.Duration {
	duration, err := time.ParseDuration(durationStr)
	if err != nil {
		logger.Warn().Err(err).Str("durationStr", durationStr).Dur("defaultDuration", defaultDuration).Msg("Failed to parse duration string, using default")
		return defaultDuration
	}
	return duration
}

// dateLayouts are the accepted wire formats for date fields, tried in order.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"02/01/2006",
	"02-01-2006",
}

// ParseDate parses a date string in any of the accepted layouts.
// fieldName is used in the error message so callers can surface which
// field failed without extra wrapping.
func ParseDate(value, fieldName string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date for %s: %q", fieldName, value)
}

// ParseOptionalDate parses a date string, returning nil when the value is empty.
func ParseOptionalDate(value, fieldName string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := ParseDate(value, fieldName)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
