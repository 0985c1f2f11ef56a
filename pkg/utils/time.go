package utils

import "time"

// FormatRFC3339 formats a time for persistence. Sub-second precision is
// kept so two writes within the same second stay ordered.
func FormatRFC3339(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// ParseRFC3339 parses a persisted timestamp. The nano layout also accepts
// values without a fractional part.
func ParseRFC3339(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}
