package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatRFC3339_KeepsSubSecondPrecision(t *testing.T) {
	base := time.Date(2026, 8, 29, 9, 33, 24, 0, time.UTC)
	later := base.Add(time.Millisecond)

	// Two instants within the same second must persist as distinct,
	// ordered values
	assert.NotEqual(t, FormatRFC3339(base), FormatRFC3339(later))

	parsedBase, err := ParseRFC3339(FormatRFC3339(base))
	require.NoError(t, err)
	parsedLater, err := ParseRFC3339(FormatRFC3339(later))
	require.NoError(t, err)
	assert.True(t, parsedLater.After(parsedBase))
}

func TestParseRFC3339_AcceptsSecondPrecision(t *testing.T) {
	// Items written before sub-second precision carry no fractional part
	parsed, err := ParseRFC3339("2026-08-29T09:33:24Z")

	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 8, 29, 9, 33, 24, 0, time.UTC), parsed)
}

func TestFormatRFC3339_RoundTrip(t *testing.T) {
	now := time.Now().UTC()

	parsed, err := ParseRFC3339(FormatRFC3339(now))

	require.NoError(t, err)
	assert.True(t, parsed.Equal(now))
}
