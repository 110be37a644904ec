package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDateAcceptedLayouts(t *testing.T) {
	want := time.Date(2010, 5, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		value string
	}{
		{"ISO date", "2010-05-01"},
		{"day first slashes", "01/05/2010"},
		{"day first dashes", "01-05-2010"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.value, "dateOfBirth")
			require.NoError(t, err)
			assert.Equal(t, want.Year(), got.Year())
			assert.Equal(t, want.Month(), got.Month())
			assert.Equal(t, want.Day(), got.Day())
		})
	}
}

func TestParseDateErrorNamesField(t *testing.T) {
	_, err := ParseDate("yesterday", "admissionDate")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "admissionDate")
	assert.Contains(t, err.Error(), "yesterday")
}

func TestParseOptionalDate(t *testing.T) {
	got, err := ParseOptionalDate("", "tcDate")
	require.NoError(t, err)
	assert.Nil(t, got, "empty value means no date")

	got, err = ParseOptionalDate("2024-03-31", "tcDate")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 2024, got.Year())

	_, err = ParseOptionalDate("bogus", "tcDate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tcDate")
}

func TestParseDuration(t *testing.T) {
	assert.Equal(t, 2*time.Hour, ParseDuration("2h", time.Minute))
	assert.Equal(t, time.Minute, ParseDuration("nonsense", time.Minute))
	assert.Equal(t, time.Minute, ParseDuration("", time.Minute))
}
