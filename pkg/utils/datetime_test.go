package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDateTime(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2030-05-01T18:30:00Z", time.Date(2030, 5, 1, 18, 30, 0, 0, time.UTC)},
		{"2030-05-01T18:30:00.123456Z", time.Date(2030, 5, 1, 18, 30, 0, 123456000, time.UTC)},
		{"2030-05-01T18:30:00+02:00", time.Date(2030, 5, 1, 16, 30, 0, 0, time.UTC)},
		{"2030-05-01T18:30-05:00", time.Date(2030, 5, 1, 23, 30, 0, 0, time.UTC)},
		{"2030-05-01T18:30:15", time.Date(2030, 5, 1, 18, 30, 15, 0, time.UTC)},
		{"2030-05-01T18:30", time.Date(2030, 5, 1, 18, 30, 0, 0, time.UTC)},
		{"2030-05-01 18:30:00", time.Date(2030, 5, 1, 18, 30, 0, 0, time.UTC)},
		{"  2030-05-01T18:30:00Z ", time.Date(2030, 5, 1, 18, 30, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDateTime(tt.in)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %s", got)
			assert.Equal(t, time.UTC, got.Location())
		})
	}
}

func TestParseDateTimeInvalid(t *testing.T) {
	for _, in := range []string{"", "tomorrow", "2030-05-01", "2030-13-01T10:00", "01/05/2030 10:00", "2030-05-01T25:00"} {
		_, err := ParseDateTime(in)
		assert.ErrorIs(t, err, ErrInvalidDateTime, in)
	}
}

func TestParseDateTimeOrDate(t *testing.T) {
	got, err := ParseDateTimeOrDate("2030-05-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2030, 5, 1, 0, 0, 0, 0, time.UTC), got)

	got, err = ParseDateTimeOrDate("2030-05-01T08:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2030, 5, 1, 8, 0, 0, 0, time.UTC), got)

	_, err = ParseDateTimeOrDate("not-a-date")
	assert.ErrorIs(t, err, ErrInvalidDateTime)
}

func TestFormatDateTime(t *testing.T) {
	assert.Equal(t, "2030-05-01T18:30:00Z",
		FormatDateTime(time.Date(2030, 5, 1, 18, 30, 0, 0, time.UTC)))
	assert.Equal(t, "2030-05-01T18:30:00.123456Z",
		FormatDateTime(time.Date(2030, 5, 1, 18, 30, 0, 123456789, time.UTC)))
	assert.Equal(t, "2030-05-01T16:30:00.5Z",
		FormatDateTime(time.Date(2030, 5, 1, 18, 30, 0, 500000000, time.FixedZone("CEST", 2*60*60))))
}
