package timeparse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2024-03-01 12:30:45", time.Date(2024, 3, 1, 12, 30, 45, 0, time.UTC)},
		{"2024-03-01 12:30", time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)},
		{"2024-03-01", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{"1000", time.Unix(1000, 0).UTC()},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.want), "got %v want %v", got, tt.want)
		})
	}
}

func TestParseInvalid(t *testing.T) {
	for _, in := range []string{"", "yesterday", "2024/03/01", "12:30:45"} {
		_, err := Parse(in)
		assert.Error(t, err, "input %q", in)
	}
}

func TestParseEpoch(t *testing.T) {
	ts, err := ParseEpoch("1970-01-01 00:16:40")
	require.NoError(t, err)
	assert.Equal(t, int32(1000), ts)
}

func TestParseEpochOutOfRange(t *testing.T) {
	_, err := ParseEpoch("2100-01-01")
	assert.Error(t, err)
}
