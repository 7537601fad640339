package timex

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/weekplanner/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDuration_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    time.Duration
		wantErr bool
	}{
		{name: "string", in: `"24h"`, want: 24 * time.Hour},
		{name: "seconds string", in: `"15s"`, want: 15 * time.Second},
		{name: "nanoseconds", in: `1000000000`, want: time.Second},
		{name: "bad string", in: `"tomorrow"`, wantErr: true},
		{name: "bool", in: `true`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration
			err := json.Unmarshal([]byte(tt.in), &d)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.Duration)
		})
	}
}

func TestDuration_MarshalJSON(t *testing.T) {
	b, err := json.Marshal(Duration{Duration: 90 * time.Second})
	require.NoError(t, err)
	assert.Equal(t, `"1m30s"`, string(b))
}

func TestDateString(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	ts := time.Date(2025, time.January, 10, 23, 30, 0, 0, loc)
	assert.Equal(t, "2025-01-10", DateString(ts))
}

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		name  string
		today string
		due   string
		want  int
	}{
		{"same day", "2025-01-10", "2025-01-10", 0},
		{"one day overdue", "2025-01-10", "2025-01-09", 1},
		{"across month", "2025-03-01", "2025-02-27", 2},
		{"leap year", "2024-03-01", "2024-02-28", 2},
		{"future", "2025-01-10", "2025-01-13", -3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DaysBetween(tt.today, tt.due)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDaysBetween_Malformed(t *testing.T) {
	_, err := DaysBetween("2025-01-10", "next friday")
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrorMalformedDate))

	_, err = DaysBetween("", "2025-01-10")
	assert.True(t, errors.Is(err, common.ErrorMalformedDate))
}
