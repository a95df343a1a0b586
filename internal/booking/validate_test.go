package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// at builds a timestamp on 2025-03-10 at the given clock time.
func at(hour, min int) time.Time {
	return time.Date(2025, 3, 10, hour, min, 0, 0, time.UTC)
}

func TestValidateWindowBoundaries(t *testing.T) {
	cases := []struct {
		name       string
		start, end time.Time
		want       error
	}{
		{"before opening", at(8, 59), at(9, 30), ErrOutsideOperatingHours},
		{"opens at nine", at(9, 0), at(9, 30), nil},
		{"one minute short", at(9, 0), at(9, 29), ErrTooShort},
		{"ends at close", at(9, 0), at(18, 0), nil},
		{"one minute past close", at(9, 0), at(18, 1), ErrOutsideOperatingHours},
		{"late evening", at(19, 0), at(19, 30), ErrOutsideOperatingHours},
		{"midday hour", at(12, 0), at(13, 0), nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateWindow(tc.start, tc.end)
			if tc.want == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.want)
			}
		})
	}
}

func TestValidateWindowTooLong(t *testing.T) {
	// A same-day window longer than nine hours always trips the
	// operating-hours rule first, so the duration cap is exercised
	// with a window ending within hours on the following day.
	start := at(9, 0)
	end := start.Add(25 * time.Hour) // next day 10:00
	assert.ErrorIs(t, ValidateWindow(start, end), ErrTooLong)

	end = start.Add(MaxDuration + 24*time.Hour) // next day 18:00, 33h total
	assert.ErrorIs(t, ValidateWindow(start, end), ErrTooLong)
}

func TestValidateWindowInverted(t *testing.T) {
	// End before start yields a negative duration, reported as too short.
	assert.ErrorIs(t, ValidateWindow(at(11, 0), at(10, 0)), ErrTooShort)
	// Zero-length window likewise.
	assert.ErrorIs(t, ValidateWindow(at(11, 0), at(11, 0)), ErrTooShort)
}
