package booking

import (
	"errors"
	"time"
)

// Booking window business rules. All durations are measured on the
// proposed window itself; overlap with existing reservations is not
// checked here. That belongs to the availability evaluator during
// search and, authoritatively, to the reservation repository at
// creation time.
const (
	// OpenHour and CloseHour bound the operating day. Bookings must
	// start at or after 09:00 and end at or before 18:00 clock time.
	OpenHour  = 9
	CloseHour = 18

	MinDuration = 30 * time.Minute
	MaxDuration = 540 * time.Minute // 9 hours
)

// Sentinel rejections returned by ValidateWindow. Handlers surface
// these verbatim as 400 responses; they block submission and carry no
// server-side state.
var (
	ErrOutsideOperatingHours = errors.New("bookings only allowed between 9 AM and 6 PM")
	ErrTooShort              = errors.New("minimum booking duration is 30 minutes")
	ErrTooLong               = errors.New("maximum booking duration is 9 hours")
)

// ValidateWindow checks a proposed booking window against the
// operating-hours and duration rules. Rules are evaluated in order and
// the first failure is returned. A nil return means the window may be
// submitted for creation; the repository-level overlap check remains
// the final arbiter.
//
// The end-of-day bound is a clock-time bound, not an hour-of-day
// bound: a booking ending at 18:00 sharp is accepted, one ending at
// 18:01 is rejected. An inverted or zero-length window fails the
// minimum-duration rule.
func ValidateWindow(start, end time.Time) error {
	if start.Hour() < OpenHour {
		return ErrOutsideOperatingHours
	}
	if end.Hour() > CloseHour ||
		(end.Hour() == CloseHour && (end.Minute() > 0 || end.Second() > 0)) {
		return ErrOutsideOperatingHours
	}
	d := end.Sub(start)
	if d < MinDuration {
		return ErrTooShort
	}
	if d > MaxDuration {
		return ErrTooLong
	}
	return nil
}
