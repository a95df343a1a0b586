// Package booking contains the pure decision logic behind the room
// search and booking flows: deriving a room's effective status for a
// query window and validating a proposed booking window against the
// business rules. Nothing in this package touches the database or the
// network, which keeps it trivially unit-testable.
package booking

import (
	"time"

	"github.com/admin-AK47/MRBS/internal/model"
)

// RoomStatus is the effective status of a room for a query window.
// Under_Maintenance and Available mirror the room's stored base
// availability; Booked is derived from the reservation calendar and
// never stored.
type RoomStatus string

const (
	StatusAvailable        RoomStatus = model.RoomAvailable
	StatusBooked           RoomStatus = "Booked"
	StatusUnderMaintenance RoomStatus = model.RoomUnderMaintenance
)

// WindowFor combines a calendar date ("2006-01-02") with start and end
// times of day ("15:04") into an absolute UTC interval. The evaluator
// itself works on absolute timestamps; this helper sits between it and
// the query parameters the search endpoint receives.
func WindowFor(date, start, end string) (time.Time, time.Time, error) {
	s, err := time.Parse("2006-01-02 15:04", date+" "+start)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	e, err := time.Parse("2006-01-02 15:04", date+" "+end)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return s.UTC(), e.UTC(), nil
}

// Evaluate derives the effective status of a room for the query window
// [windowStart, windowEnd). The reservation slice may be the full,
// unfiltered list; entries for other rooms and non-confirmed entries
// are skipped here.
//
// A room under maintenance is always Under_Maintenance, regardless of
// the calendar. Otherwise the room is Booked when any confirmed
// reservation for it overlaps the window, and its stored base
// availability when none does. Intervals are half-open, so a booking
// ending exactly at windowStart, or starting exactly at windowEnd,
// does not count as overlapping.
func Evaluate(room model.Room, windowStart, windowEnd time.Time, reservations []model.Reservation) RoomStatus {
	if room.Availability == model.RoomUnderMaintenance {
		return StatusUnderMaintenance
	}
	for _, r := range reservations {
		if r.Status != model.ReservationConfirmed || r.RoomID != room.ID {
			continue
		}
		if Overlaps(windowStart, windowEnd, r.StartTime, r.EndTime) {
			return StatusBooked
		}
	}
	return RoomStatus(room.Availability)
}

// Overlaps reports whether the query window [qStart, qEnd) overlaps the
// reservation interval [rStart, rEnd). The window overlaps when its
// start falls inside the reservation, its end falls inside the
// reservation, or it fully contains the reservation.
func Overlaps(qStart, qEnd, rStart, rEnd time.Time) bool {
	if !qStart.Before(rStart) && qStart.Before(rEnd) {
		return true // query start inside reservation
	}
	if qEnd.After(rStart) && !qEnd.After(rEnd) {
		return true // query end inside reservation
	}
	if !qStart.After(rStart) && !qEnd.Before(rEnd) {
		return true // query contains reservation
	}
	return false
}
