package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/admin-AK47/MRBS/internal/model"
)

// mustWindow builds a query window on 2025-03-10 from "HH:MM" times.
func mustWindow(t *testing.T, start, end string) (time.Time, time.Time) {
	t.Helper()
	s, e, err := WindowFor("2025-03-10", start, end)
	require.NoError(t, err)
	return s, e
}

// reservation returns a reservation for the given room on 2025-03-10
// between the given times of day.
func reservation(t *testing.T, roomID uint64, status, start, end string) model.Reservation {
	t.Helper()
	s, e, err := WindowFor("2025-03-10", start, end)
	require.NoError(t, err)
	return model.Reservation{ID: 1, UserID: 7, RoomID: roomID, Title: "standup", StartTime: s, EndTime: e, Status: status}
}

func TestEvaluateMaintenanceOverride(t *testing.T) {
	room := model.Room{ID: 1, Name: "Boardroom", Availability: model.RoomUnderMaintenance}
	qs, qe := mustWindow(t, "10:00", "11:00")

	// Maintenance wins even with an empty reservation list and even
	// with a conflicting confirmed reservation present.
	assert.Equal(t, StatusUnderMaintenance, Evaluate(room, qs, qe, nil))
	assert.Equal(t, StatusUnderMaintenance, Evaluate(room, qs, qe, []model.Reservation{
		reservation(t, 1, model.ReservationConfirmed, "10:00", "11:00"),
	}))
}

func TestEvaluateOverlap(t *testing.T) {
	room := model.Room{ID: 1, Name: "Boardroom", Availability: model.RoomAvailable}
	booked := []model.Reservation{reservation(t, 1, model.ReservationConfirmed, "10:00", "11:00")}

	cases := []struct {
		name       string
		start, end string
		want       RoomStatus
	}{
		{"adjacent after is free (half-open)", "11:00", "12:00", StatusAvailable},
		{"adjacent before is free (half-open)", "09:00", "10:00", StatusAvailable},
		{"inside reservation", "10:30", "10:45", StatusBooked},
		{"start inside reservation", "10:30", "11:30", StatusBooked},
		{"end inside reservation", "09:30", "10:30", StatusBooked},
		{"query contains reservation", "09:00", "12:00", StatusBooked},
		{"identical window", "10:00", "11:00", StatusBooked},
		{"disjoint earlier", "08:00", "09:00", StatusAvailable},
		{"disjoint later", "13:00", "14:00", StatusAvailable},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			qs, qe := mustWindow(t, tc.start, tc.end)
			assert.Equal(t, tc.want, Evaluate(room, qs, qe, booked))
		})
	}
}

func TestEvaluateIgnoresNonConfirmedAndOtherRooms(t *testing.T) {
	room := model.Room{ID: 1, Name: "Boardroom", Availability: model.RoomAvailable}
	qs, qe := mustWindow(t, "10:00", "11:00")

	others := []model.Reservation{
		reservation(t, 1, model.ReservationCancelled, "10:00", "11:00"),
		reservation(t, 1, model.ReservationCompleted, "10:00", "11:00"),
		reservation(t, 2, model.ReservationConfirmed, "10:00", "11:00"),
	}
	assert.Equal(t, StatusAvailable, Evaluate(room, qs, qe, others))
}

func TestEvaluateDeterministic(t *testing.T) {
	room := model.Room{ID: 1, Availability: model.RoomAvailable}
	qs, qe := mustWindow(t, "09:00", "12:00")
	rs := []model.Reservation{reservation(t, 1, model.ReservationConfirmed, "10:00", "11:00")}

	first := Evaluate(room, qs, qe, rs)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Evaluate(room, qs, qe, rs))
	}
}

func TestWindowForRejectsGarbage(t *testing.T) {
	_, _, err := WindowFor("2025-03-10", "25:00", "26:00")
	assert.Error(t, err)
	_, _, err = WindowFor("not-a-date", "09:00", "10:00")
	assert.Error(t, err)
}
