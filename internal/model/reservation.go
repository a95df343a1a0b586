package model

import "time"

// Reservation status values as stored in `reservations.status`.
// A reservation is created as confirmed, may be cancelled by its
// owner (or an administrator) before it starts, and is marked
// completed by the completion sweeper once its end time passes.
const (
	ReservationConfirmed = "confirmed"
	ReservationCancelled = "cancelled"
	ReservationCompleted = "completed"
)

// Reservation records a user's booking of a room for a time window.
// Start and end timestamps are stored in UTC and compared as
// half-open intervals [start, end) so that back-to-back bookings do
// not conflict.
//
// Fields:
//  ID            – primary key identifier.
//  UserID        – user who made the reservation.
//  RoomID        – room being reserved.
//  Title         – meeting title shown in listings.
//  StartTime     – when the booking begins.
//  EndTime       – when the booking ends (must be after StartTime).
//  Status        – state of the reservation (confirmed, cancelled, completed).
//  FeedbackGiven – whether feedback has been submitted for this reservation.
//  CreatedAt     – creation timestamp.
//  UpdatedAt     – last update timestamp.
type Reservation struct {
	ID            uint64    // reservations.id
	UserID        uint64    // reservations.user_id
	RoomID        uint64    // reservations.room_id
	Title         string    // reservations.title
	StartTime     time.Time // reservations.start_time
	EndTime       time.Time // reservations.end_time
	Status        string    // reservations.status
	FeedbackGiven bool      // reservations.feedback_given
	CreatedAt     time.Time // reservations.created_at
	UpdatedAt     time.Time // reservations.updated_at
}
