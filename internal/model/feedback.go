package model

import "time"

// Feedback stores a user's rating of a room after a completed
// reservation. At most one feedback row exists per reservation and
// rows are immutable once written; there is no update path.
//
// Fields:
//  ID            – primary key identifier.
//  ReservationID – completed reservation the feedback refers to.
//  UserID        – author of the feedback.
//  RoomID        – room being rated.
//  Rating        – integer rating between 1 and 5 inclusive.
//  Comment       – optional free-text comment.
//  CreatedAt     – creation timestamp.
type Feedback struct {
	ID            uint64    // feedback.id
	ReservationID uint64    // feedback.reservation_id
	UserID        uint64    // feedback.user_id
	RoomID        uint64    // feedback.room_id
	Rating        uint8     // feedback.rating
	Comment       *string   // feedback.comment (nullable)
	CreatedAt     time.Time // feedback.created_at
}
