package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/admin-AK47/MRBS/internal/model"
)

// FeedbackRepo stores post-meeting room feedback. Rows are write-once:
// creation flips the reservation's feedback flag in the same
// transaction, and there is no update path.
type FeedbackRepo struct {
	db           *sql.DB
	reservations *ReservationRepo
}

// NewFeedbackRepo returns a new FeedbackRepo bound to the given
// database and reservation repository.
func NewFeedbackRepo(db *sql.DB, reservations *ReservationRepo) *FeedbackRepo {
	return &FeedbackRepo{db: db, reservations: reservations}
}

// FeedbackDetail is a feedback row joined with author and room names
// for listings.
type FeedbackDetail struct {
	ID            uint64  `json:"id"`
	ReservationID uint64  `json:"reservation_id"`
	UserID        uint64  `json:"user_id"`
	UserName      string  `json:"user_name"`
	RoomID        uint64  `json:"room_id"`
	RoomName      string  `json:"room_name"`
	Rating        uint8   `json:"rating"`
	Comment       *string `json:"comment,omitempty"`
	CreatedAt     string  `json:"created_at"`
}

// Create inserts feedback for a reservation and marks the reservation
// as rated, atomically. ErrFeedbackExists is returned when the
// reservation was already rated.
func (r *FeedbackRepo) Create(ctx context.Context, fb *model.Feedback) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err := r.reservations.MarkFeedbackGivenTx(ctx, tx, fb.ReservationID); err != nil {
		return err
	}

	const q = `INSERT INTO feedback (reservation_id, user_id, room_id, rating, comment)
	           VALUES (?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, q, fb.ReservationID, fb.UserID, fb.RoomID, fb.Rating, fb.Comment)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	fb.ID = uint64(id)

	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

const feedbackSelect = `SELECT f.id, f.reservation_id, f.user_id, u.full_name, f.room_id, rm.name, f.rating, f.comment, f.created_at
	FROM feedback f
	JOIN users u ON u.id = f.user_id
	JOIN rooms rm ON rm.id = f.room_id`

// ListAll returns every feedback row, newest first.
func (r *FeedbackRepo) ListAll(ctx context.Context) ([]FeedbackDetail, error) {
	return r.queryDetails(ctx, feedbackSelect+` ORDER BY f.created_at DESC`)
}

// ListByRoom returns feedback for one room, newest first.
func (r *FeedbackRepo) ListByRoom(ctx context.Context, roomID uint64) ([]FeedbackDetail, error) {
	return r.queryDetails(ctx, feedbackSelect+` WHERE f.room_id = ? ORDER BY f.created_at DESC`, roomID)
}

// ListByUser returns feedback written by one user, newest first.
func (r *FeedbackRepo) ListByUser(ctx context.Context, userID uint64) ([]FeedbackDetail, error) {
	return r.queryDetails(ctx, feedbackSelect+` WHERE f.user_id = ? ORDER BY f.created_at DESC`, userID)
}

// Delete removes a feedback row (admin moderation). Returns
// sql.ErrNoRows when no row was deleted.
func (r *FeedbackRepo) Delete(ctx context.Context, id uint64) error {
	const q = `DELETE FROM feedback WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *FeedbackRepo) queryDetails(ctx context.Context, q string, args ...any) ([]FeedbackDetail, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]FeedbackDetail, 0)
	for rows.Next() {
		var d FeedbackDetail
		var comment sql.NullString
		var createdAt time.Time
		if err := rows.Scan(&d.ID, &d.ReservationID, &d.UserID, &d.UserName, &d.RoomID, &d.RoomName,
			&d.Rating, &comment, &createdAt); err != nil {
			return nil, err
		}
		if comment.Valid {
			c := comment.String
			d.Comment = &c
		}
		d.CreatedAt = createdAt.UTC().Format(time.RFC3339)
		out = append(out, d)
	}
	return out, rows.Err()
}
