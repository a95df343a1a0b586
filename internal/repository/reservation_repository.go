package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/admin-AK47/MRBS/internal/model"
)

// ReservationRepo provides CRUD operations for reservations. Creation
// and cancellation run inside transactions so the overlap check, the
// row write and the usage-stats adjustment are atomic. All timestamps
// are stored in UTC.
type ReservationRepo struct {
	db    *sql.DB
	stats *StatsRepo
}

// NewReservationRepo returns a new ReservationRepo bound to the given
// database and stats repository.
func NewReservationRepo(db *sql.DB, stats *StatsRepo) *ReservationRepo {
	return &ReservationRepo{db: db, stats: stats}
}

// ReservationDetail is a reservation joined with its room and owner
// for display. StartTime/EndTime are RFC3339 UTC strings.
type ReservationDetail struct {
	ID            uint64 `json:"id"`
	UserID        uint64 `json:"user_id"`
	UserName      string `json:"user_name"`
	RoomID        uint64 `json:"room_id"`
	RoomName      string `json:"room_name"`
	Location      string `json:"location"`
	Title         string `json:"title"`
	StartTime     string `json:"start_time"`
	EndTime       string `json:"end_time"`
	Status        string `json:"status"`
	FeedbackGiven bool   `json:"feedback_given"`
}

// Create inserts a confirmed reservation after verifying, inside the
// same transaction, that no confirmed reservation overlaps the window
// on the same room. Intervals are half-open: an existing booking
// ending exactly at the new start (or starting exactly at the new end)
// does not conflict. Returns ErrRoomNotAvailable on overlap. The
// room's usage stats are bumped as part of the transaction.
func (r *ReservationRepo) Create(ctx context.Context, res *model.Reservation) error {
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

	// FOR UPDATE serializes concurrent bookings of the same room; two
	// racing inserts both see the other's row or block until commit.
	const overlapQ = `SELECT COUNT(*) FROM reservations
	                  WHERE room_id = ? AND status = 'confirmed'
	                    AND start_time < ? AND end_time > ?
	                  FOR UPDATE`
	var n int
	if err := tx.QueryRowContext(ctx, overlapQ, res.RoomID, res.EndTime.UTC(), res.StartTime.UTC()).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return ErrRoomNotAvailable
	}

	const insQ = `INSERT INTO reservations (user_id, room_id, title, start_time, end_time, status)
	              VALUES (?, ?, ?, ?, ?, 'confirmed')`
	result, err := tx.ExecContext(ctx, insQ, res.UserID, res.RoomID, res.Title, res.StartTime.UTC(), res.EndTime.UTC())
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	res.ID = uint64(id)
	res.Status = model.ReservationConfirmed

	hours := res.EndTime.Sub(res.StartTime).Hours()
	if err := r.stats.ApplyTx(ctx, tx, res.RoomID, 1, hours); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// GetByID returns a single reservation, or sql.ErrNoRows.
func (r *ReservationRepo) GetByID(ctx context.Context, id uint64) (*model.Reservation, error) {
	const q = `SELECT id, user_id, room_id, title, start_time, end_time, status, feedback_given, created_at, updated_at
	           FROM reservations WHERE id = ?`
	var res model.Reservation
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&res.ID, &res.UserID, &res.RoomID, &res.Title, &res.StartTime, &res.EndTime,
		&res.Status, &res.FeedbackGiven, &res.CreatedAt, &res.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// ListAll returns every reservation with room and user details,
// newest first. Used by the admin console and by the search endpoint
// which feeds the availability evaluator the full confirmed set.
func (r *ReservationRepo) ListAll(ctx context.Context) ([]ReservationDetail, error) {
	const q = detailSelect + ` ORDER BY r.created_at DESC`
	return r.queryDetails(ctx, q)
}

// ListByUser returns a user's reservations, newest first.
func (r *ReservationRepo) ListByUser(ctx context.Context, userID uint64) ([]ReservationDetail, error) {
	const q = detailSelect + ` WHERE r.user_id = ? ORDER BY r.created_at DESC`
	return r.queryDetails(ctx, q, userID)
}

// ListConfirmed returns all confirmed reservations as model rows. The
// search handler hands this snapshot to the availability evaluator.
func (r *ReservationRepo) ListConfirmed(ctx context.Context) ([]model.Reservation, error) {
	const q = `SELECT id, user_id, room_id, title, start_time, end_time, status, feedback_given, created_at, updated_at
	           FROM reservations WHERE status = 'confirmed'`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Reservation, 0)
	for rows.Next() {
		var res model.Reservation
		if err := rows.Scan(&res.ID, &res.UserID, &res.RoomID, &res.Title, &res.StartTime, &res.EndTime,
			&res.Status, &res.FeedbackGiven, &res.CreatedAt, &res.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

// Cancel marks a confirmed reservation as cancelled on behalf of its
// owner (or an admin, when admin is true). It fails with ErrForbidden
// for foreign reservations, and ErrConflict when the reservation is
// not confirmed or has already started. Usage stats are decremented in
// the same transaction.
func (r *ReservationRepo) Cancel(ctx context.Context, id, userID uint64, admin bool) error {
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

	const q = `SELECT user_id, room_id, start_time, end_time, status FROM reservations WHERE id = ? FOR UPDATE`
	var ownerID, roomID uint64
	var start, end time.Time
	var status string
	if err := tx.QueryRowContext(ctx, q, id).Scan(&ownerID, &roomID, &start, &end, &status); err != nil {
		return err
	}
	if ownerID != userID && !admin {
		return ErrForbidden
	}
	if status != model.ReservationConfirmed || !time.Now().UTC().Before(start) {
		return ErrConflict
	}

	const upd = `UPDATE reservations SET status = 'cancelled', updated_at = NOW() WHERE id = ?`
	if _, err := tx.ExecContext(ctx, upd, id); err != nil {
		return err
	}
	if err := r.stats.ApplyTx(ctx, tx, roomID, -1, -end.Sub(start).Hours()); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// OverrideStatus lets an administrator force a reservation's status.
// Stats move when the change crosses the confirmed boundary in either
// direction, mirroring Cancel/Create.
func (r *ReservationRepo) OverrideStatus(ctx context.Context, id uint64, newStatus string) error {
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

	const q = `SELECT room_id, start_time, end_time, status FROM reservations WHERE id = ? FOR UPDATE`
	var roomID uint64
	var start, end time.Time
	var status string
	if err := tx.QueryRowContext(ctx, q, id).Scan(&roomID, &start, &end, &status); err != nil {
		return err
	}
	if status == newStatus {
		committed = true
		return tx.Commit()
	}

	hours := end.Sub(start).Hours()
	if status == model.ReservationConfirmed && newStatus == model.ReservationCancelled {
		if err := r.stats.ApplyTx(ctx, tx, roomID, -1, -hours); err != nil {
			return err
		}
	} else if status == model.ReservationCancelled && newStatus == model.ReservationConfirmed {
		if err := r.stats.ApplyTx(ctx, tx, roomID, 1, hours); err != nil {
			return err
		}
	}

	const upd = `UPDATE reservations SET status = ?, updated_at = NOW() WHERE id = ?`
	if _, err := tx.ExecContext(ctx, upd, newStatus, id); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// CompleteElapsed flips confirmed reservations whose end time has
// passed to completed and returns the number of rows changed. Called
// periodically by the completion sweeper; the server-side transition
// is authoritative, clients only infer it for display.
func (r *ReservationRepo) CompleteElapsed(ctx context.Context, now time.Time) (int64, error) {
	const q = `UPDATE reservations SET status = 'completed', updated_at = NOW()
	           WHERE status = 'confirmed' AND end_time <= ?`
	res, err := r.db.ExecContext(ctx, q, now.UTC())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// MarkFeedbackGivenTx flips the feedback flag inside a caller-owned
// transaction. ErrFeedbackExists is returned when the flag was already
// set (the row did not change).
func (r *ReservationRepo) MarkFeedbackGivenTx(ctx context.Context, tx *sql.Tx, id uint64) error {
	const q = `UPDATE reservations SET feedback_given = 1, updated_at = NOW()
	           WHERE id = ? AND feedback_given = 0`
	res, err := tx.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrFeedbackExists
	}
	return nil
}

const detailSelect = `SELECT r.id, r.user_id, u.full_name, r.room_id, rm.name, rm.location,
	       r.title, r.start_time, r.end_time, r.status, r.feedback_given
	FROM reservations r
	JOIN users u ON u.id = r.user_id
	JOIN rooms rm ON rm.id = r.room_id`

func (r *ReservationRepo) queryDetails(ctx context.Context, q string, args ...any) ([]ReservationDetail, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]ReservationDetail, 0)
	for rows.Next() {
		var d ReservationDetail
		var start, end time.Time
		if err := rows.Scan(&d.ID, &d.UserID, &d.UserName, &d.RoomID, &d.RoomName, &d.Location,
			&d.Title, &start, &end, &d.Status, &d.FeedbackGiven); err != nil {
			return nil, err
		}
		d.StartTime = start.UTC().Format(time.RFC3339)
		d.EndTime = end.UTC().Format(time.RFC3339)
		out = append(out, d)
	}
	return out, rows.Err()
}
