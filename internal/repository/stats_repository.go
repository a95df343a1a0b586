package repository

import (
	"context"
	"database/sql"

	"github.com/admin-AK47/MRBS/internal/model"
)

// StatsRepo maintains the per-room usage counters shown on the admin
// dashboard. Counters are adjusted inside the same transaction as the
// reservation write that moves them, so they never drift from the
// reservations table.
type StatsRepo struct {
	db *sql.DB
}

// NewStatsRepo returns a new StatsRepo bound to the given database.
func NewStatsRepo(db *sql.DB) *StatsRepo { return &StatsRepo{db: db} }

// ApplyTx adjusts a room's counters by the given deltas inside a
// caller-owned transaction. The upsert creates the row on first use;
// GREATEST clamps keep counters from going negative if a cancellation
// races a manual correction.
func (s *StatsRepo) ApplyTx(ctx context.Context, tx *sql.Tx, roomID uint64, bookingDelta int, hoursDelta float64) error {
	const q = `INSERT INTO room_usage_stats (room_id, total_bookings, hours_booked, last_updated)
	           VALUES (?, GREATEST(?, 0), GREATEST(?, 0), NOW())
	           ON DUPLICATE KEY UPDATE
	             total_bookings = GREATEST(CAST(total_bookings AS SIGNED) + ?, 0),
	             hours_booked   = GREATEST(hours_booked + ?, 0),
	             last_updated   = NOW()`
	_, err := tx.ExecContext(ctx, q, roomID, bookingDelta, hoursDelta, bookingDelta, hoursDelta)
	return err
}

// InitTx creates a zeroed stats row for a freshly created room.
func (s *StatsRepo) InitTx(ctx context.Context, roomID uint64) error {
	const q = `INSERT IGNORE INTO room_usage_stats (room_id, total_bookings, hours_booked, last_updated)
	           VALUES (?, 0, 0, NOW())`
	_, err := s.db.ExecContext(ctx, q, roomID)
	return err
}

// GetByRoom returns the stats row for one room, or sql.ErrNoRows.
func (s *StatsRepo) GetByRoom(ctx context.Context, roomID uint64) (*model.RoomUsageStats, error) {
	const q = `SELECT id, room_id, total_bookings, hours_booked, last_updated
	           FROM room_usage_stats WHERE room_id = ?`
	var st model.RoomUsageStats
	err := s.db.QueryRowContext(ctx, q, roomID).Scan(&st.ID, &st.RoomID, &st.TotalBookings, &st.HoursBooked, &st.LastUpdated)
	if err != nil {
		return nil, err
	}
	return &st, nil
}

// List returns usage stats for all rooms, busiest first.
func (s *StatsRepo) List(ctx context.Context) ([]model.RoomUsageStats, error) {
	const q = `SELECT id, room_id, total_bookings, hours_booked, last_updated
	           FROM room_usage_stats ORDER BY hours_booked DESC`
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.RoomUsageStats, 0)
	for rows.Next() {
		var st model.RoomUsageStats
		if err := rows.Scan(&st.ID, &st.RoomID, &st.TotalBookings, &st.HoursBooked, &st.LastUpdated); err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, rows.Err()
}
