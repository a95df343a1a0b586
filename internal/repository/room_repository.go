package repository

import (
	"context"
	"database/sql"

	"github.com/admin-AK47/MRBS/internal/model"
)

// RoomRepo provides CRUD operations for meeting rooms. Rooms are
// written by administrators only; every read side (search, browse,
// feedback listing) goes through List or GetByID.
type RoomRepo struct {
	db *sql.DB
}

// NewRoomRepo returns a new RoomRepo bound to the given database.
func NewRoomRepo(db *sql.DB) *RoomRepo { return &RoomRepo{db: db} }

const roomColumns = `id, name, location, capacity, availability, description, image_url, created_at, updated_at`

func scanRoom(row interface{ Scan(...any) error }) (*model.Room, error) {
	var rm model.Room
	var desc, img sql.NullString
	if err := row.Scan(&rm.ID, &rm.Name, &rm.Location, &rm.Capacity, &rm.Availability,
		&desc, &img, &rm.CreatedAt, &rm.UpdatedAt); err != nil {
		return nil, err
	}
	if desc.Valid {
		d := desc.String
		rm.Description = &d
	}
	if img.Valid {
		u := img.String
		rm.ImageURL = &u
	}
	return &rm, nil
}

// Create inserts a new room and returns the generated ID. New rooms
// start in the Available state unless the caller says otherwise.
func (r *RoomRepo) Create(ctx context.Context, rm *model.Room) (uint64, error) {
	if rm.Availability == "" {
		rm.Availability = model.RoomAvailable
	}
	const q = `INSERT INTO rooms (name, location, capacity, availability, description, image_url)
	           VALUES (?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, rm.Name, rm.Location, rm.Capacity, rm.Availability, rm.Description, rm.ImageURL)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	rm.ID = uint64(id)
	return rm.ID, nil
}

// Update overwrites a room's editable fields. Returns sql.ErrNoRows
// when the room does not exist.
func (r *RoomRepo) Update(ctx context.Context, rm *model.Room) error {
	const q = `UPDATE rooms
	           SET name = ?, location = ?, capacity = ?, availability = ?, description = ?, image_url = ?, updated_at = NOW()
	           WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, rm.Name, rm.Location, rm.Capacity, rm.Availability, rm.Description, rm.ImageURL, rm.ID)
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

// Delete removes a room. A room with reservations on record cannot be
// deleted; the foreign key makes that a constraint error which is
// surfaced as ErrConflict.
func (r *RoomRepo) Delete(ctx context.Context, id uint64) error {
	const check = `SELECT COUNT(*) FROM reservations WHERE room_id = ?`
	var n int
	if err := r.db.QueryRowContext(ctx, check, id).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return ErrConflict
	}
	const q = `DELETE FROM rooms WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// GetByID returns a single room, or sql.ErrNoRows.
func (r *RoomRepo) GetByID(ctx context.Context, id uint64) (*model.Room, error) {
	const q = `SELECT ` + roomColumns + ` FROM rooms WHERE id = ?`
	return scanRoom(r.db.QueryRowContext(ctx, q, id))
}

// List returns rooms, optionally filtered by location and minimum
// capacity. Empty location and zero capacity mean no filter.
func (r *RoomRepo) List(ctx context.Context, location string, minCapacity uint32) ([]model.Room, error) {
	q := `SELECT ` + roomColumns + ` FROM rooms WHERE 1=1`
	args := []any{}
	if location != "" {
		q += ` AND location = ?`
		args = append(args, location)
	}
	if minCapacity > 0 {
		q += ` AND capacity >= ?`
		args = append(args, minCapacity)
	}
	q += ` ORDER BY location, name`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Room, 0)
	for rows.Next() {
		rm, err := scanRoom(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rm)
	}
	return out, rows.Err()
}
