package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/admin-AK47/MRBS/internal/model"
	"github.com/admin-AK47/MRBS/internal/utils"
	"github.com/go-sql-driver/mysql"
)

// UserRepo provides access to the users table. Passwords are hashed
// with bcrypt before insertion; plain passwords never reach the
// database layer unhashed.
type UserRepo struct {
	db *sql.DB
}

// NewUserRepo returns a new UserRepo bound to the given database.
func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{db: db} }

// Create inserts a new user with a bcrypt-hashed password and returns
// the generated ID. A duplicate email yields ErrEmailExists.
func (r *UserRepo) Create(ctx context.Context, fullName, email, password, role string, bcryptCost int) (uint64, error) {
	hash, err := utils.HashPassword(password, bcryptCost)
	if err != nil {
		return 0, err
	}
	const q = `INSERT INTO users (full_name, email, password_hash, role) VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, fullName, email, hash, role)
	if err != nil {
		var me *mysql.MySQLError
		// 1062 = duplicate entry on the unique email index
		if errors.As(err, &me) && me.Number == 1062 {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByEmail returns the user with the given email address, or
// sql.ErrNoRows when no such user exists.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	const q = `SELECT id, full_name, email, password_hash, role, created_at, updated_at
	           FROM users WHERE email = ?`
	var u model.User
	err := r.db.QueryRowContext(ctx, q, email).Scan(
		&u.ID, &u.FullName, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByID returns the user with the given ID, or sql.ErrNoRows.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (*model.User, error) {
	const q = `SELECT id, full_name, email, password_hash, role, created_at, updated_at
	           FROM users WHERE id = ?`
	var u model.User
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&u.ID, &u.FullName, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// List returns all users ordered by creation time. Used by the admin
// console; password hashes are stripped by the handler layer.
func (r *UserRepo) List(ctx context.Context) ([]model.User, error) {
	const q = `SELECT id, full_name, email, password_hash, role, created_at, updated_at
	           FROM users ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.User, 0)
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.FullName, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// UpdateRole changes a user's role. Returns sql.ErrNoRows when the
// user does not exist.
func (r *UserRepo) UpdateRole(ctx context.Context, id uint64, role string) error {
	const q = `UPDATE users SET role = ?, updated_at = NOW() WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, role, id)
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

// Delete removes a user. Returns sql.ErrNoRows when no row was deleted.
func (r *UserRepo) Delete(ctx context.Context, id uint64) error {
	const q = `DELETE FROM users WHERE id = ?`
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
