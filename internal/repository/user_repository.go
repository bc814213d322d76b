package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"

	"github.com/r33j4n/mentorhub-genesis-project-sub001/internal/model"
	"github.com/r33j4n/mentorhub-genesis-project-sub001/internal/utils"
)

// UserRepo provides persistence for user accounts.  Passwords are
// hashed with bcrypt before they reach this layer's insert statement.
type UserRepo struct {
	db *sql.DB
}

// NewUserRepo returns a new UserRepo bound to the given database.
func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{db: db} }

// DB exposes the underlying handle so handlers can open transactions
// that span multiple repositories.
func (r *UserRepo) DB() *sql.DB { return r.db }

// Create inserts a new user with the given role and returns the
// generated ID.  A duplicate email maps to ErrEmailExists.
func (r *UserRepo) Create(ctx context.Context, email, password, role string, bcryptCost int) (uint64, error) {
	hash, err := utils.HashPassword(password, bcryptCost)
	if err != nil {
		return 0, err
	}
	const q = `INSERT INTO users (email, password_hash, role, is_active) VALUES (?, ?, ?, 1)`
	res, err := r.db.ExecContext(ctx, q, strings.ToLower(email), hash, role)
	if err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == 1062 { // duplicate key
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

// GetByEmail loads a user by email. Returns ErrNotFound when absent.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	const q = `SELECT id, email, password_hash, role, is_active, created_at, updated_at
	           FROM users WHERE email = ?`
	return r.scanOne(r.db.QueryRowContext(ctx, q, strings.ToLower(email)))
}

// GetByID loads a user by primary key. Returns ErrNotFound when absent.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (*model.User, error) {
	const q = `SELECT id, email, password_hash, role, is_active, created_at, updated_at
	           FROM users WHERE id = ?`
	return r.scanOne(r.db.QueryRowContext(ctx, q, id))
}

func (r *UserRepo) scanOne(row *sql.Row) (*model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// CountByRole returns the number of users holding the given role.
func (r *UserRepo) CountByRole(ctx context.Context, role string) (int, error) {
	const q = `SELECT COUNT(*) FROM users WHERE role = ?`
	var n int
	if err := r.db.QueryRowContext(ctx, q, role).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// CountAll returns the total number of users.
func (r *UserRepo) CountAll(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// SetActive flips the is_active flag on a user. Admins use it to
// deactivate mentee accounts. Returns ErrNotFound when no row matched.
func (r *UserRepo) SetActive(ctx context.Context, id uint64, active bool) error {
	const q = `UPDATE users SET is_active = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, active, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// ListByRole returns users holding a role ordered by creation time
// descending. Used by the admin back-office listings.
func (r *UserRepo) ListByRole(ctx context.Context, role string) ([]model.User, error) {
	const q = `SELECT id, email, password_hash, role, is_active, created_at, updated_at
	           FROM users WHERE role = ? ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, q, role)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	users := make([]model.User, 0)
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.IsActive, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
