package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/r33j4n/mentorhub-genesis-project-sub001/internal/model"
)

// MentorRepo provides persistence for mentor profiles.  A profile row
// exists for every user registered with the MENTOR role; admins flip
// is_approved to make the mentor visible and bookable.
type MentorRepo struct {
	db *sql.DB
}

// NewMentorRepo returns a new MentorRepo bound to the given database.
func NewMentorRepo(db *sql.DB) *MentorRepo { return &MentorRepo{db: db} }

const mentorCols = `user_id, display_name, headline, bio, expertise, hourly_rate_cents, timezone, is_approved, created_at, updated_at`

// CreateProfile inserts an unapproved profile for a newly registered
// mentor.
func (r *MentorRepo) CreateProfile(ctx context.Context, p *model.MentorProfile) error {
	const q = `INSERT INTO mentor_profiles
	           (user_id, display_name, headline, bio, expertise, hourly_rate_cents, timezone, is_approved)
	           VALUES (?, ?, ?, ?, ?, ?, ?, 0)`
	_, err := r.db.ExecContext(ctx, q,
		p.UserID, p.DisplayName, p.Headline, p.Bio, p.Expertise, p.HourlyRateCents, p.Timezone)
	return err
}

// GetByUserID loads one mentor profile. Returns ErrNotFound when the
// user has no profile.
func (r *MentorRepo) GetByUserID(ctx context.Context, userID uint64) (*model.MentorProfile, error) {
	const q = `SELECT ` + mentorCols + ` FROM mentor_profiles WHERE user_id = ?`
	return scanMentor(r.db.QueryRowContext(ctx, q, userID))
}

func scanMentor(row *sql.Row) (*model.MentorProfile, error) {
	var p model.MentorProfile
	err := row.Scan(&p.UserID, &p.DisplayName, &p.Headline, &p.Bio, &p.Expertise,
		&p.HourlyRateCents, &p.Timezone, &p.IsApproved, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdateProfile overwrites the mutable profile fields for a mentor.
// Approval state is managed separately via SetApproved.
func (r *MentorRepo) UpdateProfile(ctx context.Context, p *model.MentorProfile) error {
	const q = `UPDATE mentor_profiles
	           SET display_name = ?, headline = ?, bio = ?, expertise = ?, hourly_rate_cents = ?, timezone = ?
	           WHERE user_id = ?`
	res, err := r.db.ExecContext(ctx, q,
		p.DisplayName, p.Headline, p.Bio, p.Expertise, p.HourlyRateCents, p.Timezone, p.UserID)
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

// SetApproved flips the approval flag; only admins call this.
func (r *MentorRepo) SetApproved(ctx context.Context, userID uint64, approved bool) error {
	const q = `UPDATE mentor_profiles SET is_approved = ? WHERE user_id = ?`
	res, err := r.db.ExecContext(ctx, q, approved, userID)
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

// ListApproved returns approved mentor profiles for the public
// directory, optionally filtered by an expertise tag (substring match
// on the comma separated column). Ordered by display name.
func (r *MentorRepo) ListApproved(ctx context.Context, expertise string) ([]model.MentorProfile, error) {
	q := `SELECT ` + mentorCols + ` FROM mentor_profiles WHERE is_approved = 1`
	args := []interface{}{}
	if s := strings.TrimSpace(expertise); s != "" {
		q += ` AND expertise LIKE ?`
		args = append(args, "%"+s+"%")
	}
	q += ` ORDER BY display_name`
	return r.list(ctx, q, args...)
}

// ListAll returns every mentor profile regardless of approval state.
// Used by the admin back-office.
func (r *MentorRepo) ListAll(ctx context.Context) ([]model.MentorProfile, error) {
	const q = `SELECT ` + mentorCols + ` FROM mentor_profiles ORDER BY created_at DESC`
	return r.list(ctx, q)
}

func (r *MentorRepo) list(ctx context.Context, q string, args ...interface{}) ([]model.MentorProfile, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	profiles := make([]model.MentorProfile, 0)
	for rows.Next() {
		var p model.MentorProfile
		if err := rows.Scan(&p.UserID, &p.DisplayName, &p.Headline, &p.Bio, &p.Expertise,
			&p.HourlyRateCents, &p.Timezone, &p.IsApproved, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

// CountPending returns the number of mentor profiles awaiting approval.
func (r *MentorRepo) CountPending(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM mentor_profiles WHERE is_approved = 0`).Scan(&n)
	return n, err
}
