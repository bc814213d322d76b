package repository

import (
	"context"
	"database/sql"

	"github.com/r33j4n/mentorhub-genesis-project-sub001/internal/model"
)

// AvailabilityRepo persists weekly availability rules.  A mentor's rule
// set is always replaced as a whole: delete and insert run in a single
// transaction so a concurrent reader never observes an empty schedule
// between the two steps.
type AvailabilityRepo struct {
	db *sql.DB
}

// NewAvailabilityRepo returns a new AvailabilityRepo bound to the given database.
func NewAvailabilityRepo(db *sql.DB) *AvailabilityRepo { return &AvailabilityRepo{db: db} }

// ReplaceForMentor atomically swaps the mentor's rule set.  The caller
// passes exactly one rule per weekday; validation of that shape happens
// in the handler.  On any failure the previous rules remain intact.
func (r *AvailabilityRepo) ReplaceForMentor(ctx context.Context, mentorID uint64, rules []model.AvailabilityRule) error {
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
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM availability_rules WHERE mentor_id = ?`, mentorID); err != nil {
		return err
	}
	const ins = `INSERT INTO availability_rules
	             (mentor_id, day_of_week, start_time, end_time, is_available, timezone)
	             VALUES (?, ?, ?, ?, ?, ?)`
	for _, rule := range rules {
		if _, err := tx.ExecContext(ctx, ins,
			mentorID, rule.DayOfWeek, rule.StartTime, rule.EndTime, rule.IsAvailable, rule.Timezone); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// GetByMentor returns the mentor's rules ordered by day_of_week
// ascending.  An empty slice means the mentor has never saved a
// schedule; callers fall back to the default slot grid in that case.
func (r *AvailabilityRepo) GetByMentor(ctx context.Context, mentorID uint64) ([]model.AvailabilityRule, error) {
	const q = `SELECT id, mentor_id, day_of_week, start_time, end_time, is_available, timezone, created_at
	           FROM availability_rules WHERE mentor_id = ? ORDER BY day_of_week ASC`
	rows, err := r.db.QueryContext(ctx, q, mentorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	rules := make([]model.AvailabilityRule, 0, 7)
	for rows.Next() {
		var rule model.AvailabilityRule
		if err := rows.Scan(&rule.ID, &rule.MentorID, &rule.DayOfWeek, &rule.StartTime,
			&rule.EndTime, &rule.IsAvailable, &rule.Timezone, &rule.CreatedAt); err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return rules, rows.Err()
}
