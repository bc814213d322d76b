package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"

	"github.com/r33j4n/mentorhub-genesis-project-sub001/internal/model"
	"github.com/r33j4n/mentorhub-genesis-project-sub001/internal/session"
)

// SessionRepo provides persistence for mentoring sessions and enforces
// the parts of the lifecycle that must hold under concurrency: the
// overlap check runs in the same transaction as the insert, and status
// transitions lock the row before consulting the transition rules.
type SessionRepo struct {
	db *sql.DB
}

// NewSessionRepo returns a new SessionRepo bound to the given database.
func NewSessionRepo(db *sql.DB) *SessionRepo { return &SessionRepo{db: db} }

// DB exposes the underlying handle for callers that need to coordinate
// a transaction across repositories.
func (r *SessionRepo) DB() *sql.DB { return r.db }

const sessionCols = `id, reference, mentor_id, mentee_id, title, description, session_type,
	scheduled_start, scheduled_end, duration_minutes,
	base_price_cents, final_price_cents, commission_rate, platform_fee_cents,
	status, created_at, updated_at`

// isLockConflict reports whether err is a MySQL deadlock (1213) or lock
// wait timeout (1205).  Under concurrent inserts for the same window the
// losing transaction surfaces one of these; both mean another writer
// holds the window, so callers treat them as a booking conflict.
func isLockConflict(err error) bool {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		return me.Number == 1213 || me.Number == 1205
	}
	return false
}

func activeStatusPlaceholders() (string, []interface{}) {
	ph := make([]string, len(session.ActiveStatuses))
	args := make([]interface{}, len(session.ActiveStatuses))
	for i, s := range session.ActiveStatuses {
		ph[i] = "?"
		args[i] = s
	}
	return strings.Join(ph, ","), args
}

// CreateRequested inserts a new session in the requested state.  The
// overlap check against the mentor's active sessions and the insert run
// inside one transaction; overlapping rows are locked so two
// simultaneous requests for the same window cannot both succeed.
// Returns ErrConflict when the window is already taken.
func (r *SessionRepo) CreateRequested(ctx context.Context, s *model.Session) error {
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

	ph, args := activeStatusPlaceholders()
	overlapQ := `SELECT id FROM sessions
	             WHERE mentor_id = ? AND status IN (` + ph + `)
	               AND scheduled_start < ? AND scheduled_end > ?
	             LIMIT 1 FOR UPDATE`
	qargs := append([]interface{}{s.MentorID}, args...)
	qargs = append(qargs, s.ScheduledEnd.UTC(), s.ScheduledStart.UTC())
	var existing uint64
	err = tx.QueryRowContext(ctx, overlapQ, qargs...).Scan(&existing)
	if err == nil {
		return ErrConflict
	}
	if !errors.Is(err, sql.ErrNoRows) {
		if isLockConflict(err) {
			return ErrConflict
		}
		return err
	}

	const ins = `INSERT INTO sessions
	             (reference, mentor_id, mentee_id, title, description, session_type,
	              scheduled_start, scheduled_end, duration_minutes,
	              base_price_cents, final_price_cents, commission_rate, platform_fee_cents, status)
	             VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, ins,
		s.Reference, s.MentorID, s.MenteeID, s.Title, s.Description, s.SessionType,
		s.ScheduledStart.UTC(), s.ScheduledEnd.UTC(), s.DurationMinutes,
		s.BasePriceCents, s.FinalPriceCents, s.CommissionRate, s.PlatformFeeCents,
		session.StatusRequested)
	if err != nil {
		if isLockConflict(err) {
			return ErrConflict
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	s.Status = session.StatusRequested

	// Query back timestamps populated by the database.
	const sel = `SELECT created_at, updated_at FROM sessions WHERE id = ?`
	if err := tx.QueryRowContext(ctx, sel, s.ID).Scan(&s.CreatedAt, &s.UpdatedAt); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// GetForParty loads one session when the given user is the mentor or
// the mentee on it.  Returns ErrNotFound when the session does not
// exist and ErrForbidden when the user is not a party.
func (r *SessionRepo) GetForParty(ctx context.Context, id, userID uint64) (*model.Session, error) {
	const q = `SELECT ` + sessionCols + ` FROM sessions WHERE id = ?`
	s, err := scanSession(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		return nil, err
	}
	if s.MentorID != userID && s.MenteeID != userID {
		return nil, ErrForbidden
	}
	return s, nil
}

func scanSession(row *sql.Row) (*model.Session, error) {
	var s model.Session
	err := row.Scan(&s.ID, &s.Reference, &s.MentorID, &s.MenteeID, &s.Title, &s.Description,
		&s.SessionType, &s.ScheduledStart, &s.ScheduledEnd, &s.DurationMinutes,
		&s.BasePriceCents, &s.FinalPriceCents, &s.CommissionRate, &s.PlatformFeeCents,
		&s.Status, &s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// ListForUser returns every session where the user is a party, newest
// first.  An optional status narrows the result.
func (r *SessionRepo) ListForUser(ctx context.Context, userID uint64, status string) ([]model.Session, error) {
	q := `SELECT ` + sessionCols + ` FROM sessions WHERE (mentor_id = ? OR mentee_id = ?)`
	args := []interface{}{userID, userID}
	if status != "" {
		q += ` AND status = ?`
		args = append(args, status)
	}
	q += ` ORDER BY scheduled_start DESC`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectSessions(rows)
}

func collectSessions(rows *sql.Rows) ([]model.Session, error) {
	sessions := make([]model.Session, 0)
	for rows.Next() {
		var s model.Session
		if err := rows.Scan(&s.ID, &s.Reference, &s.MentorID, &s.MenteeID, &s.Title, &s.Description,
			&s.SessionType, &s.ScheduledStart, &s.ScheduledEnd, &s.DurationMinutes,
			&s.BasePriceCents, &s.FinalPriceCents, &s.CommissionRate, &s.PlatformFeeCents,
			&s.Status, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

// Transition moves a session to a new status on behalf of a user.  The
// row is locked, the acting party is resolved from the session itself,
// and the transition table in the session package decides whether the
// move is allowed.  Returns ErrNotFound, ErrForbidden (not a party) or
// ErrInvalidTransition (wrong state or wrong party for this move).
func (r *SessionRepo) Transition(ctx context.Context, id, userID uint64, to string) (*model.Session, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	const q = `SELECT ` + sessionCols + ` FROM sessions WHERE id = ? FOR UPDATE`
	var s model.Session
	err = tx.QueryRowContext(ctx, q, id).Scan(&s.ID, &s.Reference, &s.MentorID, &s.MenteeID,
		&s.Title, &s.Description, &s.SessionType, &s.ScheduledStart, &s.ScheduledEnd,
		&s.DurationMinutes, &s.BasePriceCents, &s.FinalPriceCents, &s.CommissionRate,
		&s.PlatformFeeCents, &s.Status, &s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var actor session.Actor
	switch userID {
	case s.MentorID:
		actor = session.ActorMentor
	case s.MenteeID:
		actor = session.ActorMentee
	default:
		return nil, ErrForbidden
	}
	if !session.CanTransition(s.Status, to, actor) {
		return nil, ErrInvalidTransition
	}

	const upd = `UPDATE sessions SET status = ? WHERE id = ?`
	if _, err := tx.ExecContext(ctx, upd, to, s.ID); err != nil {
		return nil, err
	}
	s.Status = to

	// The UPDATE bumps updated_at; read it back so the returned session
	// matches the committed row.
	const sel = `SELECT created_at, updated_at FROM sessions WHERE id = ?`
	if err := tx.QueryRowContext(ctx, sel, s.ID).Scan(&s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true
	return &s, nil
}

// SweepDue performs the time-triggered transitions as of now: confirmed
// sessions whose start has passed become in_progress, and in_progress
// sessions whose end has passed become completed.  It returns the
// sessions that changed, already carrying their new status, so the
// caller can publish events for each.  Rows are locked for the duration
// of the sweep transaction.
func (r *SessionRepo) SweepDue(ctx context.Context, now time.Time) ([]model.Session, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	changed := make([]model.Session, 0)
	steps := []struct {
		from, to string
		col      string
	}{
		{session.StatusConfirmed, session.StatusInProgress, "scheduled_start"},
		{session.StatusInProgress, session.StatusCompleted, "scheduled_end"},
	}
	for _, step := range steps {
		q := `SELECT ` + sessionCols + ` FROM sessions
		      WHERE status = ? AND ` + step.col + ` <= ? FOR UPDATE`
		rows, err := tx.QueryContext(ctx, q, step.from, now.UTC())
		if err != nil {
			return nil, err
		}
		due, err := collectSessions(rows)
		if err != nil {
			return nil, err
		}
		if len(due) == 0 {
			continue
		}
		ids := make([]string, len(due))
		args := make([]interface{}, 0, len(due)+1)
		args = append(args, step.to)
		for i, s := range due {
			ids[i] = "?"
			args = append(args, s.ID)
		}
		upd := `UPDATE sessions SET status = ? WHERE id IN (` + strings.Join(ids, ",") + `)`
		if _, err := tx.ExecContext(ctx, upd, args...); err != nil {
			return nil, err
		}
		for i := range due {
			due[i].Status = step.to
		}
		changed = append(changed, due...)
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true
	return changed, nil
}

// CountForUser returns how many sessions the user is a party to.
func (r *SessionRepo) CountForUser(ctx context.Context, userID uint64) (int, error) {
	const q = `SELECT COUNT(*) FROM sessions WHERE mentor_id = ? OR mentee_id = ?`
	var n int
	err := r.db.QueryRowContext(ctx, q, userID, userID).Scan(&n)
	return n, err
}

// CountPartners returns the number of distinct users the given user has
// ever had a session with, in either role.
func (r *SessionRepo) CountPartners(ctx context.Context, userID uint64) (int, error) {
	const q = `SELECT COUNT(DISTINCT other) FROM (
	             SELECT mentee_id AS other FROM sessions WHERE mentor_id = ?
	             UNION
	             SELECT mentor_id AS other FROM sessions WHERE mentee_id = ?
	           ) partners`
	var n int
	err := r.db.QueryRowContext(ctx, q, userID, userID).Scan(&n)
	return n, err
}

// BookedWindows lists the [start, end) windows of a mentor's active
// sessions that intersect [from, to).  Used to knock booked slots out of
// the published schedule.
func (r *SessionRepo) BookedWindows(ctx context.Context, mentorID uint64, from, to time.Time) ([][2]time.Time, error) {
	ph, stArgs := activeStatusPlaceholders()
	q := `SELECT scheduled_start, scheduled_end FROM sessions
	      WHERE mentor_id = ? AND status IN (` + ph + `)
	        AND scheduled_start < ? AND scheduled_end > ?`
	args := append([]interface{}{mentorID}, stArgs...)
	args = append(args, to, from)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var windows [][2]time.Time
	for rows.Next() {
		var w [2]time.Time
		if err := rows.Scan(&w[0], &w[1]); err != nil {
			return nil, err
		}
		windows = append(windows, w)
	}
	return windows, rows.Err()
}

// MentorStats aggregates a mentor's completed session count and gross
// earnings (final price minus platform fee) in cents.
func (r *SessionRepo) MentorStats(ctx context.Context, mentorID uint64) (completed int, earningsCents uint64, err error) {
	const q = `SELECT COUNT(*), COALESCE(SUM(final_price_cents - platform_fee_cents), 0)
	           FROM sessions WHERE mentor_id = ? AND status = ?`
	err = r.db.QueryRowContext(ctx, q, mentorID, session.StatusCompleted).Scan(&completed, &earningsCents)
	return completed, earningsCents, err
}
