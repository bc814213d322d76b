package repository

import (
	"context"
	"database/sql"

	"github.com/r33j4n/mentorhub-genesis-project-sub001/internal/model"
)

// NotificationRepo persists inbox notifications.  Rows are inserted by
// the queue consumer on lifecycle events; the owning user reads, marks
// and deletes them.  Inserts are at-least-once: a redelivered event may
// create a duplicate row and that is accepted.
type NotificationRepo struct {
	db *sql.DB
}

// NewNotificationRepo returns a new NotificationRepo bound to the given database.
func NewNotificationRepo(db *sql.DB) *NotificationRepo { return &NotificationRepo{db: db} }

// Create inserts one notification row for a user.
func (r *NotificationRepo) Create(ctx context.Context, n *model.Notification) error {
	const q = `INSERT INTO notifications (user_id, title, message, type, related_id)
	           VALUES (?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, n.UserID, n.Title, n.Message, n.Type, n.RelatedID)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	n.ID = uint64(id)
	return nil
}

// ListByUser returns the user's notifications, newest first.
func (r *NotificationRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Notification, error) {
	const q = `SELECT id, user_id, title, message, type, related_id, is_read, created_at
	           FROM notifications WHERE user_id = ? ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := make([]model.Notification, 0)
	for rows.Next() {
		var n model.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Title, &n.Message, &n.Type,
			&n.RelatedID, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, n)
	}
	return items, rows.Err()
}

// MarkRead flags one notification as read.  Ownership is enforced in
// the predicate: a row belonging to someone else behaves as missing.
func (r *NotificationRepo) MarkRead(ctx context.Context, id, userID uint64) error {
	const q = `UPDATE notifications SET is_read = 1 WHERE id = ? AND user_id = ?`
	return r.affectOne(ctx, q, id, userID)
}

// Delete removes one notification owned by the user.
func (r *NotificationRepo) Delete(ctx context.Context, id, userID uint64) error {
	const q = `DELETE FROM notifications WHERE id = ? AND user_id = ?`
	return r.affectOne(ctx, q, id, userID)
}

func (r *NotificationRepo) affectOne(ctx context.Context, q string, args ...interface{}) error {
	res, err := r.db.ExecContext(ctx, q, args...)
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
