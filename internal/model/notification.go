package model

import "time"

// Notification is one row shown in a user's inbox.  Rows are created by
// the queue consumer on session lifecycle transitions and are only ever
// read, marked read or deleted by their owning user.  Delivery is
// at-least-once: a redelivered event may insert a duplicate row.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – recipient, references users.id.
//  Title     – short headline.
//  Message   – body text.
//  Type      – event kind (e.g. "session_requested").
//  RelatedID – id of the session the notification refers to.
//  IsRead    – whether the owner has seen it.
//  CreatedAt – creation timestamp.
type Notification struct {
	ID        uint64    // notifications.id
	UserID    uint64    // notifications.user_id
	Title     string    // notifications.title
	Message   string    // notifications.message
	Type      string    // notifications.type
	RelatedID uint64    // notifications.related_id
	IsRead    bool      // notifications.is_read
	CreatedAt time.Time // notifications.created_at
}
