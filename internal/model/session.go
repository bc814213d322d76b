package model

import "time"

// Session records one scheduled mentoring engagement between a mentor
// and a mentee.  It carries the agreed time window, the price computed
// at booking time and the lifecycle status.  Money is stored in integer
// cents; the commission rate is frozen on the row when the session is
// requested and never changes retroactively.
//
// Fields:
//  ID               – primary key identifier.
//  Reference        – opaque UUID returned to clients.
//  MentorID         – mentor party, references users.id.
//  MenteeID         – mentee party, references users.id.
//  Title            – required subject line.
//  Description      – optional detail text.
//  SessionType      – free-form kind tag (e.g. "video", "chat").
//  ScheduledStart   – UTC start of the session.
//  ScheduledEnd     – UTC end; always start + duration.
//  DurationMinutes  – length of the session in minutes.
//  BasePriceCents   – price before adjustments, in cents.
//  FinalPriceCents  – price charged to the mentee, in cents.
//  CommissionRate   – platform share as a fraction (0.10).
//  PlatformFeeCents – final price × commission rate, in cents.
//  Status           – lifecycle state, see the session package.
//  CreatedAt        – creation timestamp.
//  UpdatedAt        – last update timestamp.
type Session struct {
	ID               uint64    // sessions.id
	Reference        string    // sessions.reference
	MentorID         uint64    // sessions.mentor_id
	MenteeID         uint64    // sessions.mentee_id
	Title            string    // sessions.title
	Description      string    // sessions.description
	SessionType      string    // sessions.session_type
	ScheduledStart   time.Time // sessions.scheduled_start
	ScheduledEnd     time.Time // sessions.scheduled_end
	DurationMinutes  int       // sessions.duration_minutes
	BasePriceCents   uint32    // sessions.base_price_cents
	FinalPriceCents  uint32    // sessions.final_price_cents
	CommissionRate   float64   // sessions.commission_rate
	PlatformFeeCents uint32    // sessions.platform_fee_cents
	Status           string    // sessions.status
	CreatedAt        time.Time // sessions.created_at
	UpdatedAt        time.Time // sessions.updated_at
}
