// Package queue defines message payloads exchanged over the message broker.
package queue

// SessionQueueName is the durable queue carrying lifecycle events.
const SessionQueueName = "session.lifecycle"

// SessionEvent is published whenever a session changes status,
// including creation in the requested state.  It carries enough
// information for the notification consumer to write inbox rows
// without querying the sessions table.
type SessionEvent struct {
	SessionID       uint64  `json:"session_id"`
	Reference       string  `json:"reference"`
	MentorID        uint64  `json:"mentor_id"`
	MenteeID        uint64  `json:"mentee_id"`
	ActorUserID     uint64  `json:"actor_user_id"` // 0 for time-triggered transitions
	Title           string  `json:"title"`
	Status          string  `json:"status"`
	ScheduledStart  string  `json:"scheduled_start"`
	ScheduledEnd    string  `json:"scheduled_end"`
	FinalPriceCents uint32  `json:"final_price_cents"`
	CommissionRate  float64 `json:"commission_rate"`
	OccurredAt      string  `json:"occurred_at"`
}
