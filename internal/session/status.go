// Package session defines the lifecycle of a mentoring session: the
// status values, which transitions exist, and which party may trigger
// each one.  Handlers and the background sweeper consult these rules so
// that state changes are enforced server-side rather than by whichever
// UI happens to be rendered.
package session

import "errors"

// Status values stored in sessions.status.
const (
	StatusRequested  = "requested"
	StatusConfirmed  = "confirmed"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
	StatusDeclined   = "declined"
)

// Actor identifies who is attempting a transition.
type Actor int

const (
	ActorMentor Actor = iota
	ActorMentee
	ActorClock // time-triggered transitions performed by the sweeper
)

// ErrInvalidTransition is returned when the requested transition does
// not exist from the session's current status or the actor is not
// permitted to perform it.
var ErrInvalidTransition = errors.New("invalid session transition")

// ActiveStatuses are the states that occupy a mentor's calendar. Only
// sessions in these states count for overlap checks when a new booking
// is requested.
var ActiveStatuses = []string{StatusRequested, StatusConfirmed, StatusInProgress}

// IsKnownStatus reports whether status is one of the defined values.
func IsKnownStatus(status string) bool {
	switch status {
	case StatusRequested, StatusConfirmed, StatusInProgress,
		StatusCompleted, StatusCancelled, StatusDeclined:
		return true
	}
	return false
}

// IsTerminal reports whether no further transitions exist from status.
func IsTerminal(status string) bool {
	switch status {
	case StatusCompleted, StatusCancelled, StatusDeclined:
		return true
	}
	return false
}

// CanTransition reports whether actor may move a session from one
// status to another. The rules:
//
//	requested  → confirmed, declined   (mentor only)
//	requested  → cancelled             (either party)
//	confirmed  → cancelled             (either party)
//	confirmed  → in_progress           (clock, at scheduled_start)
//	in_progress → completed            (clock, at scheduled_end)
//	in_progress → cancelled            (either party)
func CanTransition(from, to string, actor Actor) bool {
	switch from {
	case StatusRequested:
		switch to {
		case StatusConfirmed, StatusDeclined:
			return actor == ActorMentor
		case StatusCancelled:
			return actor == ActorMentor || actor == ActorMentee
		}
	case StatusConfirmed:
		switch to {
		case StatusInProgress:
			return actor == ActorClock
		case StatusCancelled:
			return actor == ActorMentor || actor == ActorMentee
		}
	case StatusInProgress:
		switch to {
		case StatusCompleted:
			return actor == ActorClock
		case StatusCancelled:
			return actor == ActorMentor || actor == ActorMentee
		}
	}
	return false
}
