package queue

import (
	"testing"

	"github.com/r33j4n/mentorhub-genesis-project-sub001/internal/session"
)

func event(status string, actor uint64) SessionEvent {
	return SessionEvent{
		SessionID:   42,
		MentorID:    1,
		MenteeID:    2,
		ActorUserID: actor,
		Title:       "Mock interview",
		Status:      status,
	}
}

func TestNotificationsForRecipients(t *testing.T) {
	tests := []struct {
		name  string
		ev    SessionEvent
		users []uint64
	}{
		{"request notifies mentor", event(session.StatusRequested, 2), []uint64{1}},
		{"confirm notifies mentee", event(session.StatusConfirmed, 1), []uint64{2}},
		{"decline notifies mentee", event(session.StatusDeclined, 1), []uint64{2}},
		{"mentee cancel notifies mentor", event(session.StatusCancelled, 2), []uint64{1}},
		{"mentor cancel notifies mentee", event(session.StatusCancelled, 1), []uint64{2}},
		{"sweep cancel notifies both", event(session.StatusCancelled, 0), []uint64{1, 2}},
		{"start notifies both", event(session.StatusInProgress, 0), []uint64{1, 2}},
		{"complete notifies both", event(session.StatusCompleted, 0), []uint64{1, 2}},
		{"unknown status notifies nobody", event("archived", 0), nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ns := notificationsFor(tc.ev)
			if len(ns) != len(tc.users) {
				t.Fatalf("got %d notifications, want %d", len(ns), len(tc.users))
			}
			for i, want := range tc.users {
				if ns[i].UserID != want {
					t.Errorf("notification %d for user %d, want %d", i, ns[i].UserID, want)
				}
				if ns[i].RelatedID != tc.ev.SessionID {
					t.Errorf("related_id = %d, want %d", ns[i].RelatedID, tc.ev.SessionID)
				}
			}
		})
	}
}
