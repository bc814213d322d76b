package session

import "testing"

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name  string
		from  string
		to    string
		actor Actor
		want  bool
	}{
		{"mentor confirms request", StatusRequested, StatusConfirmed, ActorMentor, true},
		{"mentor declines request", StatusRequested, StatusDeclined, ActorMentor, true},
		{"mentee cannot confirm", StatusRequested, StatusConfirmed, ActorMentee, false},
		{"mentee cancels request", StatusRequested, StatusCancelled, ActorMentee, true},
		{"mentor cancels request", StatusRequested, StatusCancelled, ActorMentor, true},
		{"clock cannot confirm", StatusRequested, StatusConfirmed, ActorClock, false},
		{"clock starts confirmed", StatusConfirmed, StatusInProgress, ActorClock, true},
		{"mentor cannot force start", StatusConfirmed, StatusInProgress, ActorMentor, false},
		{"mentee cancels confirmed", StatusConfirmed, StatusCancelled, ActorMentee, true},
		{"clock completes running", StatusInProgress, StatusCompleted, ActorClock, true},
		{"mentee cannot complete", StatusInProgress, StatusCompleted, ActorMentee, false},
		{"mentor cancels running", StatusInProgress, StatusCancelled, ActorMentor, true},
		{"no way out of completed", StatusCompleted, StatusCancelled, ActorMentor, false},
		{"no way out of declined", StatusDeclined, StatusConfirmed, ActorMentor, false},
		{"no way out of cancelled", StatusCancelled, StatusRequested, ActorMentee, false},
		{"requested cannot skip to in_progress", StatusRequested, StatusInProgress, ActorClock, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := CanTransition(tc.from, tc.to, tc.actor); got != tc.want {
				t.Errorf("CanTransition(%s, %s, %v) = %v, want %v", tc.from, tc.to, tc.actor, got, tc.want)
			}
		})
	}
}

func TestIsTerminal(t *testing.T) {
	for _, s := range []string{StatusCompleted, StatusCancelled, StatusDeclined} {
		if !IsTerminal(s) {
			t.Errorf("IsTerminal(%s) = false, want true", s)
		}
	}
	for _, s := range ActiveStatuses {
		if IsTerminal(s) {
			t.Errorf("IsTerminal(%s) = true, want false", s)
		}
	}
}
