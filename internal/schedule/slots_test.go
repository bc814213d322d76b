package schedule

import (
	"testing"

	"github.com/r33j4n/mentorhub-genesis-project-sub001/internal/model"
)

func rule(day int, start, end string, available bool) model.AvailabilityRule {
	return model.AvailabilityRule{
		MentorID:    1,
		DayOfWeek:   day,
		StartTime:   start,
		EndTime:     end,
		IsAvailable: available,
		Timezone:    "UTC",
	}
}

func TestDeriveSlotsWorkingDay(t *testing.T) {
	slots, err := DeriveSlots(rule(1, "09:00", "17:00", true))
	if err != nil {
		t.Fatalf("DeriveSlots: %v", err)
	}
	if len(slots) != 16 {
		t.Fatalf("expected 16 slots for 09:00-17:00, got %d", len(slots))
	}
	if slots[0] != "09:00" {
		t.Errorf("first slot = %q, want 09:00", slots[0])
	}
	if slots[len(slots)-1] != "16:30" {
		t.Errorf("last slot = %q, want 16:30 (end time is exclusive)", slots[len(slots)-1])
	}
	// strictly increasing with exact half-hour spacing
	for i := 1; i < len(slots); i++ {
		prev, _ := ParseTimeOfDay(slots[i-1])
		cur, _ := ParseTimeOfDay(slots[i])
		if cur-prev != SlotMinutes {
			t.Fatalf("spacing between %s and %s is %d minutes", slots[i-1], slots[i], cur-prev)
		}
	}
}

func TestDeriveSlotsUnavailableDay(t *testing.T) {
	slots, err := DeriveSlots(rule(0, "09:00", "17:00", false))
	if err != nil {
		t.Fatalf("DeriveSlots: %v", err)
	}
	if len(slots) != 0 {
		t.Fatalf("expected no slots on an unavailable day, got %v", slots)
	}
}

func TestDeriveSlotsInvertedWindow(t *testing.T) {
	slots, err := DeriveSlots(rule(2, "17:00", "09:00", true))
	if err != nil {
		t.Fatalf("DeriveSlots: %v", err)
	}
	if len(slots) != 0 {
		t.Fatalf("inverted window should yield no slots, got %v", slots)
	}

	slots, err = DeriveSlots(rule(2, "09:00", "09:00", true))
	if err != nil {
		t.Fatalf("DeriveSlots: %v", err)
	}
	if len(slots) != 0 {
		t.Fatalf("empty window should yield no slots, got %v", slots)
	}
}

func TestDeriveSlotsBadTime(t *testing.T) {
	if _, err := DeriveSlots(rule(3, "9am", "17:00", true)); err == nil {
		t.Fatal("expected error for malformed start time")
	}
	if _, err := DeriveSlots(rule(3, "09:00", "25:00", true)); err == nil {
		t.Fatal("expected error for out-of-range hour")
	}
}

func TestDefaultSlots(t *testing.T) {
	slots := DefaultSlots()
	if len(slots) != 20 {
		t.Fatalf("default grid should have 20 slots, got %d", len(slots))
	}
	if slots[0] != "09:00" || slots[len(slots)-1] != "18:30" {
		t.Fatalf("default grid runs %s..%s, want 09:00..18:30", slots[0], slots[len(slots)-1])
	}
}

func TestSlotsForDay(t *testing.T) {
	rules := []model.AvailabilityRule{
		rule(1, "10:00", "12:00", true),
		rule(2, "09:00", "17:00", false),
	}

	slots, err := SlotsForDay(rules, 1)
	if err != nil {
		t.Fatalf("SlotsForDay: %v", err)
	}
	want := []string{"10:00", "10:30", "11:00", "11:30"}
	if len(slots) != len(want) {
		t.Fatalf("got %v, want %v", slots, want)
	}
	for i := range want {
		if slots[i] != want[i] {
			t.Fatalf("got %v, want %v", slots, want)
		}
	}

	// day marked unavailable
	slots, err = SlotsForDay(rules, 2)
	if err != nil || len(slots) != 0 {
		t.Fatalf("unavailable day: got %v, err %v", slots, err)
	}

	// day with no rule while other rules exist
	slots, err = SlotsForDay(rules, 5)
	if err != nil || len(slots) != 0 {
		t.Fatalf("uncovered day: got %v, err %v", slots, err)
	}

	// no rules at all falls back to the default grid
	slots, err = SlotsForDay(nil, 5)
	if err != nil {
		t.Fatalf("SlotsForDay without rules: %v", err)
	}
	if len(slots) != 20 {
		t.Fatalf("expected default grid for mentor without rules, got %d slots", len(slots))
	}
}
