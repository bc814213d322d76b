// Package schedule turns a mentor's weekly availability rules into the
// discrete half-hour start times a mentee can pick from.  All slot math
// works on minutes from midnight so that "HH:MM" parsing happens in one
// place; nothing here touches the database.
package schedule

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/r33j4n/mentorhub-genesis-project-sub001/internal/model"
)

// SlotMinutes is the booking granularity. Every derived slot starts on
// a half-hour boundary relative to the rule's start time.
const SlotMinutes = 30

// Default grid applied when a mentor has not declared any rules. The
// grid runs 09:00 through 18:30 inclusive, any day of the week. Unset
// mentors are treated as open rather than unavailable.
const (
	defaultGridStart = 9 * 60
	defaultGridEnd   = 18*60 + 30
)

// ParseTimeOfDay converts an "HH:MM" string into minutes from midnight.
// It rejects malformed strings and out-of-range components.
func ParseTimeOfDay(s string) (int, error) {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time of day %q", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}
	return h*60 + m, nil
}

// FormatTimeOfDay renders minutes from midnight as "HH:MM".
func FormatTimeOfDay(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// DeriveSlots expands one availability rule into an ordered list of
// bookable start times.  Slots begin at the rule's start time, advance
// in SlotMinutes steps and stop strictly before the end time: a rule
// covering 09:00–17:00 yields 09:00 through 16:30.  A rule whose day is
// marked unavailable, or whose window is empty or inverted, yields no
// slots.
func DeriveSlots(rule model.AvailabilityRule) ([]string, error) {
	if !rule.IsAvailable {
		return []string{}, nil
	}
	start, err := ParseTimeOfDay(rule.StartTime)
	if err != nil {
		return nil, err
	}
	end, err := ParseTimeOfDay(rule.EndTime)
	if err != nil {
		return nil, err
	}
	if end <= start {
		return []string{}, nil
	}
	slots := make([]string, 0, (end-start)/SlotMinutes+1)
	for t := start; t < end; t += SlotMinutes {
		slots = append(slots, FormatTimeOfDay(t))
	}
	return slots, nil
}

// DefaultSlots returns the fallback grid used for mentors without any
// availability rules: 09:00, 09:30, …, 18:30 (20 slots). Unlike
// DeriveSlots the grid end is itself a slot.
func DefaultSlots() []string {
	slots := make([]string, 0, (defaultGridEnd-defaultGridStart)/SlotMinutes+1)
	for t := defaultGridStart; t <= defaultGridEnd; t += SlotMinutes {
		slots = append(slots, FormatTimeOfDay(t))
	}
	return slots
}

// SlotsForDay picks the rule matching the given weekday out of a
// mentor's rule set and derives its slots.  When the mentor has no
// rules at all the default grid is substituted for every day; when
// rules exist but none covers the weekday, the day is closed.
func SlotsForDay(rules []model.AvailabilityRule, dayOfWeek int) ([]string, error) {
	if len(rules) == 0 {
		return DefaultSlots(), nil
	}
	for _, r := range rules {
		if r.DayOfWeek == dayOfWeek {
			return DeriveSlots(r)
		}
	}
	return []string{}, nil
}
