package model

import "time"

// AvailabilityRule declares a weekly recurring open window for one
// mentor on one weekday.  A mentor has at most one rule per weekday;
// the full set is replaced wholesale when the mentor saves their
// schedule.  Times are stored as "HH:MM" strings in the mentor's
// declared timezone.
//
// Fields:
//  ID          – primary key identifier.
//  MentorID    – mentor the rule belongs to.
//  DayOfWeek   – 0 (Sunday) through 6 (Saturday).
//  StartTime   – opening time of day, "HH:MM".
//  EndTime     – closing time of day, "HH:MM".
//  IsAvailable – false marks the whole day as closed.
//  Timezone    – IANA timezone the times are expressed in.
//  CreatedAt   – timestamp of creation.
type AvailabilityRule struct {
	ID          uint64    // availability_rules.id
	MentorID    uint64    // availability_rules.mentor_id
	DayOfWeek   int       // availability_rules.day_of_week
	StartTime   string    // availability_rules.start_time
	EndTime     string    // availability_rules.end_time
	IsAvailable bool      // availability_rules.is_available
	Timezone    string    // availability_rules.timezone
	CreatedAt   time.Time // availability_rules.created_at
}
