// Package booking validates a mentee's session request and computes its
// price.  Validation failures never reach the database: a Request that
// does not pass Validate produces no partial record.
package booking

import (
	"errors"
	"fmt"
	"time"

	"github.com/r33j4n/mentorhub-genesis-project-sub001/internal/schedule"
)

// CommissionRate is the platform share frozen onto every session at
// booking time. It never changes retroactively for existing sessions.
const CommissionRate = 0.10

// Duration bounds accepted for a single session.
const (
	MinDurationMinutes = 30
	MaxDurationMinutes = 240
)

// DateLayout is the wire format for the booking date.
const DateLayout = "2006-01-02"

// ErrValidation wraps all request validation failures so handlers can
// map them to a 400 without inspecting individual causes.
var ErrValidation = errors.New("validation")

// Request carries the raw fields a mentee submits when booking.
type Request struct {
	Title           string
	Description     string
	SessionType     string
	Date            string // "YYYY-MM-DD"
	Time            string // "HH:MM"
	DurationMinutes int
}

// Quote is the priced, scheduled outcome of a valid Request.
type Quote struct {
	ScheduledStart   time.Time
	ScheduledEnd     time.Time
	DurationMinutes  int
	BasePriceCents   uint32
	FinalPriceCents  uint32
	CommissionRate   float64
	PlatformFeeCents uint32
}

// Validate checks the request fields and combines date and time into a
// UTC start timestamp. Title, date and time are required; the start
// must lie in the future relative to now; the duration must fall within
// the accepted bounds and on the slot granularity.
func (r Request) Validate(now time.Time) (time.Time, error) {
	if r.Title == "" {
		return time.Time{}, fmt.Errorf("%w: title is required", ErrValidation)
	}
	if r.Date == "" {
		return time.Time{}, fmt.Errorf("%w: date is required", ErrValidation)
	}
	if r.Time == "" {
		return time.Time{}, fmt.Errorf("%w: time is required", ErrValidation)
	}
	day, err := time.ParseInLocation(DateLayout, r.Date, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date %q", ErrValidation, r.Date)
	}
	minutes, err := schedule.ParseTimeOfDay(r.Time)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid time %q", ErrValidation, r.Time)
	}
	if r.DurationMinutes < MinDurationMinutes || r.DurationMinutes > MaxDurationMinutes {
		return time.Time{}, fmt.Errorf("%w: duration must be between %d and %d minutes",
			ErrValidation, MinDurationMinutes, MaxDurationMinutes)
	}
	if r.DurationMinutes%schedule.SlotMinutes != 0 {
		return time.Time{}, fmt.Errorf("%w: duration must be a multiple of %d minutes",
			ErrValidation, schedule.SlotMinutes)
	}
	start := day.Add(time.Duration(minutes) * time.Minute)
	if !start.After(now) {
		return time.Time{}, fmt.Errorf("%w: scheduled start must be in the future", ErrValidation)
	}
	return start, nil
}

// PriceCents computes the session price in cents from an hourly rate in
// cents. Integer math keeps half-hour multiples exact: a 100.00 hourly
// rate over 90 minutes is 150.00.
func PriceCents(hourlyRateCents uint32, durationMinutes int) uint32 {
	return uint32(uint64(hourlyRateCents) * uint64(durationMinutes) / 60)
}

// FeeCents computes the platform fee from a final price in cents under
// the fixed commission rate.
func FeeCents(finalPriceCents uint32) uint32 {
	return uint32(float64(finalPriceCents)*CommissionRate + 0.5)
}

// NewQuote validates the request against now and prices it with the
// mentor's hourly rate. The base price equals the final price; promo
// adjustments do not exist in this system.
func NewQuote(r Request, hourlyRateCents uint32, now time.Time) (Quote, error) {
	start, err := r.Validate(now)
	if err != nil {
		return Quote{}, err
	}
	final := PriceCents(hourlyRateCents, r.DurationMinutes)
	return Quote{
		ScheduledStart:   start,
		ScheduledEnd:     start.Add(time.Duration(r.DurationMinutes) * time.Minute),
		DurationMinutes:  r.DurationMinutes,
		BasePriceCents:   final,
		FinalPriceCents:  final,
		CommissionRate:   CommissionRate,
		PlatformFeeCents: FeeCents(final),
	}, nil
}
