package booking

import (
	"errors"
	"testing"
	"time"
)

var now = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func validRequest() Request {
	return Request{
		Title:           "Career planning",
		Date:            "2024-06-10",
		Time:            "14:00",
		DurationMinutes: 60,
	}
}

func TestValidateRequiredFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{"missing title", func(r *Request) { r.Title = "" }},
		{"missing date", func(r *Request) { r.Date = "" }},
		{"missing time", func(r *Request) { r.Time = "" }},
		{"malformed date", func(r *Request) { r.Date = "10/06/2024" }},
		{"malformed time", func(r *Request) { r.Time = "2pm" }},
		{"past start", func(r *Request) { r.Date = "2024-05-01" }},
		{"too short", func(r *Request) { r.DurationMinutes = 15 }},
		{"too long", func(r *Request) { r.DurationMinutes = 300 }},
		{"off grid", func(r *Request) { r.DurationMinutes = 45 }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := validRequest()
			tc.mutate(&r)
			if _, err := r.Validate(now); !errors.Is(err, ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestValidateSchedule(t *testing.T) {
	start, err := validRequest().Validate(now)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	want := time.Date(2024, 6, 10, 14, 0, 0, 0, time.UTC)
	if !start.Equal(want) {
		t.Fatalf("start = %v, want %v", start, want)
	}
}

func TestNewQuotePricing(t *testing.T) {
	r := validRequest()
	r.DurationMinutes = 90
	// hourly rate 100.00 over 90 minutes -> final 150.00, fee 15.00
	q, err := NewQuote(r, 10000, now)
	if err != nil {
		t.Fatalf("NewQuote: %v", err)
	}
	if q.FinalPriceCents != 15000 {
		t.Errorf("final = %d cents, want 15000", q.FinalPriceCents)
	}
	if q.BasePriceCents != q.FinalPriceCents {
		t.Errorf("base = %d, want equal to final %d", q.BasePriceCents, q.FinalPriceCents)
	}
	if q.PlatformFeeCents != 1500 {
		t.Errorf("fee = %d cents, want 1500", q.PlatformFeeCents)
	}
	if q.CommissionRate != 0.10 {
		t.Errorf("commission rate = %v, want 0.10", q.CommissionRate)
	}
}

func TestNewQuoteScheduledEnd(t *testing.T) {
	q, err := NewQuote(validRequest(), 10000, now)
	if err != nil {
		t.Fatalf("NewQuote: %v", err)
	}
	wantEnd := time.Date(2024, 6, 10, 15, 0, 0, 0, time.UTC)
	if !q.ScheduledEnd.Equal(wantEnd) {
		t.Errorf("end = %v, want %v", q.ScheduledEnd, wantEnd)
	}
	if q.ScheduledEnd.Sub(q.ScheduledStart) != time.Duration(q.DurationMinutes)*time.Minute {
		t.Error("scheduled_end must equal scheduled_start + duration")
	}
}
