package handler // handler defines http handlers

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/r33j4n/mentorhub-genesis-project-sub001/internal/model"
)

// getUserID extracts the user_id from echo.Context and converts it to
// uint64.  JWT claims arrive as float64 after JSON decoding, but the
// value is normalized here so handlers never care.
func getUserID(c echo.Context) (uint64, error) {
	v := c.Get("user_id")
	switch t := v.(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// centsToDecimal renders integer cents as a two-decimal string for
// responses ("15000" -> "150.00").
func centsToDecimal(cents uint32) string {
	return fmt.Sprintf("%d.%02d", cents/100, cents%100)
}

// sessionView is the JSON shape returned for a session in every
// endpoint that exposes one.
type sessionView struct {
	ID              uint64  `json:"id"`
	Reference       string  `json:"reference"`
	MentorID        uint64  `json:"mentor_id"`
	MenteeID        uint64  `json:"mentee_id"`
	Title           string  `json:"title"`
	Description     string  `json:"description,omitempty"`
	SessionType     string  `json:"session_type,omitempty"`
	ScheduledStart  string  `json:"scheduled_start"`
	ScheduledEnd    string  `json:"scheduled_end"`
	DurationMinutes int     `json:"duration_minutes"`
	BasePrice       string  `json:"base_price"`
	FinalPrice      string  `json:"final_price"`
	CommissionRate  float64 `json:"commission_rate"`
	PlatformFee     string  `json:"platform_fee"`
	Status          string  `json:"status"`
	CreatedAt       string  `json:"created_at"`
}

func viewSession(s *model.Session) sessionView {
	return sessionView{
		ID:              s.ID,
		Reference:       s.Reference,
		MentorID:        s.MentorID,
		MenteeID:        s.MenteeID,
		Title:           s.Title,
		Description:     s.Description,
		SessionType:     s.SessionType,
		ScheduledStart:  s.ScheduledStart.UTC().Format(time.RFC3339),
		ScheduledEnd:    s.ScheduledEnd.UTC().Format(time.RFC3339),
		DurationMinutes: s.DurationMinutes,
		BasePrice:       centsToDecimal(s.BasePriceCents),
		FinalPrice:      centsToDecimal(s.FinalPriceCents),
		CommissionRate:  s.CommissionRate,
		PlatformFee:     centsToDecimal(s.PlatformFeeCents),
		Status:          s.Status,
		CreatedAt:       s.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func viewSessions(list []model.Session) []sessionView {
	out := make([]sessionView, 0, len(list))
	for i := range list {
		out = append(out, viewSession(&list[i]))
	}
	return out
}
