package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/r33j4n/mentorhub-genesis-project-sub001/internal/booking"
	"github.com/r33j4n/mentorhub-genesis-project-sub001/internal/model"
	"github.com/r33j4n/mentorhub-genesis-project-sub001/internal/repository"
	"github.com/r33j4n/mentorhub-genesis-project-sub001/internal/schedule"
)

// BrowseHandler serves the public mentor directory.
type BrowseHandler struct {
	Mentors  *repository.MentorRepo
	Rules    *repository.AvailabilityRepo
	Sessions *repository.SessionRepo
}

func NewBrowseHandler(m *repository.MentorRepo, r *repository.AvailabilityRepo, s *repository.SessionRepo) *BrowseHandler {
	return &BrowseHandler{Mentors: m, Rules: r, Sessions: s}
}

type mentorView struct {
	UserID          uint64 `json:"user_id"`
	DisplayName     string `json:"display_name"`
	Headline        string `json:"headline"`
	Bio             string `json:"bio,omitempty"`
	Expertise       string `json:"expertise"`
	HourlyRateCents uint32 `json:"hourly_rate_cents"`
	HourlyRate      string `json:"hourly_rate"`
	Timezone        string `json:"timezone"`
	IsApproved      bool   `json:"is_approved"`
}

func viewMentor(p *model.MentorProfile) mentorView {
	return mentorView{
		UserID:          p.UserID,
		DisplayName:     p.DisplayName,
		Headline:        p.Headline,
		Bio:             p.Bio,
		Expertise:       p.Expertise,
		HourlyRateCents: p.HourlyRateCents,
		HourlyRate:      centsToDecimal(p.HourlyRateCents),
		Timezone:        p.Timezone,
		IsApproved:      p.IsApproved,
	}
}

// List returns approved mentors, optionally filtered by expertise.
func (h *BrowseHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	mentors, err := h.Mentors.ListApproved(ctx, c.QueryParam("expertise"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list mentors failed"})
	}
	out := make([]mentorView, 0, len(mentors))
	for i := range mentors {
		out = append(out, viewMentor(&mentors[i]))
	}
	return c.JSON(http.StatusOK, echo.Map{"mentors": out})
}

// Detail returns one approved mentor's public profile.
func (h *BrowseHandler) Detail(c echo.Context) error {
	mentorID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid mentor id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	p, err := h.Mentors.GetByUserID(ctx, mentorID)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "mentor not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "lookup failed"})
	}
	if !p.IsApproved {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "mentor not found"})
	}
	return c.JSON(http.StatusOK, echo.Map{"mentor": viewMentor(p)})
}

// Slots lists a mentor's open 30-minute slot starts for one date.  When
// the mentor has no stored rules the default weekday grid applies.
// Slots already covered by an active session are excluded.
func (h *BrowseHandler) Slots(c echo.Context) error {
	mentorID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid mentor id"})
	}
	dateStr := c.QueryParam("date")
	if dateStr == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date query parameter required"})
	}
	day, err := time.ParseInLocation(booking.DateLayout, dateStr, time.UTC)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	p, err := h.Mentors.GetByUserID(ctx, mentorID)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "mentor not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "lookup failed"})
	}
	if !p.IsApproved {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "mentor not found"})
	}

	rules, err := h.Rules.GetByMentor(ctx, mentorID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load availability failed"})
	}
	slots, err := schedule.SlotsForDay(rules, int(day.Weekday()))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "derive slots failed"})
	}

	windows, err := h.Sessions.BookedWindows(ctx, mentorID, day, day.Add(24*time.Hour))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load bookings failed"})
	}

	open := make([]string, 0, len(slots))
	for _, s := range slots {
		mins, perr := schedule.ParseTimeOfDay(s)
		if perr != nil {
			continue
		}
		start := day.Add(time.Duration(mins) * time.Minute)
		end := start.Add(schedule.SlotMinutes * time.Minute)
		booked := false
		for _, w := range windows {
			if start.Before(w[1]) && end.After(w[0]) {
				booked = true
				break
			}
		}
		if !booked {
			open = append(open, s)
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"date": dateStr, "slots": open})
}
