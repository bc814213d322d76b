package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/r33j4n/mentorhub-genesis-project-sub001/internal/model"
	"github.com/r33j4n/mentorhub-genesis-project-sub001/internal/repository"
	"github.com/r33j4n/mentorhub-genesis-project-sub001/internal/schedule"
)

// AvailabilityHandler serves a mentor's weekly availability rules.
type AvailabilityHandler struct {
	Rules *repository.AvailabilityRepo
}

func NewAvailabilityHandler(r *repository.AvailabilityRepo) *AvailabilityHandler {
	return &AvailabilityHandler{Rules: r}
}

type availabilityRuleReq struct {
	DayOfWeek   int    `json:"day_of_week"` // 0=Sunday .. 6=Saturday
	StartTime   string `json:"start_time"`  // "HH:MM"
	EndTime     string `json:"end_time"`
	IsAvailable bool   `json:"is_available"`
	Timezone    string `json:"timezone"`
}
type replaceAvailabilityReq struct {
	Rules []availabilityRuleReq `json:"rules"`
}

type availabilityRuleView struct {
	DayOfWeek   int    `json:"day_of_week"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	IsAvailable bool   `json:"is_available"`
	Timezone    string `json:"timezone"`
}

func viewRules(rules []model.AvailabilityRule) []availabilityRuleView {
	out := make([]availabilityRuleView, 0, len(rules))
	for _, r := range rules {
		out = append(out, availabilityRuleView{
			DayOfWeek:   r.DayOfWeek,
			StartTime:   r.StartTime,
			EndTime:     r.EndTime,
			IsAvailable: r.IsAvailable,
			Timezone:    r.Timezone,
		})
	}
	return out
}

// Replace swaps the caller's full weekly rule set in one shot.  Partial
// updates are not supported; the submitted set becomes the truth.
func (h *AvailabilityHandler) Replace(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req replaceAvailabilityReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if len(req.Rules) != 7 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "exactly one rule per weekday required"})
	}

	seen := map[int]bool{}
	rules := make([]model.AvailabilityRule, 0, len(req.Rules))
	for i, r := range req.Rules {
		if r.DayOfWeek < 0 || r.DayOfWeek > 6 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": fmt.Sprintf("rules[%d]: day_of_week must be 0..6", i)})
		}
		if seen[r.DayOfWeek] {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": fmt.Sprintf("rules[%d]: duplicate day_of_week %d", i, r.DayOfWeek)})
		}
		seen[r.DayOfWeek] = true
		start, err := schedule.ParseTimeOfDay(r.StartTime)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": fmt.Sprintf("rules[%d]: %v", i, err)})
		}
		end, err := schedule.ParseTimeOfDay(r.EndTime)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": fmt.Sprintf("rules[%d]: %v", i, err)})
		}
		if start%schedule.SlotMinutes != 0 || end%schedule.SlotMinutes != 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": fmt.Sprintf("rules[%d]: times must align to %d-minute slots", i, schedule.SlotMinutes)})
		}
		if r.IsAvailable && end <= start {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": fmt.Sprintf("rules[%d]: end_time must be after start_time", i)})
		}
		tz := r.Timezone
		if tz == "" {
			tz = "UTC"
		}
		rules = append(rules, model.AvailabilityRule{
			MentorID:    userID,
			DayOfWeek:   r.DayOfWeek,
			StartTime:   schedule.FormatTimeOfDay(start),
			EndTime:     schedule.FormatTimeOfDay(end),
			IsAvailable: r.IsAvailable,
			Timezone:    tz,
		})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Rules.ReplaceForMentor(ctx, userID, rules); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save availability failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"rules": viewRules(rules)})
}

// Mine returns the caller's stored weekly rules.
func (h *AvailabilityHandler) Mine(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	rules, err := h.Rules.GetByMentor(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load availability failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"rules": viewRules(rules)})
}
