package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/r33j4n/mentorhub-genesis-project-sub001/internal/model"
	"github.com/r33j4n/mentorhub-genesis-project-sub001/internal/repository"
)

// DashboardHandler aggregates per-user counters for the landing view.
type DashboardHandler struct {
	Users    *repository.UserRepo
	Sessions *repository.SessionRepo
	Mentors  *repository.MentorRepo
}

func NewDashboardHandler(u *repository.UserRepo, s *repository.SessionRepo, m *repository.MentorRepo) *DashboardHandler {
	return &DashboardHandler{Users: u, Sessions: s, Mentors: m}
}

// Stats returns the caller's session count, distinct partner count and,
// for mentors, completed-session earnings.
func (h *DashboardHandler) Stats(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "lookup failed"})
	}
	total, err := h.Sessions.CountForUser(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "stats failed"})
	}
	partners, err := h.Sessions.CountPartners(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "stats failed"})
	}

	resp := echo.Map{
		"totalSessions":     total,
		"activeConnections": partners,
		"isMentor":          u.Role == model.RoleMentor,
		"isMentee":          u.Role == model.RoleMentee,
	}
	if u.Role == model.RoleMentor {
		completed, earnings, err := h.Sessions.MentorStats(ctx, userID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "stats failed"})
		}
		resp["mentorStats"] = echo.Map{
			"completedSessions": completed,
			"earningsCents":     earnings,
		}
	}
	return c.JSON(http.StatusOK, resp)
}
