package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/r33j4n/mentorhub-genesis-project-sub001/internal/model"
	"github.com/r33j4n/mentorhub-genesis-project-sub001/internal/repository"
)

// AdminHandler covers platform administration: aggregate stats, mentor
// approval and account activation.
type AdminHandler struct {
	Users   *repository.UserRepo
	Mentors *repository.MentorRepo
}

func NewAdminHandler(u *repository.UserRepo, m *repository.MentorRepo) *AdminHandler {
	return &AdminHandler{Users: u, Mentors: m}
}

// MissingID answers PATCH requests that omit the target id.
func (h *AdminHandler) MissingID(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, echo.Map{"error": "id path parameter required"})
}

// Stats returns platform-wide counters.
func (h *AdminHandler) Stats(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	total, err := h.Users.CountAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "stats failed"})
	}
	mentors, err := h.Users.CountByRole(ctx, model.RoleMentor)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "stats failed"})
	}
	mentees, err := h.Users.CountByRole(ctx, model.RoleMentee)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "stats failed"})
	}
	pending, err := h.Mentors.CountPending(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "stats failed"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"totalUsers":     total,
		"totalMentors":   mentors,
		"totalMentees":   mentees,
		"pendingMentors": pending,
	})
}

// ListMentors returns every mentor profile, approved or not.
func (h *AdminHandler) ListMentors(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	mentors, err := h.Mentors.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list mentors failed"})
	}
	out := make([]mentorView, 0, len(mentors))
	for i := range mentors {
		out = append(out, viewMentor(&mentors[i]))
	}
	return c.JSON(http.StatusOK, echo.Map{"mentors": out})
}

type approveReq struct {
	IsApproved *bool `json:"is_approved"`
}

// SetMentorApproval approves or revokes a mentor's directory listing.
func (h *AdminHandler) SetMentorApproval(c echo.Context) error {
	mentorID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid mentor id"})
	}
	var req approveReq
	if err := c.Bind(&req); err != nil || req.IsApproved == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "is_approved is required"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Mentors.SetApproved(ctx, mentorID, *req.IsApproved); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "mentor not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update mentor failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"user_id": mentorID, "is_approved": *req.IsApproved})
}

type accountView struct {
	ID        uint64 `json:"id"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	IsActive  bool   `json:"is_active"`
	CreatedAt string `json:"created_at"`
}

// ListMentees returns every mentee account.
func (h *AdminHandler) ListMentees(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	users, err := h.Users.ListByRole(ctx, model.RoleMentee)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list mentees failed"})
	}
	out := make([]accountView, 0, len(users))
	for _, u := range users {
		out = append(out, accountView{
			ID:        u.ID,
			Email:     u.Email,
			Role:      u.Role,
			IsActive:  u.IsActive,
			CreatedAt: u.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"mentees": out})
}

type activeReq struct {
	IsActive *bool `json:"is_active"`
}

// SetUserActive enables or disables an account.  Disabled accounts fail
// login and token refresh.
func (h *AdminHandler) SetUserActive(c echo.Context) error {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}
	var req activeReq
	if err := c.Bind(&req); err != nil || req.IsActive == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "is_active is required"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Users.SetActive(ctx, userID, *req.IsActive); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update user failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"user_id": userID, "is_active": *req.IsActive})
}
