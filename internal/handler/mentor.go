package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/r33j4n/mentorhub-genesis-project-sub001/internal/repository"
)

// MentorHandler lets a mentor manage their own profile.
type MentorHandler struct {
	Mentors *repository.MentorRepo
}

func NewMentorHandler(m *repository.MentorRepo) *MentorHandler {
	return &MentorHandler{Mentors: m}
}

type updateProfileReq struct {
	DisplayName     *string `json:"display_name"`
	Headline        *string `json:"headline"`
	Bio             *string `json:"bio"`
	Expertise       *string `json:"expertise"`
	HourlyRateCents *uint32 `json:"hourly_rate_cents"`
	Timezone        *string `json:"timezone"`
}

// UpdateProfile applies the submitted fields to the caller's profile.
// Omitted fields keep their stored value.  Approval status cannot be
// touched here; only admins change it.
func (h *MentorHandler) UpdateProfile(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req updateProfileReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	p, err := h.Mentors.GetByUserID(ctx, userID)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "mentor profile not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "lookup failed"})
	}

	if req.DisplayName != nil {
		name := strings.TrimSpace(*req.DisplayName)
		if name == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "display_name cannot be empty"})
		}
		p.DisplayName = name
	}
	if req.Headline != nil {
		p.Headline = *req.Headline
	}
	if req.Bio != nil {
		p.Bio = *req.Bio
	}
	if req.Expertise != nil {
		p.Expertise = *req.Expertise
	}
	if req.HourlyRateCents != nil {
		p.HourlyRateCents = *req.HourlyRateCents
	}
	if req.Timezone != nil && *req.Timezone != "" {
		p.Timezone = *req.Timezone
	}

	if err := h.Mentors.UpdateProfile(ctx, p); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update profile failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"mentor": viewMentor(p)})
}
