package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/r33j4n/mentorhub-genesis-project-sub001/internal/booking"
	"github.com/r33j4n/mentorhub-genesis-project-sub001/internal/logger"
	"github.com/r33j4n/mentorhub-genesis-project-sub001/internal/model"
	"github.com/r33j4n/mentorhub-genesis-project-sub001/internal/queue"
	"github.com/r33j4n/mentorhub-genesis-project-sub001/internal/repository"
	"github.com/r33j4n/mentorhub-genesis-project-sub001/internal/session"
	queue_publisher "github.com/r33j4n/mentorhub-genesis-project-sub001/internal/service"
)

// SessionHandler covers booking and the session lifecycle endpoints.
type SessionHandler struct {
	Sessions *repository.SessionRepo
	Mentors  *repository.MentorRepo
}

func NewSessionHandler(s *repository.SessionRepo, m *repository.MentorRepo) *SessionHandler {
	return &SessionHandler{Sessions: s, Mentors: m}
}

type bookReq struct {
	MentorID        uint64 `json:"mentor_id"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	SessionType     string `json:"session_type"`
	Date            string `json:"date"` // "YYYY-MM-DD"
	Time            string `json:"time"` // "HH:MM"
	DurationMinutes int    `json:"duration_minutes"`
}

func sessionEvent(s *model.Session, actorUserID uint64) queue.SessionEvent {
	return queue.SessionEvent{
		SessionID:       s.ID,
		Reference:       s.Reference,
		MentorID:        s.MentorID,
		MenteeID:        s.MenteeID,
		ActorUserID:     actorUserID,
		Title:           s.Title,
		Status:          s.Status,
		ScheduledStart:  s.ScheduledStart.UTC().Format(time.RFC3339),
		ScheduledEnd:    s.ScheduledEnd.UTC().Format(time.RFC3339),
		FinalPriceCents: s.FinalPriceCents,
		CommissionRate:  s.CommissionRate,
		OccurredAt:      time.Now().UTC().Format(time.RFC3339),
	}
}

// publishEvent pushes a lifecycle event to the broker.  Publishing is
// best effort: the database write already happened and is never rolled
// back over a broker problem.
func publishEvent(ctx context.Context, s *model.Session, actorUserID uint64) {
	if err := queue_publisher.PublishSessionEvent(ctx, sessionEvent(s, actorUserID)); err != nil {
		zap.L().Warn("publish session event failed",
			zap.Uint64(logger.FieldSessionID, s.ID),
			zap.Uint64(logger.FieldUserID, actorUserID),
			zap.Error(err))
	}
}

// Book creates a session request against a mentor.  The request is
// validated and priced before touching the database; the overlap check
// runs inside the insert transaction, so a taken window comes back as a
// 409 even under concurrent requests.
func (h *SessionHandler) Book(c echo.Context) error {
	menteeID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req bookReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.MentorID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "mentor_id is required"})
	}
	if req.MentorID == menteeID {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cannot book a session with yourself"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	mentor, err := h.Mentors.GetByUserID(ctx, req.MentorID)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "mentor not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "lookup failed"})
	}
	if !mentor.IsApproved {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "mentor not found"})
	}

	quote, err := booking.NewQuote(booking.Request{
		Title:           req.Title,
		Description:     req.Description,
		SessionType:     req.SessionType,
		Date:            req.Date,
		Time:            req.Time,
		DurationMinutes: req.DurationMinutes,
	}, mentor.HourlyRateCents, time.Now().UTC())
	if err != nil {
		if errors.Is(err, booking.ErrValidation) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "quote failed"})
	}

	s := &model.Session{
		Reference:        uuid.NewString(),
		MentorID:         req.MentorID,
		MenteeID:         menteeID,
		Title:            req.Title,
		Description:      req.Description,
		SessionType:      req.SessionType,
		ScheduledStart:   quote.ScheduledStart,
		ScheduledEnd:     quote.ScheduledEnd,
		DurationMinutes:  quote.DurationMinutes,
		BasePriceCents:   quote.BasePriceCents,
		FinalPriceCents:  quote.FinalPriceCents,
		CommissionRate:   quote.CommissionRate,
		PlatformFeeCents: quote.PlatformFeeCents,
	}
	if err := h.Sessions.CreateRequested(ctx, s); err != nil {
		if err == repository.ErrConflict {
			return c.JSON(http.StatusConflict, echo.Map{"error": "mentor already booked for that window"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create session failed"})
	}

	publishEvent(ctx, s, menteeID)
	return c.JSON(http.StatusCreated, echo.Map{"session": viewSession(s)})
}

// MySessions lists the caller's sessions in either role, optionally
// filtered by status.
func (h *SessionHandler) MySessions(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	status := c.QueryParam("status")
	if status != "" && !session.IsKnownStatus(status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown status"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	list, err := h.Sessions.ListForUser(ctx, userID, status)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list sessions failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"sessions": viewSessions(list)})
}

// Detail returns one session to a party on it.
func (h *SessionHandler) Detail(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid session id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	s, err := h.Sessions.GetForParty(ctx, id, userID)
	if err != nil {
		switch err {
		case repository.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "session not found"})
		case repository.ErrForbidden:
			return c.JSON(http.StatusForbidden, echo.Map{"error": "not a party to this session"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "lookup failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"session": viewSession(s)})
}

// Confirm moves a requested session to confirmed.  Mentor only.
func (h *SessionHandler) Confirm(c echo.Context) error {
	return h.transition(c, session.StatusConfirmed)
}

// Decline moves a requested session to declined.  Mentor only.
func (h *SessionHandler) Decline(c echo.Context) error {
	return h.transition(c, session.StatusDeclined)
}

// Cancel moves an active session to cancelled.  Either party.
func (h *SessionHandler) Cancel(c echo.Context) error {
	return h.transition(c, session.StatusCancelled)
}

func (h *SessionHandler) transition(c echo.Context, to string) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid session id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	s, err := h.Sessions.Transition(ctx, id, userID, to)
	if err != nil {
		switch err {
		case repository.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "session not found"})
		case repository.ErrForbidden:
			return c.JSON(http.StatusForbidden, echo.Map{"error": "not a party to this session"})
		case repository.ErrInvalidTransition:
			return c.JSON(http.StatusConflict, echo.Map{"error": "transition not allowed from current status"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "transition failed"})
	}

	publishEvent(ctx, s, userID)
	return c.JSON(http.StatusOK, echo.Map{"session": viewSession(s)})
}
