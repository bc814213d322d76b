package router

import (
	"github.com/labstack/echo/v4"

	"github.com/r33j4n/mentorhub-genesis-project-sub001/internal/handler"
	"github.com/r33j4n/mentorhub-genesis-project-sub001/internal/middleware"
	"github.com/r33j4n/mentorhub-genesis-project-sub001/internal/model"
)

// RegisterMentor registers MENTOR-scoped endpoints under /v1.  All
// routes require a valid JWT and the MENTOR role.  Mentors manage their
// profile and weekly availability, and act on session requests aimed at
// them.
func RegisterMentor(e *echo.Echo, m *handler.MentorHandler, av *handler.AvailabilityHandler, s *handler.SessionHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleMentor),
	)

	// ---- Profile ----
	g.PUT("/mentor/profile", m.UpdateProfile)
	g.PATCH("/mentor/profile", m.UpdateProfile)

	// ---- Availability ----
	// The full weekly rule set is replaced atomically in one call.
	g.PUT("/availability", av.Replace)
	g.GET("/availability", av.Mine)

	// ---- Session lifecycle (mentor side) ----
	g.POST("/sessions/:id/confirm", s.Confirm)
	g.POST("/sessions/:id/decline", s.Decline)
}
