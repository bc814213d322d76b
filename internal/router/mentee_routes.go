package router

import (
	"github.com/labstack/echo/v4"

	"github.com/r33j4n/mentorhub-genesis-project-sub001/internal/handler"
	"github.com/r33j4n/mentorhub-genesis-project-sub001/internal/middleware"
	"github.com/r33j4n/mentorhub-genesis-project-sub001/internal/model"
)

// RegisterMentee registers MENTEE-scoped endpoints under /v1.  Booking
// is the only operation restricted to mentees; shared session views
// live in RegisterShared.
func RegisterMentee(e *echo.Echo, s *handler.SessionHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleMentee),
	)
	g.POST("/sessions", s.Book)
}

// RegisterShared registers endpoints open to both mentors and mentees:
// session views, cancellation, notifications and the dashboard.
func RegisterShared(e *echo.Echo, s *handler.SessionHandler, n *handler.NotificationHandler, d *handler.DashboardHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleMentor, model.RoleMentee),
	)

	// ---- Sessions ----
	g.GET("/my-sessions", s.MySessions)
	g.GET("/sessions/:id", s.Detail)
	g.POST("/sessions/:id/cancel", s.Cancel)

	// ---- Notifications ----
	g.GET("/notifications", n.List)
	g.PATCH("/notifications/:id/read", n.MarkRead)
	g.DELETE("/notifications/:id", n.Delete)

	// ---- Dashboard ----
	g.GET("/dashboard/stats", d.Stats)
}
