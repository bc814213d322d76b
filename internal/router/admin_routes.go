package router

import (
	"github.com/labstack/echo/v4"

	"github.com/r33j4n/mentorhub-genesis-project-sub001/internal/handler"
	"github.com/r33j4n/mentorhub-genesis-project-sub001/internal/middleware"
	"github.com/r33j4n/mentorhub-genesis-project-sub001/internal/model"
)

// RegisterAdmin registers ADMIN-scoped endpoints under /v1/admin.  All
// routes require a valid JWT and the ADMIN role.
func RegisterAdmin(e *echo.Echo, a *handler.AdminHandler, jwtSecret string) {
	g := e.Group(
		"/v1/admin",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleAdmin),
	)

	g.GET("/stats", a.Stats)

	// ---- Mentor management ----
	g.GET("/mentors", a.ListMentors)
	g.PATCH("/mentors/:id", a.SetMentorApproval)
	g.PATCH("/mentors", a.MissingID)

	// ---- Mentee management ----
	g.GET("/mentees", a.ListMentees)
	g.PATCH("/mentees/:id", a.SetUserActive)
	g.PATCH("/mentees", a.MissingID)
}
