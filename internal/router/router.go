package router // router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/r33j4n/mentorhub-genesis-project-sub001/internal/handler"
)

// RegisterRoutes registers routes that do not require authentication on
// the provided Echo instance.  Currently it exposes only a health check
// used by load balancers to verify the service is up.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterPublic registers the unauthenticated mentor directory.  The
// optional cache middleware (Redis-backed, see middleware.NewRedisCache)
// is applied only here: directory reads are hot and safe to cache,
// everything behind authentication is not.
func RegisterPublic(e *echo.Echo, b *handler.BrowseHandler, cache echo.MiddlewareFunc) {
	g := e.Group("/v1")
	if cache != nil {
		g.Use(cache)
	}
	// Browse approved mentors, optionally filtered with ?expertise=.
	g.GET("/mentors", b.List)
	g.GET("/mentors/:id", b.Detail)
	// Open 30-minute slot starts for one date: ?date=YYYY-MM-DD.
	g.GET("/mentors/:id/slots", b.Slots)
}

// RegisterAuth registers registration, login and token management under
// /v1/auth, plus the authenticated /v1/me endpoint.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, authn echo.MiddlewareFunc) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	// Rotates the refresh token: the presented token is revoked.
	g.POST("/refresh", a.Refresh)
	g.POST("/logout", a.Logout)

	e.GET("/v1/me", a.Me, authn)
}
