package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/r33j4n/mentorhub-genesis-project-sub001/internal/model"
	"github.com/r33j4n/mentorhub-genesis-project-sub001/internal/utils"
)

const testSecret = "test-secret"

func protectedApp(roles ...string) *echo.Echo {
	e := echo.New()
	g := e.Group("/v1", JWTAuth(testSecret), RequireRole(roles...))
	g.GET("/admin/stats", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"ok": true})
	})
	return e
}

func do(e *echo.Echo, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/v1/admin/stats", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestJWTAuthMissingToken(t *testing.T) {
	rec := do(protectedApp(model.RoleAdmin), "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestJWTAuthGarbageToken(t *testing.T) {
	rec := do(protectedApp(model.RoleAdmin), "not-a-jwt")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestRequireRoleRejectsNonAdmin(t *testing.T) {
	tok, err := utils.NewAccessToken(testSecret, 7, model.RoleMentee, 5)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	rec := do(protectedApp(model.RoleAdmin), tok.Token)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
}

func TestRequireRoleAllowsAdmin(t *testing.T) {
	tok, err := utils.NewAccessToken(testSecret, 7, model.RoleAdmin, 5)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	rec := do(protectedApp(model.RoleAdmin), tok.Token)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestJWTAuthWrongSecret(t *testing.T) {
	tok, err := utils.NewAccessToken("other-secret", 7, model.RoleAdmin, 5)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	rec := do(protectedApp(model.RoleAdmin), tok.Token)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}
