package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/c14220110/poliklinik-lab/pkg/utils"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("rahasia")

func newServer() *echo.Echo {
	e := echo.New()
	e.Use(RequestLogger())
	g := e.Group("/api", JWTMiddleware(testSecret))
	g.GET("/me", func(c echo.Context) error {
		claims, _ := ClaimsFrom(c)
		return c.String(http.StatusOK, claims.Username)
	})
	g.PUT("/settings", func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	}, RequireRole("Administrasi"))
	return e
}

func token(t *testing.T, role string, exp time.Time) string {
	t.Helper()
	tok, err := utils.GenerateJWTToken(testSecret, "K001", role, "rina", exp)
	require.NoError(t, err)
	return tok
}

func TestJWTMiddleware(t *testing.T) {
	e := newServer()

	tests := []struct {
		name     string
		header   string
		wantCode int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc", http.StatusUnauthorized},
		{"expired", "Bearer " + token(t, "Lab", time.Now().Add(-time.Minute)), http.StatusUnauthorized},
		{"valid", "Bearer " + token(t, "Lab", time.Now().Add(time.Hour)), http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
			if tt.header != "" {
				req.Header.Set(echo.HeaderAuthorization, tt.header)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			if tt.wantCode == http.StatusOK {
				assert.Equal(t, "rina", rec.Body.String())
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	e := newServer()

	for role, want := range map[string]int{
		"administrasi": http.StatusNoContent,
		"Dokter":       http.StatusForbidden,
	} {
		req := httptest.NewRequest(http.MethodPut, "/api/settings", nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token(t, role, time.Now().Add(time.Hour)))
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		assert.Equal(t, want, rec.Code, role)
	}
}
