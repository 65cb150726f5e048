package middlewares

import (
	"net/http"
	"strings"

	"github.com/c14220110/poliklinik-lab/internal/common/response"
	"github.com/labstack/echo/v4"
)

// RequireRole memeriksa apakah role pada klaim JWT termasuk salah satu role yang diizinkan.
// Dipasang setelah JWTMiddleware.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := ClaimsFrom(c)
			if !ok {
				return response.JSON(c, http.StatusUnauthorized, "Missing or invalid JWT claims", nil)
			}
			for _, r := range roles {
				if strings.EqualFold(claims.Role, r) {
					return next(c)
				}
			}
			return response.JSON(c, http.StatusForbidden, "Anda tidak memiliki hak akses", nil)
		}
	}
}
