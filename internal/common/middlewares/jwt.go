package middlewares

import (
	"net/http"
	"strings"

	"github.com/c14220110/poliklinik-lab/internal/common/response"
	"github.com/c14220110/poliklinik-lab/pkg/utils"
	"github.com/labstack/echo/v4"
)

// ContextKeyClaims adalah key echo.Context untuk *utils.Claims hasil validasi token.
const ContextKeyClaims = "claims"

// JWTMiddleware memvalidasi header "Authorization: Bearer <token>". Token diterbitkan
// oleh layanan auth klinik; di sini hanya diverifikasi.
func JWTMiddleware(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return response.JSON(c, http.StatusUnauthorized, "Authorization header missing", nil)
			}
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				return response.JSON(c, http.StatusUnauthorized, "Invalid authorization header", nil)
			}

			claims, err := utils.ValidateJWTToken(secret, parts[1])
			if err != nil {
				return response.JSON(c, http.StatusUnauthorized, "Invalid token: "+err.Error(), nil)
			}

			c.Set(ContextKeyClaims, claims)
			return next(c)
		}
	}
}

// ClaimsFrom mengambil klaim yang disimpan JWTMiddleware.
func ClaimsFrom(c echo.Context) (*utils.Claims, bool) {
	claims, ok := c.Get(ContextKeyClaims).(*utils.Claims)
	return claims, ok
}
