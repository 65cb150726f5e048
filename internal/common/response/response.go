// Package response membentuk envelope JSON standar
// { "status": HTTP_CODE, "message": "Feedback", "data": ... }.
package response

import (
	"errors"
	"net/http"

	"github.com/c14220110/poliklinik-lab/pkg/apperrors"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

func JSON(c echo.Context, code int, message string, data interface{}) error {
	return c.JSON(code, map[string]interface{}{
		"status":  code,
		"message": message,
		"data":    data,
	})
}

func OK(c echo.Context, message string, data interface{}) error {
	return JSON(c, http.StatusOK, message, data)
}

func BadRequest(c echo.Context, message string) error {
	return JSON(c, http.StatusBadRequest, message, nil)
}

// Error memetakan AppError ke status HTTP. Error validasi dan not-found memakai
// pesan aslinya, sisanya diawali fallback.
func Error(c echo.Context, err error, fallback string) error {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		switch appErr.Type {
		case apperrors.ErrorTypeValidation:
			return JSON(c, http.StatusBadRequest, appErr.Message, nil)
		case apperrors.ErrorTypeNotFound:
			return JSON(c, http.StatusNotFound, appErr.Message, nil)
		}
	}

	log.Error().Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg(fallback)
	return JSON(c, http.StatusInternalServerError, fallback+": "+err.Error(), nil)
}
