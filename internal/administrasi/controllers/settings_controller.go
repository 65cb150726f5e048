package controllers

import (
	"github.com/c14220110/poliklinik-lab/internal/administrasi/services"
	cm "github.com/c14220110/poliklinik-lab/internal/common/models"
	"github.com/c14220110/poliklinik-lab/internal/common/response"
	"github.com/labstack/echo/v4"
)

type SettingsController struct {
	Service *services.SettingsService
}

func NewSettingsController(service *services.SettingsService) *SettingsController {
	return &SettingsController{Service: service}
}

// GET /api/diagnostic-tests
func (sc *SettingsController) ListDiagnosticTests(c echo.Context) error {
	tests, err := sc.Service.Tests(c.Request().Context())
	if err != nil {
		return response.Error(c, err, "Failed to retrieve diagnostic tests")
	}
	return response.OK(c, "Diagnostic tests retrieved successfully", tests)
}

// GET /api/settings
func (sc *SettingsController) GetSettings(c echo.Context) error {
	settings, err := sc.Service.Settings(c.Request().Context())
	if err != nil {
		return response.Error(c, err, "Failed to retrieve settings")
	}
	return response.OK(c, "Settings retrieved successfully", settings)
}

// PUT /api/settings
func (sc *SettingsController) UpdateSettings(c echo.Context) error {
	var req cm.GlobalSettings
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, "Invalid request payload")
	}
	settings, err := sc.Service.UpdateSettings(c.Request().Context(), req)
	if err != nil {
		return response.Error(c, err, "Failed to update settings")
	}
	return response.OK(c, "Settings updated successfully", settings)
}
