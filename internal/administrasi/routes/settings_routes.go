package routes

import (
	"github.com/c14220110/poliklinik-lab/internal/administrasi/controllers"
	"github.com/labstack/echo/v4"
)

// RegisterSettingsRoutes mendaftarkan katalog tes dan pengaturan lab. updateMw hanya
// dipasang pada PUT /settings.
func RegisterSettingsRoutes(api *echo.Group, sc *controllers.SettingsController, updateMw ...echo.MiddlewareFunc) {
	api.GET("/diagnostic-tests", sc.ListDiagnosticTests)
	api.GET("/settings", sc.GetSettings)
	api.PUT("/settings", sc.UpdateSettings, updateMw...)
}

func RegisterPasienRoutes(api *echo.Group, pc *controllers.PasienController) {
	api.GET("/patients/:id", pc.GetPatient)
}
