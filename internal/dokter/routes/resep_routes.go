package routes

import (
	"github.com/c14220110/poliklinik-lab/internal/dokter/controllers"
	"github.com/labstack/echo/v4"
)

// RegisterResepRoutes mendaftarkan endpoint form resep dan template diagnosa.
func RegisterResepRoutes(api *echo.Group, rc *controllers.ResepController, mw ...echo.MiddlewareFunc) {
	api.GET("/diagnosis-templates", rc.ListTemplates, mw...)
	api.GET("/diagnosis-templates/:id", rc.GetTemplate, mw...)

	sessions := api.Group("/prescriptions/sessions", mw...)
	sessions.POST("", rc.StartSession)
	sessions.GET("/:id", rc.GetSession)
	sessions.DELETE("/:id", rc.CloseSession)
	sessions.PUT("/:id/patient", rc.SetPatient)
	sessions.PUT("/:id/vital-signs", rc.UpdateVitalSigns)
	sessions.PUT("/:id/symptoms", rc.UpdateSymptoms)
	sessions.PUT("/:id/diagnoses", rc.UpdateDiagnoses)
	sessions.PUT("/:id/medications", rc.UpdateMedications)
	sessions.PUT("/:id/lab-tests", rc.UpdateLabTests)
	sessions.POST("/:id/template", rc.ApplyTemplate)
	sessions.POST("/:id/submit", rc.Submit)
}
