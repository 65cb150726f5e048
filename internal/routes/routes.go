package routes

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	adminControllers "github.com/c14220110/poliklinik-lab/internal/administrasi/controllers"
	adminRoutes "github.com/c14220110/poliklinik-lab/internal/administrasi/routes"
	adminServices "github.com/c14220110/poliklinik-lab/internal/administrasi/services"
	"github.com/c14220110/poliklinik-lab/internal/common/middlewares"
	"github.com/c14220110/poliklinik-lab/internal/common/response"
	dokterControllers "github.com/c14220110/poliklinik-lab/internal/dokter/controllers"
	dokterRoutes "github.com/c14220110/poliklinik-lab/internal/dokter/routes"
	dokterServices "github.com/c14220110/poliklinik-lab/internal/dokter/services"
	"github.com/c14220110/poliklinik-lab/ws"
)

// Role staf yang boleh mengubah pengaturan lab.
var settingsRoles = []string{"Administrasi", "Manajemen"}

type Deps struct {
	JWTSecret []byte
	Billing   *adminServices.BillingService
	Settings  *adminServices.SettingsService
	Pasien    *adminServices.PasienService
	Resep     *dokterServices.ResepService
	Hub       *ws.Hub
	// Health dipanggil oleh GET /health; nil berarti selalu sehat.
	Health func(ctx context.Context) error
}

// Init menginisialisasi semua routes menggunakan Echo framework
func Init(e *echo.Echo, d Deps) {
	billingController := adminControllers.NewBillingController(d.Billing)
	settingsController := adminControllers.NewSettingsController(d.Settings)
	pasienController := adminControllers.NewPasienController(d.Pasien)
	resepController := dokterControllers.NewResepController(d.Resep)

	e.GET("/health", func(c echo.Context) error {
		if d.Health != nil {
			if err := d.Health(c.Request().Context()); err != nil {
				return response.JSON(c, http.StatusServiceUnavailable, "Unhealthy: "+err.Error(), nil)
			}
		}
		return response.OK(c, "OK", nil)
	})
	e.GET("/ws", ws.ServeWS(d.Hub)) // Tidak pakai JWT

	// Grup API utama
	api := e.Group("/api", middlewares.JWTMiddleware(d.JWTSecret))

	adminRoutes.RegisterLabOrderRoutes(api, billingController)
	adminRoutes.RegisterSettingsRoutes(api, settingsController, middlewares.RequireRole(settingsRoles...))
	adminRoutes.RegisterPasienRoutes(api, pasienController)
	dokterRoutes.RegisterResepRoutes(api, resepController)
}
