package routes

import (
	"github.com/c14220110/poliklinik-lab/internal/administrasi/controllers"
	"github.com/labstack/echo/v4"
)

// RegisterLabOrderRoutes mendaftarkan endpoint form invoice lab order pada grup api.
func RegisterLabOrderRoutes(api *echo.Group, bc *controllers.BillingController, mw ...echo.MiddlewareFunc) {
	labOrders := api.Group("/lab-orders", mw...)

	labOrders.GET("/invoices", bc.ListInvoices)
	labOrders.GET("/invoices/:id/pdf", bc.InvoicePDF)

	sessions := labOrders.Group("/sessions")
	sessions.POST("", bc.StartSession)
	sessions.GET("/:id", bc.GetSession)
	sessions.DELETE("/:id", bc.CloseSession)
	sessions.PUT("/:id/view", bc.SetView)
	sessions.POST("/:id/search", bc.Search)
	sessions.PUT("/:id/patient-name", bc.SetPatientName)
	sessions.PUT("/:id/search-term", bc.SetSearchTerm)
	sessions.GET("/:id/tests", bc.AvailableTests)
	sessions.POST("/:id/tests", bc.AddTest)
	sessions.DELETE("/:id/tests", bc.RemoveTest)
	sessions.DELETE("/:id/tests/:name", bc.RemoveTest)
	sessions.POST("/:id/manual-order", bc.CreateManualOrder)
	sessions.PUT("/:id/discount", bc.SetDiscount)
	sessions.POST("/:id/save", bc.Save)
	sessions.POST("/:id/reset", bc.Reset)
}
