package controllers

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/c14220110/poliklinik-lab/internal/administrasi/models"
	"github.com/c14220110/poliklinik-lab/internal/administrasi/services"
	"github.com/c14220110/poliklinik-lab/internal/common/response"
	"github.com/labstack/echo/v4"
)

// BillingController menangani form invoice lab order.
type BillingController struct {
	Service *services.BillingService
}

func NewBillingController(service *services.BillingService) *BillingController {
	return &BillingController{Service: service}
}

// StartSession membuka form invoice baru.
func (bc *BillingController) StartSession(c echo.Context) error {
	view, err := bc.Service.StartSession(c.Request().Context())
	if err != nil {
		return response.Error(c, err, "Failed to start lab order session")
	}
	return response.JSON(c, http.StatusCreated, "Lab order session started", view)
}

func (bc *BillingController) GetSession(c echo.Context) error {
	view, err := bc.Service.GetSession(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err, "Failed to retrieve lab order session")
	}
	return response.OK(c, "Lab order session retrieved successfully", view)
}

func (bc *BillingController) CloseSession(c echo.Context) error {
	if err := bc.Service.CloseSession(c.Request().Context(), c.Param("id")); err != nil {
		return response.Error(c, err, "Failed to close lab order session")
	}
	return response.OK(c, "Lab order session closed", nil)
}

func (bc *BillingController) SetView(c echo.Context) error {
	var req models.SetViewRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, "Invalid request payload")
	}
	return bc.respond(c, "View updated")(bc.Service.SetView(c.Request().Context(), c.Param("id"), req.View))
}

// Search mencari resep dengan tes lab berdasarkan prescription_id.
func (bc *BillingController) Search(c echo.Context) error {
	var req models.SearchRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, "Invalid request payload")
	}
	return bc.respond(c, "Prescription found")(bc.Service.Search(c.Request().Context(), c.Param("id"), req.PrescriptionID))
}

func (bc *BillingController) SetPatientName(c echo.Context) error {
	var req models.PatientNameRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, "Invalid request payload")
	}
	return bc.respond(c, "Patient name updated")(bc.Service.SetPatientName(c.Request().Context(), c.Param("id"), req.PatientName))
}

func (bc *BillingController) SetSearchTerm(c echo.Context) error {
	var req models.SearchTermRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, "Invalid request payload")
	}
	return bc.respond(c, "Search term updated")(bc.Service.SetSearchTerm(c.Request().Context(), c.Param("id"), req.SearchTerm))
}

// AvailableTests mengembalikan tes katalog yang cocok dengan search term dan belum dipilih.
func (bc *BillingController) AvailableTests(c echo.Context) error {
	tests, err := bc.Service.AvailableTests(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err, "Failed to retrieve diagnostic tests")
	}
	return response.OK(c, "Diagnostic tests retrieved successfully", tests)
}

func (bc *BillingController) AddTest(c echo.Context) error {
	var req models.AddTestRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, "Invalid request payload")
	}
	return bc.respond(c, "Test added")(bc.Service.AddTest(c.Request().Context(), c.Param("id"), req.TestName))
}

// RemoveTest menghapus tes dari pilihan. Nama dibaca dari query ?name= bila ada
// (untuk nama yang mengandung "/"), selain itu dari path.
func (bc *BillingController) RemoveTest(c echo.Context) error {
	name, err := testNameParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid test name")
	}
	return bc.respond(c, "Test removed")(bc.Service.RemoveTest(c.Request().Context(), c.Param("id"), name))
}

// Echo memakai RawPath saat encoding client berbeda dari default Go, dan
// parameternya masih ter-encode.
func testNameParam(c echo.Context) (string, error) {
	if name := c.QueryParam("name"); name != "" {
		return name, nil
	}
	name := c.Param("name")
	if name == "" {
		return "", errors.New("test name is empty")
	}
	if c.Request().URL.RawPath == "" {
		return name, nil
	}
	return url.PathUnescape(name)
}

func (bc *BillingController) CreateManualOrder(c echo.Context) error {
	return bc.respond(c, "Manual lab order created")(bc.Service.CreateManualOrder(c.Request().Context(), c.Param("id")))
}

func (bc *BillingController) SetDiscount(c echo.Context) error {
	var req models.DiscountRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, "Invalid request payload")
	}
	return bc.respond(c, "Discount updated")(bc.Service.SetDiscount(c.Request().Context(), c.Param("id"), req.Discount))
}

// Save menyimpan invoice dan mengembalikan form ke state awal.
func (bc *BillingController) Save(c echo.Context) error {
	result, err := bc.Service.Save(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err, "Failed to save invoice")
	}
	return response.JSON(c, http.StatusCreated, "Invoice saved successfully", result)
}

func (bc *BillingController) Reset(c echo.Context) error {
	return bc.respond(c, "Form reset")(bc.Service.Reset(c.Request().Context(), c.Param("id")))
}

// ListInvoices mengembalikan invoice tersimpan, terbaru lebih dulu.
func (bc *BillingController) ListInvoices(c echo.Context) error {
	list, err := bc.Service.ListInvoices(c.Request().Context())
	if err != nil {
		return response.Error(c, err, "Failed to retrieve invoices")
	}
	return response.OK(c, "Invoices retrieved successfully", list)
}

func (bc *BillingController) InvoicePDF(c echo.Context) error {
	id := c.Param("id")
	pdf, err := bc.Service.RenderInvoicePDF(c.Request().Context(), id)
	if err != nil {
		return response.Error(c, err, "Failed to render invoice")
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `inline; filename="`+id+`.pdf"`)
	return c.Blob(http.StatusOK, "application/pdf", pdf)
}

func (bc *BillingController) respond(c echo.Context, message string) func(models.LabOrderView, error) error {
	return func(view models.LabOrderView, err error) error {
		if err != nil {
			return response.Error(c, err, "Failed to update lab order")
		}
		return response.OK(c, message, view)
	}
}
