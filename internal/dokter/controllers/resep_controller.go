package controllers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/c14220110/poliklinik-lab/internal/common/middlewares"
	cm "github.com/c14220110/poliklinik-lab/internal/common/models"
	"github.com/c14220110/poliklinik-lab/internal/common/response"
	"github.com/c14220110/poliklinik-lab/internal/dokter/models"
	"github.com/c14220110/poliklinik-lab/internal/dokter/services"
)

type ResepController struct{ Service *services.ResepService }

func NewResepController(s *services.ResepService) *ResepController {
	return &ResepController{Service: s}
}

// POST /api/prescriptions/sessions
func (rc *ResepController) StartSession(c echo.Context) error {
	var req models.StartComposerRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, "Invalid request payload: "+err.Error())
	}
	view, err := rc.Service.StartSession(c.Request().Context(), req)
	if err != nil {
		return response.Error(c, err, "Failed to start prescription session")
	}
	return response.JSON(c, http.StatusCreated, "Prescription session started", view)
}

func (rc *ResepController) GetSession(c echo.Context) error {
	view, err := rc.Service.GetSession(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err, "Failed to retrieve prescription session")
	}
	return response.OK(c, "Prescription session retrieved successfully", view)
}

func (rc *ResepController) CloseSession(c echo.Context) error {
	if err := rc.Service.CloseSession(c.Request().Context(), c.Param("id")); err != nil {
		return response.Error(c, err, "Failed to close prescription session")
	}
	return response.OK(c, "Prescription session closed", nil)
}

// PUT /api/prescriptions/sessions/:id/patient
func (rc *ResepController) SetPatient(c echo.Context) error {
	var req cm.Patient
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, "Invalid request payload: "+err.Error())
	}
	return rc.respond(c, "Patient updated")(rc.Service.SetPatient(c.Request().Context(), c.Param("id"), req))
}

func (rc *ResepController) UpdateVitalSigns(c echo.Context) error {
	var req cm.VitalSigns
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, "Invalid request payload: "+err.Error())
	}
	return rc.respond(c, "Vital signs updated")(rc.Service.UpdateVitalSigns(c.Request().Context(), c.Param("id"), req))
}

func (rc *ResepController) UpdateSymptoms(c echo.Context) error {
	var req models.SymptomsRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, "Invalid request payload: "+err.Error())
	}
	return rc.respond(c, "Symptoms updated")(rc.Service.UpdateSymptoms(c.Request().Context(), c.Param("id"), req.Symptoms))
}

func (rc *ResepController) UpdateDiagnoses(c echo.Context) error {
	var req models.DiagnosesRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, "Invalid request payload: "+err.Error())
	}
	return rc.respond(c, "Diagnoses updated")(rc.Service.UpdateDiagnoses(c.Request().Context(), c.Param("id"), req.Diagnoses))
}

func (rc *ResepController) UpdateMedications(c echo.Context) error {
	var req models.MedicationsRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, "Invalid request payload: "+err.Error())
	}
	return rc.respond(c, "Medications updated")(rc.Service.UpdateMedications(c.Request().Context(), c.Param("id"), req.Medications))
}

func (rc *ResepController) UpdateLabTests(c echo.Context) error {
	var req models.LabTestsRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, "Invalid request payload: "+err.Error())
	}
	return rc.respond(c, "Lab tests updated")(rc.Service.UpdateLabTests(c.Request().Context(), c.Param("id"), req.LabTests))
}

// POST /api/prescriptions/sessions/:id/template
func (rc *ResepController) ApplyTemplate(c echo.Context) error {
	var req models.TemplateRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, "Invalid request payload: "+err.Error())
	}
	return rc.respond(c, "Template applied")(rc.Service.ApplyTemplate(c.Request().Context(), c.Param("id"), req.TemplateID))
}

// POST /api/prescriptions/sessions/:id/submit
func (rc *ResepController) Submit(c echo.Context) error {
	result, err := rc.Service.Submit(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err, "Failed to submit prescription")
	}

	if claims, ok := middlewares.ClaimsFrom(c); ok {
		log.Info().
			Str("prescription_id", result.PrescriptionID).
			Str("id_karyawan", claims.IDKaryawan).
			Msg("prescription submitted by staff")
	}
	return response.JSON(c, http.StatusCreated, "Prescription submitted successfully", result)
}

// GET /api/diagnosis-templates
func (rc *ResepController) ListTemplates(c echo.Context) error {
	list, err := rc.Service.Templates(c.Request().Context())
	if err != nil {
		return response.Error(c, err, "Failed to retrieve diagnosis templates")
	}
	return response.OK(c, "Diagnosis templates retrieved successfully", list)
}

// GET /api/diagnosis-templates/:id
func (rc *ResepController) GetTemplate(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, services.MsgTemplateInvalid)
	}
	tmpl, err := rc.Service.Template(c.Request().Context(), id)
	if err != nil {
		return response.Error(c, err, "Failed to retrieve diagnosis template")
	}
	return response.OK(c, "Diagnosis template retrieved successfully", tmpl)
}

func (rc *ResepController) respond(c echo.Context, message string) func(models.ComposerView, error) error {
	return func(view models.ComposerView, err error) error {
		if err != nil {
			return response.Error(c, err, "Failed to update prescription")
		}
		return response.OK(c, message, view)
	}
}
