package controllers

import (
	"github.com/c14220110/poliklinik-lab/internal/administrasi/services"
	"github.com/c14220110/poliklinik-lab/internal/common/response"
	"github.com/labstack/echo/v4"
)

type PasienController struct {
	Service *services.PasienService
}

func NewPasienController(service *services.PasienService) *PasienController {
	return &PasienController{Service: service}
}

// GET /api/patients/:id
func (pc *PasienController) GetPatient(c echo.Context) error {
	p, err := pc.Service.GetPatient(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err, "Failed to retrieve patient")
	}
	return response.OK(c, "Patient retrieved successfully", p)
}
