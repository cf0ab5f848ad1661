package controllers

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/mgarciapsic/clinica-backend/internal/clinics/models"
	"github.com/mgarciapsic/clinica-backend/internal/clinics/services"
	"github.com/mgarciapsic/clinica-backend/internal/common/httpres"
)

type ClinicController struct {
	Service *services.ClinicService
}

func NewClinicController(svc *services.ClinicService) *ClinicController {
	return &ClinicController{Service: svc}
}

// ListClinics handles GET /api/clinics
func (cc *ClinicController) ListClinics(c echo.Context) error {
	clinics, err := cc.Service.ListClinics()
	if err != nil {
		return httpres.Error(c, err)
	}
	return httpres.OK(c, clinics)
}

// GetClinic handles GET /api/clinics/:id
func (cc *ClinicController) GetClinic(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return httpres.Error(c, httpres.NewValidationError("id", "id must be a number"))
	}
	clinic, err := cc.Service.GetClinic(id)
	if err != nil {
		return httpres.Error(c, err)
	}
	return httpres.OK(c, clinic)
}

// CreateClinic handles POST /api/clinics
func (cc *ClinicController) CreateClinic(c echo.Context) error {
	var req models.Clinic
	if err := c.Bind(&req); err != nil {
		return httpres.Error(c, httpres.NewValidationError("", "invalid request payload"))
	}
	id, err := cc.Service.CreateClinic(req)
	if err != nil {
		return httpres.Error(c, err)
	}
	req.ID = int(id)
	return httpres.Created(c, req)
}

// UpdateClinic handles PUT /api/clinics/:id
func (cc *ClinicController) UpdateClinic(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return httpres.Error(c, httpres.NewValidationError("id", "id must be a number"))
	}
	var payload map[string]interface{}
	if err := c.Bind(&payload); err != nil {
		return httpres.Error(c, httpres.NewValidationError("", "invalid request payload"))
	}
	if err := cc.Service.UpdateClinic(id, payload); err != nil {
		return httpres.Error(c, err)
	}
	clinic, err := cc.Service.GetClinic(id)
	if err != nil {
		return httpres.Error(c, err)
	}
	return httpres.OK(c, clinic)
}
