package controllers

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/mgarciapsic/clinica-backend/internal/common/httpres"
	"github.com/mgarciapsic/clinica-backend/internal/patients/models"
	"github.com/mgarciapsic/clinica-backend/internal/patients/services"
)

type PatientController struct {
	Service *services.PatientService
}

func NewPatientController(svc *services.PatientService) *PatientController {
	return &PatientController{Service: svc}
}

// queryParams flattens the echo query values into the single-value bag the
// filter builder consumes.
func queryParams(c echo.Context) map[string]string {
	params := map[string]string{}
	for k, vs := range c.QueryParams() {
		if len(vs) > 0 {
			params[k] = vs[0]
		}
	}
	return params
}

// ListPatients handles GET /api/patients
func (pc *PatientController) ListPatients(c echo.Context) error {
	patients, pagination, err := pc.Service.ListPatients(queryParams(c))
	if err != nil {
		return httpres.Error(c, err)
	}
	return httpres.OK(c, echo.Map{
		"patients":   patients,
		"pagination": pagination,
	})
}

// GetPatient handles GET /api/patients/:id
func (pc *PatientController) GetPatient(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return httpres.Error(c, httpres.NewValidationError("id", "id must be a number"))
	}
	patient, err := pc.Service.GetPatient(id)
	if err != nil {
		return httpres.Error(c, err)
	}
	return httpres.OK(c, patient)
}

// CreatePatient handles POST /api/patients
func (pc *PatientController) CreatePatient(c echo.Context) error {
	var req models.PatientRequest
	if err := c.Bind(&req); err != nil {
		return httpres.Error(c, httpres.NewValidationError("", "invalid request payload"))
	}
	id, err := pc.Service.CreatePatient(req)
	if err != nil {
		return httpres.Error(c, err)
	}
	patient, err := pc.Service.GetPatient(int(id))
	if err != nil {
		return httpres.Error(c, err)
	}
	return httpres.Created(c, patient)
}

// UpdatePatient handles PUT /api/patients/:id
func (pc *PatientController) UpdatePatient(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return httpres.Error(c, httpres.NewValidationError("id", "id must be a number"))
	}
	var payload map[string]interface{}
	if err := c.Bind(&payload); err != nil {
		return httpres.Error(c, httpres.NewValidationError("", "invalid request payload"))
	}
	if err := pc.Service.UpdatePatient(id, payload); err != nil {
		return httpres.Error(c, err)
	}
	patient, err := pc.Service.GetPatient(id)
	if err != nil {
		return httpres.Error(c, err)
	}
	return httpres.OK(c, patient)
}

// DeletePatient handles DELETE /api/patients/:id (soft delete)
func (pc *PatientController) DeletePatient(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return httpres.Error(c, httpres.NewValidationError("id", "id must be a number"))
	}
	if err := pc.Service.DeletePatient(id); err != nil {
		return httpres.Error(c, err)
	}
	return httpres.OK(c, echo.Map{"deleted": true})
}
