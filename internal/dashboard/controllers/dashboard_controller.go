package controllers

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mgarciapsic/clinica-backend/internal/common/httpres"
	"github.com/mgarciapsic/clinica-backend/internal/dashboard/services"
)

type DashboardController struct {
	Service *services.DashboardService
}

func NewDashboardController(svc *services.DashboardService) *DashboardController {
	return &DashboardController{Service: svc}
}

// GetKPIs handles GET /api/dashboard/kpis
func (dc *DashboardController) GetKPIs(c echo.Context) error {
	data, err := dc.Service.GetDashboardData(time.Now())
	if err != nil {
		return httpres.Error(c, err)
	}
	return httpres.OK(c, data)
}
