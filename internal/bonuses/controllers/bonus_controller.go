package controllers

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/mgarciapsic/clinica-backend/internal/bonuses/models"
	"github.com/mgarciapsic/clinica-backend/internal/bonuses/services"
	"github.com/mgarciapsic/clinica-backend/internal/common/httpres"
)

type BonusController struct {
	Service *services.BonusService
}

func NewBonusController(svc *services.BonusService) *BonusController {
	return &BonusController{Service: svc}
}

// ListBonuses handles GET /api/bonuses
func (bc *BonusController) ListBonuses(c echo.Context) error {
	params := map[string]string{}
	for k, vs := range c.QueryParams() {
		if len(vs) > 0 {
			params[k] = vs[0]
		}
	}
	bonuses, pagination, err := bc.Service.ListBonuses(params)
	if err != nil {
		return httpres.Error(c, err)
	}
	return httpres.OK(c, echo.Map{
		"bonuses":    bonuses,
		"pagination": pagination,
	})
}

// CreateBonus handles POST /api/bonuses
func (bc *BonusController) CreateBonus(c echo.Context) error {
	var req models.BonusRequest
	if err := c.Bind(&req); err != nil {
		return httpres.Error(c, httpres.NewValidationError("", "invalid request payload"))
	}
	id, err := bc.Service.CreateBonus(req)
	if err != nil {
		return httpres.Error(c, err)
	}
	return httpres.Created(c, echo.Map{"id": id})
}

// UpdateBonus handles PUT /api/bonuses/:id
func (bc *BonusController) UpdateBonus(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return httpres.Error(c, httpres.NewValidationError("id", "id must be a number"))
	}
	var payload map[string]interface{}
	if err := c.Bind(&payload); err != nil {
		return httpres.Error(c, httpres.NewValidationError("", "invalid request payload"))
	}
	if err := bc.Service.UpdateBonus(id, payload); err != nil {
		return httpres.Error(c, err)
	}
	return httpres.OK(c, echo.Map{"updated": true})
}
