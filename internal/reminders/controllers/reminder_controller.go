package controllers

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mgarciapsic/clinica-backend/internal/common/httpres"
	"github.com/mgarciapsic/clinica-backend/internal/reminders/services"
)

type ReminderController struct {
	Service *services.ReminderService
}

func NewReminderController(svc *services.ReminderService) *ReminderController {
	return &ReminderController{Service: svc}
}

// GetPending handles GET /api/reminders/pending
func (rc *ReminderController) GetPending(c echo.Context) error {
	pending, err := rc.Service.GetPendingReminders(time.Now())
	if err != nil {
		return httpres.Error(c, err)
	}
	return httpres.OK(c, pending)
}
