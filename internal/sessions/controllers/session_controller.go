package controllers

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/mgarciapsic/clinica-backend/internal/common/httpres"
	"github.com/mgarciapsic/clinica-backend/internal/sessions/models"
	"github.com/mgarciapsic/clinica-backend/internal/sessions/services"
	"github.com/mgarciapsic/clinica-backend/ws"
)

type SessionController struct {
	Service *services.SessionService
	Hub     *ws.Hub
}

func NewSessionController(svc *services.SessionService, hub *ws.Hub) *SessionController {
	return &SessionController{Service: svc, Hub: hub}
}

// ListSessions handles GET /api/sessions
func (sc *SessionController) ListSessions(c echo.Context) error {
	params := map[string]string{}
	for k, vs := range c.QueryParams() {
		if len(vs) > 0 {
			params[k] = vs[0]
		}
	}
	sessions, pagination, err := sc.Service.ListSessions(params)
	if err != nil {
		return httpres.Error(c, err)
	}
	return httpres.OK(c, echo.Map{
		"sessions":   sessions,
		"pagination": pagination,
	})
}

// GetSession handles GET /api/sessions/:id
func (sc *SessionController) GetSession(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return httpres.Error(c, httpres.NewValidationError("id", "id must be a number"))
	}
	session, err := sc.Service.GetSession(id)
	if err != nil {
		return httpres.Error(c, err)
	}
	return httpres.OK(c, session)
}

// CreateSession handles POST /api/sessions
func (sc *SessionController) CreateSession(c echo.Context) error {
	var req models.SessionRequest
	if err := c.Bind(&req); err != nil {
		return httpres.Error(c, httpres.NewValidationError("", "invalid request payload"))
	}
	id, err := sc.Service.CreateSession(req)
	if err != nil {
		return httpres.Error(c, err)
	}
	session, err := sc.Service.GetSession(int(id))
	if err != nil {
		return httpres.Error(c, err)
	}
	sc.Hub.Notify("session_created", echo.Map{"id": id})
	return httpres.Created(c, session)
}

// UpdateSession handles PUT /api/sessions/:id
func (sc *SessionController) UpdateSession(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return httpres.Error(c, httpres.NewValidationError("id", "id must be a number"))
	}
	var payload map[string]interface{}
	if err := c.Bind(&payload); err != nil {
		return httpres.Error(c, httpres.NewValidationError("", "invalid request payload"))
	}
	if err := sc.Service.UpdateSession(id, payload); err != nil {
		return httpres.Error(c, err)
	}
	session, err := sc.Service.GetSession(id)
	if err != nil {
		return httpres.Error(c, err)
	}
	sc.Hub.Notify("session_updated", echo.Map{"id": id})
	return httpres.OK(c, session)
}

// DeleteSession handles DELETE /api/sessions/:id (soft delete)
func (sc *SessionController) DeleteSession(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return httpres.Error(c, httpres.NewValidationError("id", "id must be a number"))
	}
	if err := sc.Service.DeleteSession(id); err != nil {
		return httpres.Error(c, err)
	}
	sc.Hub.Notify("session_deleted", echo.Map{"id": id})
	return httpres.OK(c, echo.Map{"deleted": true})
}
