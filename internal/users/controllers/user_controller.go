package controllers

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/mgarciapsic/clinica-backend/internal/common/httpres"
	"github.com/mgarciapsic/clinica-backend/internal/users/models"
	"github.com/mgarciapsic/clinica-backend/internal/users/services"
)

type UserController struct {
	Service *services.UserService
}

func NewUserController(svc *services.UserService) *UserController {
	return &UserController{Service: svc}
}

// Login handles POST /api/auth/login
func (uc *UserController) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return httpres.Error(c, httpres.NewValidationError("", "invalid request payload"))
	}
	token, user, err := uc.Service.Authenticate(req.Email, req.Password)
	if err != nil {
		return httpres.Error(c, err)
	}
	return httpres.OK(c, echo.Map{
		"token": token,
		"user":  user,
	})
}

// GetUser handles GET /api/users/:id
func (uc *UserController) GetUser(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return httpres.Error(c, httpres.NewValidationError("id", "id must be a number"))
	}
	user, err := uc.Service.GetUser(id)
	if err != nil {
		return httpres.Error(c, err)
	}
	return httpres.OK(c, user)
}
