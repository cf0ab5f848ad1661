package httpres

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
)

// OK writes a 200 success envelope.
func OK(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    data,
	})
}

// Created writes a 201 success envelope.
func Created(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"data":    data,
	})
}

// Error maps a service error onto the taxonomy and writes the matching error
// envelope. Unrecognized errors become a 500 with the raw detail logged
// server-side only.
func Error(c echo.Context, err error) error {
	if ve, ok := IsValidation(err); ok {
		body := echo.Map{
			"success": false,
			"error":   ve.Message,
		}
		if ve.Field != "" {
			body["field"] = ve.Field
		}
		if len(ve.AllowedValues) > 0 {
			body["allowed_values"] = ve.AllowedValues
		}
		return c.JSON(http.StatusBadRequest, body)
	}
	if IsNotFound(err) {
		return c.JSON(http.StatusNotFound, echo.Map{
			"success": false,
			"error":   err.Error(),
		})
	}
	if IsAuth(err) {
		return c.JSON(http.StatusUnauthorized, echo.Map{
			"success": false,
			"error":   err.Error(),
		})
	}
	if ce, ok := IsConflict(err); ok {
		return c.JSON(http.StatusConflict, echo.Map{
			"success": false,
			"error":   ce.Message,
		})
	}

	log.Printf("internal error on %s %s: %v", c.Request().Method, c.Request().URL.Path, err)
	return c.JSON(http.StatusInternalServerError, echo.Map{
		"success": false,
		"error":   "internal server error",
	})
}
