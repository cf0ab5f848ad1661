package middlewares

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/mgarciapsic/clinica-backend/pkg/utils"
)

type contextKey string

// ContextKeyClaims is the echo context key under which validated claims are
// stored for downstream handlers.
const ContextKeyClaims contextKey = "claims"

// JWTMiddleware validates the Bearer token and stores its claims in the
// request context.
func JWTMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"success": false,
					"error":   "authorization header missing",
				})
			}
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"success": false,
					"error":   "invalid authorization header",
				})
			}
			claims, err := utils.ValidateJWTToken(parts[1])
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"success": false,
					"error":   "invalid token: " + err.Error(),
				})
			}

			c.Set(string(ContextKeyClaims), claims)
			return next(c)
		}
	}
}
