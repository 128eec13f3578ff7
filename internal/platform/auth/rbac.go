package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RequireAdmin restricts a route to authenticated admin users. It must run
// after Middleware so the claims are already on the request context.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims := ClaimsFromContext(c.Request().Context())
			if claims == nil {
				return echo.NewHTTPError(http.StatusForbidden, "Usuario no autenticado.")
			}
			if claims.Rol != RoleAdmin {
				return echo.NewHTTPError(http.StatusForbidden, "Acceso restringido a administradores.")
			}
			return next(c)
		}
	}
}
