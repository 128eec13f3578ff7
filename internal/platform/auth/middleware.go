package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

type contextKey string

const claimsKey contextKey = "auth_claims"

// Middleware verifies the Authorization header on protected routes.
// Missing header → 401; header without the "Bearer " prefix → 400; invalid or
// expired token → 403. On success the claims are attached to the request
// context.
func Middleware(tokens *TokenService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if header == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Acceso denegado, token no proporcionado.")
			}
			if !strings.HasPrefix(header, "Bearer ") {
				return echo.NewHTTPError(http.StatusBadRequest, "Formato de token incorrecto. Debe comenzar con 'Bearer '")
			}

			claims, err := tokens.Verify(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				return echo.NewHTTPError(http.StatusForbidden, "Token inválido o expirado.")
			}

			ctx := context.WithValue(c.Request().Context(), claimsKey, claims)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

// ClaimsFromContext returns the verified claims attached by Middleware, or nil
// when the request was not authenticated.
func ClaimsFromContext(ctx context.Context) *Claims {
	claims, _ := ctx.Value(claimsKey).(*Claims)
	return claims
}
