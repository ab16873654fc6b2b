package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/davidrq/proyecto-blog/internal/apperr"
	"github.com/davidrq/proyecto-blog/internal/token"
)

const userIDKey = "user_id"

// RequireToken gates a route behind a valid bearer token. A missing header
// or scheme is forbidden; a present but invalid or expired token is
// unauthorized. On success the decoded user id is stored on the context.
func RequireToken(tokens *token.Manager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if header == "" {
				return apperr.Forbidden("Token no proporcionado.")
			}

			const prefix = "Bearer "
			if !strings.HasPrefix(header, prefix) || len(header) == len(prefix) {
				return apperr.Forbidden("Token no proporcionado.")
			}

			claims, err := tokens.Verify(header[len(prefix):])
			if err != nil {
				return apperr.Unauthorized("Token inválido.")
			}

			c.Set(userIDKey, claims.UserID)
			return next(c)
		}
	}
}

// UserID returns the authenticated user id stored by RequireToken.
func UserID(c echo.Context) (int64, bool) {
	id, ok := c.Get(userIDKey).(int64)
	return id, ok
}
