package server

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/davidrq/proyecto-blog/internal/apperr"
)

// errorHandler is the single place where the error taxonomy becomes an HTTP
// response. Internal causes are logged, never echoed to clients.
func errorHandler(log *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		mensaje := "Error interno del servidor."

		var ae *apperr.Error
		var he *echo.HTTPError
		switch {
		case errors.As(err, &ae):
			status = ae.Status()
			mensaje = ae.Mensaje
			if ae.Kind == apperr.KindInternal {
				log.Error("internal error",
					"method", c.Request().Method,
					"path", c.Path(),
					"error", ae.Unwrap())
			}
		case errors.As(err, &he):
			status = he.Code
			if m, ok := he.Message.(string); ok {
				mensaje = m
			}
		default:
			log.Error("unhandled error",
				"method", c.Request().Method,
				"path", c.Path(),
				"error", err)
		}

		var werr error
		if c.Request().Method == http.MethodHead {
			werr = c.NoContent(status)
		} else {
			werr = c.JSON(status, echo.Map{"mensaje": mensaje})
		}
		if werr != nil {
			log.Error("write error response", "error", werr)
		}
	}
}
