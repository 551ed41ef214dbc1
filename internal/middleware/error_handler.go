package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"homeMatch/pkg/logger"
)

// ErrorHandler renders uncaught errors as the standard error envelope.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := "internal server error"

	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		if m, ok := he.Message.(string); ok {
			message = m
		}
	}

	if code >= http.StatusInternalServerError {
		logger.Error("Unhandled request error", "path", c.Path(), "error", err)
	}

	if err := c.JSON(code, map[string]string{"message": message}); err != nil {
		logger.Error("Failed to write error response", err)
	}
}
