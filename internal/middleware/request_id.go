package middleware

import (
	"context"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"homeMatch/business/recommend"
)

// RequestID propagates (or mints) an X-Request-ID and threads it into
// the request context so service-layer logs can correlate.
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rid := c.Request().Header.Get(echo.HeaderXRequestID)
			if rid == "" {
				rid = uuid.NewString()
			}
			c.Response().Header().Set(echo.HeaderXRequestID, rid)

			ctx := context.WithValue(c.Request().Context(), recommend.TraceIDKey, rid)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}
