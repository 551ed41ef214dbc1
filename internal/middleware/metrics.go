package middleware

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"homeMatch/pkg/metrics"
)

// Metrics records per-route latency and request counts.
func Metrics() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			route := c.Path()
			method := c.Request().Method
			status := c.Response().Status
			if err != nil {
				if he, ok := err.(*echo.HTTPError); ok {
					status = he.Code
				}
			}

			metrics.HTTPRequestDuration.WithLabelValues(route, method).Observe(time.Since(start).Seconds())
			metrics.HTTPRequestsTotal.WithLabelValues(route, method, strconv.Itoa(status)).Inc()

			return err
		}
	}
}
