// Package middleware holds the HTTP middleware shared by all routes.
package middleware

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	emw "github.com/labstack/echo/v4/middleware"
)

// RequestID tags every request with a v4 UUID for log correlation.
func RequestID() echo.MiddlewareFunc {
	return emw.RequestIDWithConfig(emw.RequestIDConfig{
		Generator: func() string { return uuid.NewString() },
	})
}

// SlogRequests emits one structured log line per request.
func SlogRequests() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			lat := time.Since(start).Milliseconds()

			rid := c.Response().Header().Get(echo.HeaderXRequestID)
			slog.Info("http",
				"method", c.Request().Method,
				"path", c.Path(),
				"status", c.Response().Status,
				"latency_ms", lat,
				"req_id", rid,
				"ip", c.RealIP(),
			)
			return err
		}
	}
}
