package http

import (
	"time"

	"github.com/labstack/echo/v4"

	"gist/feedsync/pkg/logger"
)

// RequestLoggerMiddleware logs one line per request at a level chosen by
// the response status.
func RequestLoggerMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			status := c.Response().Status
			args := []any{
				"module", "http",
				"action", c.Request().Method,
				"resource", c.Path(),
				"status", status,
				"duration_ms", time.Since(start).Milliseconds(),
			}
			switch {
			case status >= 500:
				logger.Error("request", append(args, "result", "failed")...)
			case status >= 400:
				logger.Warn("request", append(args, "result", "rejected")...)
			default:
				logger.Debug("request", append(args, "result", "ok")...)
			}
			return nil
		}
	}
}
