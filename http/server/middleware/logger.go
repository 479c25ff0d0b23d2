package middleware

import (
	"time"

	"github.com/code19m/errx"
	"github.com/gofiber/fiber/v2"

	"github.com/rise-and-shine/cmdpipe/http/server"
	"github.com/rise-and-shine/cmdpipe/observability/logger"
)

// NewLoggerMW logs every request at a level derived from the response status:
// info for 2xx and 3xx, warn for 4xx and error for 5xx.
func NewLoggerMW(log logger.Logger) server.Middleware {
	log = log.Named("http.logger")

	return server.Middleware{
		Priority: priorityLogger,
		Handler: func(c *fiber.Ctx) error {
			start := time.Now()

			err := c.Next()

			// the error response is written later by the app error handler
			statusCode := c.Response().StatusCode()
			if err != nil {
				statusCode = server.StatusOf(err)
			}

			l := log.WithContext(c.UserContext()).
				With("http_status_code", statusCode).
				With("http_method", c.Method()).
				With("http_path", c.Path()).
				With("http_route", c.Route().Path).
				With("duration", time.Since(start).String()).
				With("request_size", c.Request().Header.ContentLength())

			if err != nil {
				e := errx.AsErrorX(err)
				l = l.With("error", map[string]any{
					"code":    e.Code(),
					"message": e.Error(),
					"type":    e.Type().String(),
					"trace":   e.Trace(),
					"fields":  e.Fields(),
				})
			}

			switch {
			case statusCode >= fiber.StatusInternalServerError:
				l.Error("request failed")
			case statusCode >= fiber.StatusBadRequest:
				l.Warn("request rejected")
			default:
				l.Info("request processed successfully")
			}

			return err
		},
	}
}
