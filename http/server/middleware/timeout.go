package middleware

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/rise-and-shine/cmdpipe/http/server"
)

// NewTimeoutMW bounds the request context by d. A non-positive d disables it.
func NewTimeoutMW(d time.Duration) server.Middleware {
	if d <= 0 {
		return server.Middleware{Priority: priorityTimeout}
	}

	return server.Middleware{
		Priority: priorityTimeout,
		Handler: func(c *fiber.Ctx) error {
			ctx, cancel := context.WithTimeout(c.UserContext(), d)
			defer cancel()

			c.SetUserContext(ctx)
			return c.Next()
		},
	}
}
