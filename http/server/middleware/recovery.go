package middleware

import (
	"fmt"
	"runtime"

	"github.com/code19m/errx"
	"github.com/gofiber/fiber/v2"

	"github.com/rise-and-shine/cmdpipe/http/server"
	"github.com/rise-and-shine/cmdpipe/observability/logger"
)

const stackTraceSize = 4096

// NewRecoveryMW converts a panic in the rest of the chain into an internal error.
func NewRecoveryMW(log logger.Logger) server.Middleware {
	log = log.Named("http.recovery")

	return server.Middleware{
		Priority: priorityRecovery,
		Handler: func(c *fiber.Ctx) (err error) {
			defer func() {
				if r := recover(); r != nil {
					stackTrace := make([]byte, stackTraceSize)
					stackTrace = stackTrace[:runtime.Stack(stackTrace, false)]
					panicValue := fmt.Sprintf("%v", r)

					log.WithContext(c.UserContext()).
						With("stack_trace", string(stackTrace)).
						With("panic_message", panicValue).
						Error("recovered from panic")

					err = errx.New("panic recovered", errx.WithDetails(errx.D{
						"panic_message": panicValue,
					}))
				}
			}()

			return c.Next()
		},
	}
}
