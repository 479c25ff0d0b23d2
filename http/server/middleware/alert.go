package middleware

import (
	"context"
	"time"

	"github.com/code19m/errx"
	"github.com/gofiber/fiber/v2"

	"github.com/rise-and-shine/cmdpipe/http/server"
	"github.com/rise-and-shine/cmdpipe/meta"
	"github.com/rise-and-shine/cmdpipe/observability/alert"
	"github.com/rise-and-shine/cmdpipe/observability/logger"
)

const alertSendTimeout = 3 * time.Second

// NewAlertingMW reports internal errors that reach the HTTP layer, such as a command
// without a registered handler. Faults inside a full pipeline are reported by the
// command alert wrapper instead. A nil provider uses the global one.
func NewAlertingMW(log logger.Logger, provider alert.Provider) server.Middleware {
	log = log.Named("http.alerting")
	if provider == nil {
		provider = alert.Global()
	}

	return server.Middleware{
		Priority: priorityAlerting,
		Handler: func(c *fiber.Ctx) error {
			err := c.Next()
			if err == nil {
				return nil
			}

			e := errx.AsErrorX(err)
			if e.Type() != errx.T_Internal {
				return err
			}

			ctx := c.UserContext()
			operation := c.Method() + " " + c.Route().Path

			details := map[string]string{"error_trace": e.Trace()}
			for k, v := range meta.ExtractMetaFromContext(ctx) {
				details[string(k)] = v
			}

			sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), alertSendTimeout)
			go func() {
				defer cancel()
				if sendErr := provider.SendError(sendCtx, e.Code(), e.Error(), operation, details); sendErr != nil {
					log.WithContext(ctx).With("alert_send_error", sendErr.Error()).Warn("failed to send alert")
				}
			}()

			return err
		},
	}
}
