package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/rise-and-shine/cmdpipe/http/server"
	"github.com/rise-and-shine/cmdpipe/meta"
	"github.com/rise-and-shine/cmdpipe/observability/tracing"
)

// Request headers carrying the acting principal, set by the gateway in front of the service.
const (
	HeaderActorID   = "X-Actor-Id"
	HeaderActorType = "X-Actor-Type"
	HeaderTraceID   = "X-Trace-Id"
)

// NewMetaInjectMW puts the trace id, actor and service identity into the request context
// and echoes the trace id in the response.
func NewMetaInjectMW() server.Middleware {
	return server.Middleware{
		Priority: priorityMetaInject,
		Handler: func(c *fiber.Ctx) error {
			ctx := c.UserContext()
			traceID := tracing.GetStartingTraceID(ctx)
			serviceName, serviceVersion := meta.Service()

			ctx = meta.InjectMetaToContext(ctx, map[meta.ContextKey]string{
				meta.TraceID:        traceID,
				meta.ActorID:        c.Get(HeaderActorID),
				meta.ActorType:      c.Get(HeaderActorType),
				meta.ServiceName:    serviceName,
				meta.ServiceVersion: serviceVersion,
			})
			c.SetUserContext(ctx)
			c.Set(HeaderTraceID, traceID)

			return c.Next()
		},
	}
}
