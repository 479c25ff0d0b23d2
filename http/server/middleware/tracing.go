package middleware

import (
	"github.com/gofiber/fiber/v2"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.23.1"
	"go.opentelemetry.io/otel/trace"

	"github.com/rise-and-shine/cmdpipe/http/server"
	"github.com/rise-and-shine/cmdpipe/observability/tracing"
)

// NewTracingMW runs every request inside a server span named "<METHOD> <route>".
func NewTracingMW() server.Middleware {
	return server.Middleware{
		Priority: priorityTracing,
		Handler: func(c *fiber.Ctx) error {
			ctx, span := tracing.Tracer().Start(c.UserContext(), c.Method()+" /",
				trace.WithSpanKind(trace.SpanKindServer),
			)
			defer span.End()

			c.SetUserContext(ctx)

			err := c.Next()

			route := c.Route().Path
			if route != "" && route != "/" {
				span.SetName(c.Method() + " " + route)
			}
			span.SetAttributes(
				semconv.HTTPRequestMethodKey.String(c.Method()),
				semconv.HTTPRouteKey.String(route),
				semconv.HTTPResponseStatusCodeKey.Int(c.Response().StatusCode()),
			)

			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
			}
			return err
		},
	}
}
