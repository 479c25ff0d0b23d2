package wrapper

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/rise-and-shine/cmdpipe/cqrs/command"
	"github.com/rise-and-shine/cmdpipe/observability/tracing"
)

// NewTracingWrapper runs the wrapped handler inside a span named after the command type.
// Faults are recorded on the span and both faults and failed results mark it as errored.
func NewTracingWrapper[C command.Command]() command.WrapFunc[C] {
	return plain(func(next handleFunc[C, command.Result]) handleFunc[C, command.Result] {
		return newSpanning(next).handle
	})
}

// NewTracingOutputWrapper is NewTracingWrapper for output handlers.
func NewTracingOutputWrapper[C command.Command, O any]() command.OutputWrapFunc[C, O] {
	return output(func(next handleFunc[C, command.ResultOf[O]]) handleFunc[C, command.ResultOf[O]] {
		return newSpanning(next).handle
	})
}

type spanning[C command.Command, R command.Shaped] struct {
	tracer   trace.Tracer
	spanName string
	next     handleFunc[C, R]
}

func newSpanning[C command.Command, R command.Shaped](next handleFunc[C, R]) *spanning[C, R] {
	return &spanning[C, R]{
		tracer:   tracing.Tracer(),
		spanName: command.TypeName[C](),
		next:     next,
	}
}

func (w *spanning[C, R]) handle(ctx context.Context, cmd C) (R, error) {
	ctx, span := w.tracer.Start(ctx, w.spanName,
		trace.WithAttributes(attribute.String("command.name", w.spanName)),
	)
	defer span.End()

	res, err := w.next(ctx, cmd)

	switch {
	case err != nil:
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	case !res.IsSuccess():
		span.SetAttributes(attribute.StringSlice("command.errors", res.Errors()))
		span.SetStatus(codes.Error, strings.Join(res.Errors(), "; "))
	default:
		span.SetStatus(codes.Ok, "")
	}
	span.SetAttributes(attribute.Bool("command.success", err == nil && res.IsSuccess()))

	return res, err
}
