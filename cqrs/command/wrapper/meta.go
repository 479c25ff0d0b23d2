package wrapper

import (
	"context"

	"github.com/rise-and-shine/cmdpipe/cqrs/command"
	"github.com/rise-and-shine/cmdpipe/meta"
	"github.com/rise-and-shine/cmdpipe/observability/tracing"
)

// NewMetaWrapper injects execution metadata into the context of the wrapped handler:
// the trace id, the command name, the execution mode and the service identity.
// A trace id already present in the context is kept, so nested commands share it.
func NewMetaWrapper[C command.Command](mode command.ExecutionMode) command.WrapFunc[C] {
	return plain(func(next handleFunc[C, command.Result]) handleFunc[C, command.Result] {
		return (&metaInject[C, command.Result]{mode: mode, next: next}).handle
	})
}

// NewMetaOutputWrapper is NewMetaWrapper for output handlers.
func NewMetaOutputWrapper[C command.Command, O any](mode command.ExecutionMode) command.OutputWrapFunc[C, O] {
	return output(func(next handleFunc[C, command.ResultOf[O]]) handleFunc[C, command.ResultOf[O]] {
		return (&metaInject[C, command.ResultOf[O]]{mode: mode, next: next}).handle
	})
}

type metaInject[C command.Command, R command.Shaped] struct {
	mode command.ExecutionMode
	next handleFunc[C, R]
}

func (w *metaInject[C, R]) handle(ctx context.Context, cmd C) (R, error) {
	traceID, err := meta.ShouldGetMeta(ctx, meta.TraceID)
	if err != nil {
		traceID = tracing.GetStartingTraceID(ctx)
	}
	serviceName, serviceVersion := meta.Service()

	ctx = meta.InjectMetaToContext(ctx, map[meta.ContextKey]string{ //nolint:exhaustive // actor keys are set by transports
		meta.TraceID:        traceID,
		meta.CommandName:    command.TypeName[C](),
		meta.ExecutionMode:  w.mode.String(),
		meta.ServiceName:    serviceName,
		meta.ServiceVersion: serviceVersion,
	})

	return w.next(ctx, cmd)
}
