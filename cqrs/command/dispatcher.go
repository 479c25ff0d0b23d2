package command

import "context"

// Dispatcher is the single entry point for submitting commands.
//
// It resolves the full-pipeline chain for the command type and invokes it. Validation and
// fault containment are the business of the wrappers in that chain; the dispatcher adds
// nothing of its own.
type Dispatcher struct {
	resolver Resolver
}

// NewDispatcher creates a Dispatcher backed by the given resolver.
// It panics if r is nil.
func NewDispatcher(r Resolver) *Dispatcher {
	if r == nil {
		panic("[command]: dispatcher requires a non-nil resolver")
	}
	return &Dispatcher{resolver: r}
}

// Resolver returns the resolver the dispatcher was created with.
func (d *Dispatcher) Resolver() Resolver {
	return d.resolver
}

// Send resolves the handler for commands of type C in full-pipeline mode and invokes it.
//
// If no handler is registered, Send returns a NO_HANDLER_REGISTERED error identifying the
// command type. That error is a configuration defect and must not be treated as a business
// outcome. Otherwise the handler's result and fault are returned unchanged.
func Send[C Command](ctx context.Context, d *Dispatcher, cmd C) (Result, error) {
	h, err := ResolveHandler[C](d.resolver, ModeFullPipelineOnly)
	if err != nil {
		return Result{}, err
	}
	return h.Handle(ctx, cmd)
}

// SendWithOutput is Send for commands whose handler returns an output of type O.
func SendWithOutput[C Command, O any](ctx context.Context, d *Dispatcher, cmd C) (ResultOf[O], error) {
	h, err := ResolveOutputHandler[C, O](d.resolver, ModeFullPipelineOnly)
	if err != nil {
		return ResultOf[O]{}, err
	}
	return h.Handle(ctx, cmd)
}

// Invoke runs the core-mode chain for C.
//
// Handlers use it to execute another command as a sub-step without repeating
// full-pipeline-only wrappers such as saving.
func Invoke[C Command](ctx context.Context, r Resolver, cmd C) (Result, error) {
	h, err := ResolveHandler[C](r, ModeCore)
	if err != nil {
		return Result{}, err
	}
	return h.Handle(ctx, cmd)
}

// InvokeWithOutput is Invoke for output-bearing handlers.
func InvokeWithOutput[C Command, O any](ctx context.Context, r Resolver, cmd C) (ResultOf[O], error) {
	h, err := ResolveOutputHandler[C, O](r, ModeCore)
	if err != nil {
		return ResultOf[O]{}, err
	}
	return h.Handle(ctx, cmd)
}
