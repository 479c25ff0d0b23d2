package command

import "context"

// Chain wraps h with the given wrappers. The first wrapper is the outermost.
//
//	Chain(core, recovery, validating) // recovery(validating(core))
func Chain[C Command](h Handler[C], wraps ...WrapFunc[C]) Handler[C] {
	for i := len(wraps) - 1; i >= 0; i-- {
		h = wraps[i](h)
	}
	return h
}

// ChainOutput is Chain for output-bearing handlers.
func ChainOutput[C Command, O any](h OutputHandler[C, O], wraps ...OutputWrapFunc[C, O]) OutputHandler[C, O] {
	for i := len(wraps) - 1; i >= 0; i-- {
		h = wraps[i](h)
	}
	return h
}

// AsHandler lets a client holding only the plain Handler capability invoke an
// output-bearing handler. The output is dropped; status and errors are kept.
func AsHandler[C Command, O any](h OutputHandler[C, O]) Handler[C] {
	return &outputAdapter[C, O]{next: h}
}

type outputAdapter[C Command, O any] struct {
	next OutputHandler[C, O]
}

func (a *outputAdapter[C, O]) Handle(ctx context.Context, cmd C) (Result, error) {
	res, err := a.next.Handle(ctx, cmd)
	return res.Result(), err
}
