package wrapper

import (
	"context"
	"time"

	"github.com/rise-and-shine/cmdpipe/cqrs/command"
)

// NewTimeoutWrapper bounds the context passed to the wrapped handler by d.
func NewTimeoutWrapper[C command.Command](d time.Duration) command.WrapFunc[C] {
	return plain(func(next handleFunc[C, command.Result]) handleFunc[C, command.Result] {
		return (&timeout[C, command.Result]{timeout: d, next: next}).handle
	})
}

// NewTimeoutOutputWrapper is NewTimeoutWrapper for output handlers.
func NewTimeoutOutputWrapper[C command.Command, O any](d time.Duration) command.OutputWrapFunc[C, O] {
	return output(func(next handleFunc[C, command.ResultOf[O]]) handleFunc[C, command.ResultOf[O]] {
		return (&timeout[C, command.ResultOf[O]]{timeout: d, next: next}).handle
	})
}

type timeout[C command.Command, R command.Shaped] struct {
	timeout time.Duration
	next    handleFunc[C, R]
}

func (w *timeout[C, R]) handle(ctx context.Context, cmd C) (R, error) {
	ctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	return w.next(ctx, cmd)
}
