package wrapper

import (
	"context"

	"github.com/code19m/errx"

	"github.com/rise-and-shine/cmdpipe/cqrs/command"
)

// NewValidatingWrapper runs v before the wrapped handler.
// A failed validation is returned as is and the handler is not invoked.
// A validator fault is propagated unchanged. It panics if v is nil.
func NewValidatingWrapper[C command.Command](v command.Validator[C]) command.WrapFunc[C] {
	mustValidator(v)
	return plain(func(next handleFunc[C, command.Result]) handleFunc[C, command.Result] {
		return (&validating[C, command.Result]{
			validator: v,
			next:      next,
			convert: func(res command.Result) (command.Result, error) {
				return res, nil
			},
		}).handle
	})
}

// NewValidatingOutputWrapper is NewValidatingWrapper for output handlers.
// A failed validation is converted into a ResultOf with the zero output.
func NewValidatingOutputWrapper[C command.Command, O any](v command.Validator[C]) command.OutputWrapFunc[C, O] {
	mustValidator(v)
	return output(func(next handleFunc[C, command.ResultOf[O]]) handleFunc[C, command.ResultOf[O]] {
		return (&validating[C, command.ResultOf[O]]{
			validator: v,
			next:      next,
			convert: func(res command.Result) (command.ResultOf[O], error) {
				return command.FromExistingOf[O](res)
			},
		}).handle
	})
}

func mustValidator[C command.Command](v command.Validator[C]) {
	if v == nil {
		panic("[wrapper]: validating wrapper requires a non-nil validator for " + command.TypeName[C]())
	}
}

type validating[C command.Command, R command.Shaped] struct {
	validator command.Validator[C]
	next      handleFunc[C, R]
	convert   func(command.Result) (R, error)
}

func (w *validating[C, R]) handle(ctx context.Context, cmd C) (R, error) {
	vr, err := w.validator.Validate(ctx, cmd)
	if err != nil {
		var zero R
		return zero, err
	}

	if !vr.IsSuccess() {
		res, err := w.convert(vr)
		return res, errx.Wrap(err)
	}

	return w.next(ctx, cmd)
}
