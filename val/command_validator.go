package val

import (
	"context"

	"github.com/code19m/errx"
	"github.com/samber/lo"

	"github.com/rise-and-shine/cmdpipe/cqrs/command"
)

// SchemaValidator returns a command validator driven by the struct tags of C.
// Every failed rule becomes one Result error formatted as "<field>: <message>".
func SchemaValidator[C command.Command]() command.Validator[C] {
	return command.ValidatorFunc[C](func(_ context.Context, cmd C) (command.Result, error) {
		fieldErrs, err := Check(cmd)
		if err != nil {
			return command.Result{}, err
		}
		return command.NewResult(lo.Map(fieldErrs, func(fe FieldError, _ int) string {
			return fe.String()
		})), nil
	})
}

// All runs validators in order and merges their errors into one Result.
// The first validator fault stops the run and is returned.
func All[C command.Command](validators ...command.Validator[C]) command.Validator[C] {
	return command.ValidatorFunc[C](func(ctx context.Context, cmd C) (command.Result, error) {
		res := command.Success()
		for _, v := range validators {
			vr, err := v.Validate(ctx, cmd)
			if err != nil {
				return command.Result{}, errx.Wrap(err)
			}
			res.AddErrorsFrom(vr)
			if !vr.IsSuccess() && res.IsSuccess() {
				res = command.NewResultWithStatus(false)
			}
		}
		return res, nil
	})
}
