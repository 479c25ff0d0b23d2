package wrapper

import (
	"context"
	"fmt"
	"runtime"

	"github.com/code19m/errx"

	"github.com/rise-and-shine/cmdpipe/cqrs/command"
	"github.com/rise-and-shine/cmdpipe/observability/logger"
)

const stackTraceSize = 4096

// NewRecoveryWrapper contains faults of the wrapped handler.
// A returned error or a panic becomes a failed Result carrying the message
// "Execution of command <C> failed due to exception: <fault>", so the chain
// never returns an error past this wrapper.
func NewRecoveryWrapper[C command.Command](log logger.Logger) command.WrapFunc[C] {
	return plain(func(next handleFunc[C, command.Result]) handleFunc[C, command.Result] {
		return newRecovery(log, next, func(msg string) command.Result {
			return command.Failure(msg)
		}).handle
	})
}

// NewRecoveryOutputWrapper is NewRecoveryWrapper for output handlers.
// A contained fault yields a failed ResultOf with the zero output.
func NewRecoveryOutputWrapper[C command.Command, O any](log logger.Logger) command.OutputWrapFunc[C, O] {
	return output(func(next handleFunc[C, command.ResultOf[O]]) handleFunc[C, command.ResultOf[O]] {
		return newRecovery(log, next, func(msg string) command.ResultOf[O] {
			return command.FailureOf[O](msg)
		}).handle
	})
}

// FaultMessage formats the error message stored in a Result for a contained fault.
func FaultMessage(cmdName, fault string) string {
	return fmt.Sprintf("Execution of command %s failed due to exception: %s", cmdName, fault)
}

type recovery[C command.Command, R command.Shaped] struct {
	logger  logger.Logger
	next    handleFunc[C, R]
	fail    func(msg string) R
	cmdName string
}

func newRecovery[C command.Command, R command.Shaped](
	log logger.Logger,
	next handleFunc[C, R],
	fail func(msg string) R,
) *recovery[C, R] {
	cmdName := command.TypeName[C]()
	return &recovery[C, R]{
		logger:  log.Named("cqrs.command.recovery").With("command_name", cmdName),
		next:    next,
		fail:    fail,
		cmdName: cmdName,
	}
}

func (w *recovery[C, R]) handle(ctx context.Context, cmd C) (res R, err error) {
	defer func() {
		if r := recover(); r != nil {
			stackTrace := make([]byte, stackTraceSize)
			stackTrace = stackTrace[:runtime.Stack(stackTrace, false)]
			panicValue := fmt.Sprintf("%v", r)

			w.logger.
				WithContext(ctx).
				With("stack_trace", string(stackTrace)).
				With("panic_values", panicValue).
				Error("panic recovered in command handler")

			res, err = w.fail(FaultMessage(w.cmdName, panicValue)), nil
		}
	}()

	res, err = w.next(ctx, cmd)
	if err == nil {
		return res, nil
	}

	w.logger.WithContext(ctx).Errorx(errx.Wrap(err))
	return w.fail(FaultMessage(w.cmdName, err.Error())), nil
}
