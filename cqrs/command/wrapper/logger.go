package wrapper

import (
	"context"
	"time"

	"github.com/rise-and-shine/cmdpipe/cqrs/command"
	"github.com/rise-and-shine/cmdpipe/observability/logger"
)

// NewLoggerWrapper logs every execution with its input, duration and outcome.
// Successful commands are logged at info, failed results at warn and faults at error.
func NewLoggerWrapper[C command.Command](log logger.Logger) command.WrapFunc[C] {
	return plain(func(next handleFunc[C, command.Result]) handleFunc[C, command.Result] {
		return newLogging(log, next).handle
	})
}

// NewLoggerOutputWrapper is NewLoggerWrapper for output handlers.
func NewLoggerOutputWrapper[C command.Command, O any](log logger.Logger) command.OutputWrapFunc[C, O] {
	return output(func(next handleFunc[C, command.ResultOf[O]]) handleFunc[C, command.ResultOf[O]] {
		return newLogging(log, next).handle
	})
}

type logging[C command.Command, R command.Shaped] struct {
	logger logger.Logger
	next   handleFunc[C, R]
}

func newLogging[C command.Command, R command.Shaped](log logger.Logger, next handleFunc[C, R]) *logging[C, R] {
	return &logging[C, R]{
		logger: log.Named("cqrs.command.logger").With("command_name", command.TypeName[C]()),
		next:   next,
	}
}

func (w *logging[C, R]) handle(ctx context.Context, cmd C) (R, error) {
	start := time.Now()

	res, err := w.next(ctx, cmd)

	log := w.logger.
		WithContext(ctx).
		With("execution_time", time.Since(start).String()).
		With("input", cmd)

	switch {
	case err != nil:
		log.Errorx(err)
	case !res.IsSuccess():
		log.With("errors", res.Errors()).Warn("command failed")
	default:
		log.Info("command succeeded")
	}

	return res, err
}
