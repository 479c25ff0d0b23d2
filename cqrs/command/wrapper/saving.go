package wrapper

import (
	"context"

	"github.com/code19m/errx"

	"github.com/rise-and-shine/cmdpipe/cqrs/command"
	"github.com/rise-and-shine/cmdpipe/observability/logger"
)

// UnitOfWork groups the changes made while handling a command into one transaction.
// Begin returns a context carrying the transaction; Commit and Rollback must be
// called with that context.
type UnitOfWork interface {
	Begin(ctx context.Context) (context.Context, error)
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// NewSavingWrapper runs the wrapped handler inside a unit of work.
// Changes are committed when the handler succeeds and rolled back when it
// returns a failed result, a fault or panics. A commit failure is returned as a fault.
func NewSavingWrapper[C command.Command](log logger.Logger, uow UnitOfWork) command.WrapFunc[C] {
	return plain(func(next handleFunc[C, command.Result]) handleFunc[C, command.Result] {
		return newSaving(log, uow, next).handle
	})
}

// NewSavingOutputWrapper is NewSavingWrapper for output handlers.
func NewSavingOutputWrapper[C command.Command, O any](log logger.Logger, uow UnitOfWork) command.OutputWrapFunc[C, O] {
	return output(func(next handleFunc[C, command.ResultOf[O]]) handleFunc[C, command.ResultOf[O]] {
		return newSaving(log, uow, next).handle
	})
}

type saving[C command.Command, R command.Shaped] struct {
	logger logger.Logger
	uow    UnitOfWork
	next   handleFunc[C, R]
}

func newSaving[C command.Command, R command.Shaped](
	log logger.Logger,
	uow UnitOfWork,
	next handleFunc[C, R],
) *saving[C, R] {
	if uow == nil {
		panic("[wrapper]: saving wrapper requires a non-nil unit of work for " + command.TypeName[C]())
	}
	return &saving[C, R]{
		logger: log.Named("cqrs.command.saving").With("command_name", command.TypeName[C]()),
		uow:    uow,
		next:   next,
	}
}

func (w *saving[C, R]) handle(ctx context.Context, cmd C) (res R, err error) {
	txCtx, err := w.uow.Begin(ctx)
	if err != nil {
		return res, errx.Wrap(err)
	}

	committed := false
	defer func() {
		if committed {
			return
		}
		if rbErr := w.uow.Rollback(txCtx); rbErr != nil {
			w.logger.WithContext(ctx).With("rollback_error", rbErr.Error()).Warn("failed to roll back unit of work")
		}
	}()

	res, err = w.next(txCtx, cmd)
	if err != nil || !res.IsSuccess() {
		return res, err
	}

	committed = true
	if err = w.uow.Commit(txCtx); err != nil {
		return res, errx.Wrap(err)
	}
	return res, nil
}
