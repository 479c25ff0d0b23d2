package wrapper

import (
	"context"
	"time"

	"github.com/code19m/errx"

	"github.com/rise-and-shine/cmdpipe/cqrs/command"
	"github.com/rise-and-shine/cmdpipe/meta"
	"github.com/rise-and-shine/cmdpipe/observability/alert"
	"github.com/rise-and-shine/cmdpipe/observability/logger"
)

const alertTimeout = 3 * time.Second

// NewAlertWrapper reports faults of the wrapped handler to provider.
// The alert is sent in the background and the fault is returned unchanged.
// Failed results are business outcomes and are not reported.
func NewAlertWrapper[C command.Command](log logger.Logger, provider alert.Provider) command.WrapFunc[C] {
	return plain(func(next handleFunc[C, command.Result]) handleFunc[C, command.Result] {
		return newAlerting(log, provider, next).handle
	})
}

// NewAlertOutputWrapper is NewAlertWrapper for output handlers.
func NewAlertOutputWrapper[C command.Command, O any](
	log logger.Logger,
	provider alert.Provider,
) command.OutputWrapFunc[C, O] {
	return output(func(next handleFunc[C, command.ResultOf[O]]) handleFunc[C, command.ResultOf[O]] {
		return newAlerting(log, provider, next).handle
	})
}

type alerting[C command.Command, R command.Shaped] struct {
	logger   logger.Logger
	provider alert.Provider
	next     handleFunc[C, R]
	cmdName  string
}

func newAlerting[C command.Command, R command.Shaped](
	log logger.Logger,
	provider alert.Provider,
	next handleFunc[C, R],
) *alerting[C, R] {
	if provider == nil {
		provider = alert.Global()
	}
	return &alerting[C, R]{
		logger:   log.Named("cqrs.command.alerting"),
		provider: provider,
		next:     next,
		cmdName:  command.TypeName[C](),
	}
}

func (w *alerting[C, R]) handle(ctx context.Context, cmd C) (R, error) {
	res, err := w.next(ctx, cmd)
	if err == nil {
		return res, nil
	}

	code := errx.AsErrorX(err).Code()
	operation := "command: " + w.cmdName

	details := make(map[string]string)
	for k, v := range meta.ExtractMetaFromContext(ctx) {
		details[string(k)] = v
	}

	sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), alertTimeout)
	go func() {
		defer cancel()

		if sendErr := w.provider.SendError(sendCtx, code, err.Error(), operation, details); sendErr != nil {
			w.logger.WithContext(ctx).With("alert_send_error", sendErr.Error()).Warn("failed to send error alert")
		}
	}()

	return res, err
}
