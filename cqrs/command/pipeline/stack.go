package pipeline

import (
	"time"

	"github.com/rcrowley/go-metrics"

	"github.com/rise-and-shine/cmdpipe/cqrs/command"
	"github.com/rise-and-shine/cmdpipe/cqrs/command/wrapper"
	"github.com/rise-and-shine/cmdpipe/observability/alert"
	"github.com/rise-and-shine/cmdpipe/observability/logger"
)

// Stack holds the shared dependencies of the standard wrapper set.
// Nil fields disable the wrappers that need them, except Logger which defaults to the global logger.
type Stack struct {
	Logger     logger.Logger
	Alert      alert.Provider
	Metrics    metrics.Registry
	UnitOfWork wrapper.UnitOfWork
	Timeout    time.Duration
}

// Standard returns the options registering the standard wrapper set for C.
//
// The full pipeline is meta, tracing, logger, recovery, metrics, alert, timeout and saving
// from the outside in. The core chain only validates, so a nested Invoke runs inside the
// caller's transaction and fault boundary. A nil validator skips validation.
func Standard[C command.Command](s Stack, v command.Validator[C]) HandlerOption[C] {
	log := s.log()

	full := []command.WrapFunc[C]{
		wrapper.NewMetaWrapper[C](command.ModeFullPipelineOnly),
		wrapper.NewTracingWrapper[C](),
		wrapper.NewLoggerWrapper[C](log),
		wrapper.NewRecoveryWrapper[C](log),
	}
	if s.Metrics != nil {
		full = append(full, wrapper.NewMetricsWrapper[C](s.Metrics))
	}
	if s.Alert != nil {
		full = append(full, wrapper.NewAlertWrapper[C](log, s.Alert))
	}
	if s.Timeout > 0 {
		full = append(full, wrapper.NewTimeoutWrapper[C](s.Timeout))
	}
	if s.UnitOfWork != nil {
		full = append(full, wrapper.NewSavingWrapper[C](log, s.UnitOfWork))
	}

	return func(w *Wrappers[C]) {
		WithWrappers(command.ModeFullPipelineOnly, full...)(w)
		if v != nil {
			WithWrappers(command.ModeCore, wrapper.NewValidatingWrapper(v))(w)
		}
	}
}

// StandardOutput is Standard for output handlers.
func StandardOutput[C command.Command, O any](s Stack, v command.Validator[C]) OutputHandlerOption[C, O] {
	log := s.log()

	full := []command.OutputWrapFunc[C, O]{
		wrapper.NewMetaOutputWrapper[C, O](command.ModeFullPipelineOnly),
		wrapper.NewTracingOutputWrapper[C, O](),
		wrapper.NewLoggerOutputWrapper[C, O](log),
		wrapper.NewRecoveryOutputWrapper[C, O](log),
	}
	if s.Metrics != nil {
		full = append(full, wrapper.NewMetricsOutputWrapper[C, O](s.Metrics))
	}
	if s.Alert != nil {
		full = append(full, wrapper.NewAlertOutputWrapper[C, O](log, s.Alert))
	}
	if s.Timeout > 0 {
		full = append(full, wrapper.NewTimeoutOutputWrapper[C, O](s.Timeout))
	}
	if s.UnitOfWork != nil {
		full = append(full, wrapper.NewSavingOutputWrapper[C, O](log, s.UnitOfWork))
	}

	return func(w *OutputWrappers[C, O]) {
		WithOutputWrappers(command.ModeFullPipelineOnly, full...)(w)
		if v != nil {
			WithOutputWrappers(command.ModeCore, wrapper.NewValidatingOutputWrapper[C, O](v))(w)
		}
	}
}

func (s Stack) log() logger.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return logger.Global()
}
