package wrapper

import (
	"context"
	"time"

	"github.com/rcrowley/go-metrics"

	"github.com/rise-and-shine/cmdpipe/cqrs/command"
)

// Metric name suffixes registered per command as "command.<name>.<suffix>".
const (
	MetricDuration  = "duration"
	MetricSucceeded = "succeeded"
	MetricFailed    = "failed"
	MetricFaulted   = "faulted"
)

// NewMetricsWrapper records the duration and outcome of every execution in registry.
// A nil registry falls back to metrics.DefaultRegistry.
func NewMetricsWrapper[C command.Command](registry metrics.Registry) command.WrapFunc[C] {
	return plain(func(next handleFunc[C, command.Result]) handleFunc[C, command.Result] {
		return newMeasuring(registry, next).handle
	})
}

// NewMetricsOutputWrapper is NewMetricsWrapper for output handlers.
func NewMetricsOutputWrapper[C command.Command, O any](registry metrics.Registry) command.OutputWrapFunc[C, O] {
	return output(func(next handleFunc[C, command.ResultOf[O]]) handleFunc[C, command.ResultOf[O]] {
		return newMeasuring(registry, next).handle
	})
}

// MetricName returns the registry name of a per-command metric.
func MetricName(cmdName, suffix string) string {
	return "command." + cmdName + "." + suffix
}

type measuring[C command.Command, R command.Shaped] struct {
	duration  metrics.Timer
	succeeded metrics.Counter
	failed    metrics.Counter
	faulted   metrics.Counter
	next      handleFunc[C, R]
}

func newMeasuring[C command.Command, R command.Shaped](
	registry metrics.Registry,
	next handleFunc[C, R],
) *measuring[C, R] {
	if registry == nil {
		registry = metrics.DefaultRegistry
	}
	name := command.TypeName[C]()

	return &measuring[C, R]{
		duration:  metrics.GetOrRegisterTimer(MetricName(name, MetricDuration), registry),
		succeeded: metrics.GetOrRegisterCounter(MetricName(name, MetricSucceeded), registry),
		failed:    metrics.GetOrRegisterCounter(MetricName(name, MetricFailed), registry),
		faulted:   metrics.GetOrRegisterCounter(MetricName(name, MetricFaulted), registry),
		next:      next,
	}
}

func (w *measuring[C, R]) handle(ctx context.Context, cmd C) (R, error) {
	start := time.Now()
	res, err := w.next(ctx, cmd)
	w.duration.UpdateSince(start)

	switch {
	case err != nil:
		w.faulted.Inc(1)
	case res.IsSuccess():
		w.succeeded.Inc(1)
	default:
		w.failed.Inc(1)
	}

	return res, err
}
