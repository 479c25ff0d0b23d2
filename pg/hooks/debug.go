// Package hooks contains Bun query hooks.
package hooks

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/uptrace/bun"

	"github.com/rise-and-shine/cmdpipe/observability/logger"
)

var _ bun.QueryHook = (*DebugHook)(nil)

const defaultSlowQueryThreshold = 100 * time.Millisecond

// DebugHook logs executed queries.
// Failed queries are logged at error, empty results and slow queries at warn and,
// in verbose mode, every other query at debug.
type DebugHook struct {
	enabled            bool
	verbose            bool
	slowQueryThreshold time.Duration
	logger             logger.Logger
}

// DebugHookOption configures a DebugHook.
type DebugHookOption func(*DebugHook)

// NewDebugHook creates an enabled, verbose hook logging through the global logger.
func NewDebugHook(opts ...DebugHookOption) *DebugHook {
	hook := &DebugHook{
		enabled:            true,
		verbose:            true,
		slowQueryThreshold: defaultSlowQueryThreshold,
		logger:             logger.Global(),
	}
	for _, opt := range opts {
		opt(hook)
	}
	hook.logger = hook.logger.Named("pg.query")
	return hook
}

// WithEnabled turns the hook on or off.
func WithEnabled(enabled bool) DebugHookOption {
	return func(h *DebugHook) {
		h.enabled = enabled
	}
}

// WithVerbose controls whether successful fast queries are logged.
func WithVerbose(verbose bool) DebugHookOption {
	return func(h *DebugHook) {
		h.verbose = verbose
	}
}

// WithSlowQueryThreshold sets the duration from which a query is logged as slow. 0 disables it.
func WithSlowQueryThreshold(threshold time.Duration) DebugHookOption {
	return func(h *DebugHook) {
		h.slowQueryThreshold = threshold
	}
}

// WithLogger sets the logger. A nil logger keeps the current one.
func WithLogger(l logger.Logger) DebugHookOption {
	return func(h *DebugHook) {
		if l != nil {
			h.logger = l
		}
	}
}

// BeforeQuery implements bun.QueryHook.
func (h *DebugHook) BeforeQuery(ctx context.Context, _ *bun.QueryEvent) context.Context {
	return ctx
}

// AfterQuery implements bun.QueryHook.
func (h *DebugHook) AfterQuery(ctx context.Context, event *bun.QueryEvent) {
	if !h.enabled {
		return
	}

	duration := time.Since(event.StartTime)
	noRows := errors.Is(event.Err, sql.ErrNoRows)
	failed := event.Err != nil && !noRows && !errors.Is(event.Err, sql.ErrTxDone)
	slow := h.slowQueryThreshold > 0 && duration >= h.slowQueryThreshold

	if !h.verbose && !failed && !noRows && !slow {
		return
	}

	log := h.logger.
		WithContext(ctx).
		With("query", strings.ReplaceAll(event.Query, `"`, "")).
		With("duration", duration.Round(time.Microsecond).String())

	msg := "[pg] " + event.Operation()
	switch {
	case failed:
		log.With("error", event.Err.Error()).Error(msg)
	case noRows:
		log.With("error", event.Err.Error()).Warn(msg)
	case slow:
		log.Warn(msg + " (slow)")
	default:
		log.Debug(msg)
	}
}
