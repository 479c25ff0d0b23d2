// Package logger provides the structured logger used by the command pipeline.
//
// It wraps zap's SugaredLogger behind a small interface. Loggers can be enriched with
// the metadata carried in a context (trace id, command name, execution mode) so that
// every line written while handling a command can be correlated.
package logger

import (
	"context"
	"errors"

	"github.com/code19m/errx"
	"go.uber.org/zap"

	"github.com/rise-and-shine/cmdpipe/meta"
)

// Logger defines the logging interface used across the pipeline.
type Logger interface {
	// Debug logs a message at debug level.
	Debug(msg any)
	// Info logs a message at info level.
	Info(msg any)
	// Warn logs a message at warn level.
	Warn(msg any)
	// Error logs a message at error level.
	Error(msg any)

	// Debugf logs a formatted message at debug level.
	Debugf(format string, args ...any)
	// Infof logs a formatted message at info level.
	Infof(format string, args ...any)
	// Warnf logs a formatted message at warn level.
	Warnf(format string, args ...any)
	// Errorf logs a formatted message at error level.
	Errorf(format string, args ...any)

	// Warnx logs an error at warn level, expanding errx.ErrorX code, type, trace and details.
	Warnx(err error)
	// Errorx logs an error at error level, expanding errx.ErrorX code, type, trace and details.
	Errorx(err error)

	// With returns a logger that adds the given key-value pairs to every entry.
	With(keysAndValues ...any) Logger
	// WithContext returns a logger enriched with the metadata found in ctx.
	WithContext(ctx context.Context) Logger
	// Named adds a sub-scope to the logger's name.
	Named(name string) Logger

	// Sync flushes any buffered log entries.
	Sync() error
}

type logger struct {
	*zap.SugaredLogger
}

// New creates a Logger with the provided configuration.
func New(cfg Config) (Logger, error) {
	if cfg.Disable {
		return NewNop(), nil
	}

	zapConfig, err := cfg.zapConfig()
	if err != nil {
		return nil, errx.Wrap(err)
	}

	zl, err := zapConfig.Build()
	if err != nil {
		return nil, errx.Wrap(err)
	}
	return &logger{zl.Sugar()}, nil
}

// NewNop returns a Logger that discards everything. Useful in tests.
func NewNop() Logger {
	return &logger{zap.NewNop().Sugar()}
}

// FromZap wraps an existing zap logger.
func FromZap(zl *zap.Logger) Logger {
	return &logger{zl.Sugar()}
}

func (l *logger) Debug(msg any) { l.SugaredLogger.Debug(msg) }
func (l *logger) Info(msg any)  { l.SugaredLogger.Info(msg) }
func (l *logger) Warn(msg any)  { l.SugaredLogger.Warn(msg) }
func (l *logger) Error(msg any) { l.SugaredLogger.Error(msg) }

func (l *logger) Warnx(err error) {
	l.withErrorFields(err).Warn(err.Error())
}

func (l *logger) Errorx(err error) {
	l.withErrorFields(err).Error(err.Error())
}

func (l *logger) withErrorFields(err error) *zap.SugaredLogger {
	var e errx.ErrorX
	if !errors.As(err, &e) {
		return l.SugaredLogger
	}
	return l.SugaredLogger.With(
		"error_code", e.Code(),
		"error_type", e.Type().String(),
		"error_trace", e.Trace(),
		"error_fields", e.Fields(),
		"error_details", e.Details(),
	)
}

func (l *logger) With(keysAndValues ...any) Logger {
	return &logger{l.SugaredLogger.With(keysAndValues...)}
}

func (l *logger) WithContext(ctx context.Context) Logger {
	if ctx == nil {
		return l
	}

	data := meta.ExtractMetaFromContext(ctx)
	if len(data) == 0 {
		return l
	}

	fields := make([]any, 0, len(data)*2)
	for k, v := range data {
		// zap rejects non-string keys
		fields = append(fields, string(k), v)
	}
	return l.With(fields...)
}

func (l *logger) Named(name string) Logger {
	return &logger{l.SugaredLogger.Named(name)}
}
