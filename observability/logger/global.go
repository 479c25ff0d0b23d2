package logger

import (
	"context"
	"sync"
	"sync/atomic"
)

//nolint:gochecknoglobals // global logger singleton
var (
	global   atomic.Value // stores Logger
	setOnce  sync.Once
	initOnce sync.Once
)

// SetGlobal configures the global logger. It must be called once, at startup,
// before anything logs through the package-level functions.
func SetGlobal(cfg Config) {
	called := false
	setOnce.Do(func() {
		// block lazy initialization from racing with us
		initOnce.Do(func() {})

		l, err := New(cfg)
		if err != nil {
			panic("[logger]: failed to initialize global logger: " + err.Error())
		}
		global.Store(l)
		called = true
	})
	if !called {
		panic("[logger]: SetGlobal can only be called once")
	}
}

// Global returns the global logger, creating a debug/pretty logger on first use
// if SetGlobal was never called.
func Global() Logger {
	if l, ok := global.Load().(Logger); ok {
		return l
	}

	initOnce.Do(func() {
		l, err := New(Config{Level: levelDebug, Encoding: EncodingPretty})
		if err != nil {
			panic("[logger]: failed to initialize default logger: " + err.Error())
		}
		global.Store(l)
	})

	l, ok := global.Load().(Logger)
	if !ok {
		panic("[logger]: global contains invalid type")
	}
	return l
}

// Info logs a message at info level using the global logger.
func Info(msg any) { Global().Info(msg) }

// Warn logs a message at warn level using the global logger.
func Warn(msg any) { Global().Warn(msg) }

// Error logs a message at error level using the global logger.
func Error(msg any) { Global().Error(msg) }

// Errorx logs an error with its errx fields using the global logger.
func Errorx(err error) { Global().Errorx(err) }

// With returns the global logger with the given key-value pairs.
func With(keysAndValues ...any) Logger { return Global().With(keysAndValues...) }

// WithContext returns the global logger enriched with the metadata found in ctx.
func WithContext(ctx context.Context) Logger { return Global().WithContext(ctx) }

// Named returns a named child of the global logger.
func Named(name string) Logger { return Global().Named(name) }

// Sync flushes the global logger.
func Sync() error { return Global().Sync() }
