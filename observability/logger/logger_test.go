package logger_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/code19m/errx"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/rise-and-shine/cmdpipe/meta"
	"github.com/rise-and-shine/cmdpipe/observability/logger"
)

func newObserved() (logger.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return logger.FromZap(zap.New(core)), logs
}

func TestNew(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		l, err := logger.New(logger.Config{Level: "info", Encoding: logger.EncodingJSON})
		require.NoError(t, err)
		assert.NotNil(t, l)
	})

	t.Run("pretty", func(t *testing.T) {
		l, err := logger.New(logger.Config{Level: "debug", Encoding: logger.EncodingPretty})
		require.NoError(t, err)
		l.With("k", "v").Debug("pretty works")
	})

	t.Run("invalid level", func(t *testing.T) {
		_, err := logger.New(logger.Config{Level: "loud", Encoding: logger.EncodingJSON})
		assert.Error(t, err)
	})

	t.Run("disabled ignores invalid config", func(t *testing.T) {
		l, err := logger.New(logger.Config{Level: "loud", Disable: true})
		require.NoError(t, err)
		l.Info("dropped")
	})
}

func TestWithContext_AddsMeta(t *testing.T) {
	l, logs := newObserved()
	ctx := meta.InjectMetaToContext(t.Context(), map[meta.ContextKey]string{
		meta.TraceID:     "trace-1",
		meta.CommandName: "CreateUser",
	})

	l.WithContext(ctx).Info("handled")

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "trace-1", fields["trace_id"])
	assert.Equal(t, "CreateUser", fields["command_name"])
}

func TestWithContext_NilOrEmpty(t *testing.T) {
	l, logs := newObserved()

	//nolint:staticcheck // nil context is tolerated on purpose
	l.WithContext(nil).Info("a")
	l.WithContext(context.Background()).Info("b")

	require.Equal(t, 2, logs.Len())
	assert.Empty(t, logs.All()[0].ContextMap())
	assert.Empty(t, logs.All()[1].ContextMap())
}

func TestErrorx(t *testing.T) {
	l, logs := newObserved()

	l.Errorx(errx.New("broken", errx.WithCode("BROKEN")))
	l.Errorx(errors.New("plain"))

	require.Equal(t, 2, logs.Len())
	first := logs.All()[0]
	assert.Equal(t, zapcore.ErrorLevel, first.Level)
	assert.Equal(t, "BROKEN", first.ContextMap()["error_code"])

	second := logs.All()[1]
	assert.Equal(t, "plain", second.Message)
	assert.NotContains(t, second.ContextMap(), "error_code")
}

func TestNamed(t *testing.T) {
	l, logs := newObserved()

	l.Named("cqrs").Named("recovery").Warn("x")

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "cqrs.recovery", logs.All()[0].LoggerName)
}

func TestPrettyEncoding(t *testing.T) {
	noColor := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = noColor })

	out := filepath.Join(t.TempDir(), "pretty.log")
	zl, err := zap.Config{
		Level:       zap.NewAtomicLevelAt(zapcore.DebugLevel),
		Encoding:    logger.EncodingPretty,
		OutputPaths: []string{out},
		EncoderConfig: zapcore.EncoderConfig{
			MessageKey:  "msg",
			LevelKey:    "level",
			NameKey:     "logger",
			EncodeLevel: zapcore.CapitalLevelEncoder,
			EncodeName:  zapcore.FullNameEncoder,
		},
	}.Build()
	require.NoError(t, err)

	l := logger.FromZap(zl).Named("library")
	l.Info("no fields")
	l.Errorx(errx.New("broken", errx.WithCode("BROKEN")))
	require.NoError(t, l.Sync())

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	text := string(data)

	assert.Contains(t, text, "INFO\tlibrary\tno fields\n")
	assert.Contains(t, text, "ERROR\tlibrary\tbroken\n{")
	assert.Contains(t, text, `  "error_code": "BROKEN"`)
	assert.NotContains(t, text, `"msg":`)
}
