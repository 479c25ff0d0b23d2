package logger

import (
	"encoding/json"
	"strings"

	"github.com/fatih/color"
	"go.uber.org/zap"
	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

//nolint:gochecknoinits // zap resolves encoders by name from zap.Config.Encoding.
func init() {
	err := zap.RegisterEncoder(EncodingPretty, func(cfg zapcore.EncoderConfig) (zapcore.Encoder, error) {
		return newPrettyEncoder(cfg), nil
	})
	if err != nil {
		panic("[logger]: failed to register pretty encoder: " + err.Error())
	}
}

// prettyEncoder writes one colored console line per entry followed by the
// entry's fields as indented JSON. The embedded JSON encoder holds the fields
// added through With; the console encoder only renders the line prefix.
type prettyEncoder struct {
	zapcore.Encoder
	console zapcore.Encoder
	pool    buffer.Pool
}

func newPrettyEncoder(cfg zapcore.EncoderConfig) *prettyEncoder {
	return &prettyEncoder{
		Encoder: zapcore.NewJSONEncoder(cfg),
		console: zapcore.NewConsoleEncoder(cfg),
		pool:    buffer.NewPool(),
	}
}

// Clone keeps loggers derived with With on the pretty encoder.
func (e *prettyEncoder) Clone() zapcore.Encoder {
	return &prettyEncoder{
		Encoder: e.Encoder.Clone(),
		console: e.console,
		pool:    e.pool,
	}
}

func (e *prettyEncoder) EncodeEntry(entry zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	head, err := e.console.EncodeEntry(entry, nil)
	if err != nil {
		return nil, err
	}
	line := colorizeLevel(strings.TrimRight(head.String(), "\n"), entry.Level)
	head.Free()

	line, err = e.appendFields(line, entry, fields)
	if err != nil {
		return nil, err
	}

	buf := e.pool.Get()
	buf.AppendString(line)
	buf.AppendByte('\n')
	return buf, nil
}

func (e *prettyEncoder) appendFields(line string, entry zapcore.Entry, fields []zapcore.Field) (string, error) {
	raw, err := e.Encoder.EncodeEntry(entry, fields)
	if err != nil {
		return "", err
	}
	defer raw.Free()

	var payload map[string]any
	if err = json.Unmarshal(raw.Bytes(), &payload); err != nil {
		return line + " " + strings.TrimRight(raw.String(), "\n"), nil
	}

	// already printed in the console prefix
	for _, key := range []string{"msg", "level", "time", "logger", "caller", "stacktrace"} {
		delete(payload, key)
	}
	if len(payload) == 0 {
		return line, nil
	}

	indented, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return line + " " + strings.TrimRight(raw.String(), "\n"), nil
	}
	return line + "\n" + string(indented), nil
}

func colorizeLevel(line string, level zapcore.Level) string {
	var c *color.Color
	switch level {
	case zapcore.DebugLevel:
		c = color.New(color.FgCyan)
	case zapcore.InfoLevel:
		c = color.New(color.FgGreen)
	case zapcore.WarnLevel:
		c = color.New(color.FgYellow)
	case zapcore.ErrorLevel, zapcore.DPanicLevel, zapcore.PanicLevel, zapcore.FatalLevel:
		c = color.New(color.FgRed, color.Bold)
	default:
		c = color.New(color.FgMagenta)
	}

	label := level.CapitalString()
	if !strings.Contains(line, label) {
		label = level.String()
	}
	return strings.Replace(line, label, c.Sprint(label), 1)
}
