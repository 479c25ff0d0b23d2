package logger

import (
	"github.com/code19m/errx"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	// EncodingJSON produces compact JSON lines for log processing systems.
	EncodingJSON = "json"
	// EncodingPretty produces colored console lines with fields as indented JSON,
	// meant for local development.
	EncodingPretty = "pretty"

	levelDebug = "debug"
)

// Config defines configuration options for the logger.
type Config struct {
	// Level is the minimum level to emit: debug, info, warn or error.
	Level string `yaml:"level" validate:"oneof=debug info warn error" default:"debug"`

	// Encoding is the output format: json or pretty.
	Encoding string `yaml:"encoding" validate:"oneof=json pretty" default:"json"`

	// Disable creates a no-op logger. Useful in testing environments.
	Disable bool `yaml:"disable" default:"false"`
}

func (c Config) zapConfig() (*zap.Config, error) {
	level := zap.NewAtomicLevel()
	if err := level.UnmarshalText([]byte(c.Level)); err != nil {
		return nil, errx.Wrap(err)
	}

	return &zap.Config{
		Level:            level,
		Encoding:         c.Encoding,
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
		EncoderConfig: zapcore.EncoderConfig{
			MessageKey:     "msg",
			LevelKey:       "level",
			NameKey:        "logger",
			TimeKey:        "time",
			EncodeLevel:    zapcore.CapitalLevelEncoder,
			EncodeTime:     zapcore.RFC3339TimeEncoder,
			EncodeDuration: zapcore.StringDurationEncoder,
			EncodeName:     zapcore.FullNameEncoder,
		},
	}, nil
}
