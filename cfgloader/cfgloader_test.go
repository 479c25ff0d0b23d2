package cfgloader_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/code19m/errx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/rise-and-shine/cmdpipe/cfgloader"
	"github.com/rise-and-shine/cmdpipe/observability/logger"
)

type dbConfig struct {
	Host     string `yaml:"host"     validate:"required"`
	Password string `yaml:"password" mask:"true"`
}

type appConfig struct {
	Name    string        `yaml:"name"    validate:"required"`
	Port    int           `yaml:"port"    default:"8080"`
	Timeout time.Duration `yaml:"timeout" default:"5s"`
	DB      dbConfig      `yaml:"db"`
}

func writeConfig(t *testing.T, env, content string) string {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, env+".yaml"), []byte(content), 0o600))
	return dir
}

func TestLoad(t *testing.T) {
	t.Setenv("DB_PASSWORD", "s3cret")
	dir := writeConfig(t, cfgloader.EnvTest, `
name: library
db:
  host: localhost
  password: ${DB_PASSWORD}
`)

	cfg, err := cfgloader.Load[appConfig](
		cfgloader.WithConfigDir(dir),
		cfgloader.WithEnvironment(cfgloader.EnvTest),
		cfgloader.WithSilent(),
	)
	require.NoError(t, err)

	assert.Equal(t, appConfig{
		Name:    "library",
		Port:    8080,
		Timeout: 5 * time.Second,
		DB:      dbConfig{Host: "localhost", Password: "s3cret"},
	}, cfg)
}

func TestLoad_EnvironmentVariable(t *testing.T) {
	t.Setenv("ENVIRONMENT", cfgloader.EnvDev)
	dir := writeConfig(t, cfgloader.EnvDev, "name: library\ndb:\n  host: db\n")

	cfg, err := cfgloader.Load[appConfig](cfgloader.WithConfigDir(dir), cfgloader.WithSilent())
	require.NoError(t, err)
	assert.Equal(t, "db", cfg.DB.Host)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("invalid environment", func(t *testing.T) {
		_, err := cfgloader.Load[appConfig](cfgloader.WithEnvironment("moon"), cfgloader.WithSilent())
		assert.True(t, errx.IsCodeIn(err, cfgloader.CodeInvalidEnvironment))
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := cfgloader.Load[appConfig](
			cfgloader.WithConfigDir(t.TempDir()),
			cfgloader.WithEnvironment(cfgloader.EnvTest),
			cfgloader.WithSilent(),
		)
		assert.True(t, errx.IsCodeIn(err, cfgloader.CodeConfigNotFound))
	})

	t.Run("validation", func(t *testing.T) {
		dir := writeConfig(t, cfgloader.EnvTest, "port: 9000\n")

		_, err := cfgloader.Load[appConfig](
			cfgloader.WithConfigDir(dir),
			cfgloader.WithEnvironment(cfgloader.EnvTest),
			cfgloader.WithSilent(),
		)
		require.Error(t, err)
		assert.True(t, errx.IsCodeIn(err, cfgloader.CodeInvalidConfig))
		assert.Contains(t, errx.AsErrorX(err).Fields(), "Name")
		assert.Contains(t, errx.AsErrorX(err).Fields(), "DB.Host")
	})

	t.Run("malformed yaml", func(t *testing.T) {
		dir := writeConfig(t, cfgloader.EnvTest, "name: [")

		_, err := cfgloader.Load[appConfig](
			cfgloader.WithConfigDir(dir),
			cfgloader.WithEnvironment(cfgloader.EnvTest),
			cfgloader.WithSilent(),
		)
		assert.True(t, errx.IsCodeIn(err, cfgloader.CodeInvalidConfig))
	})

	t.Run("pointer type", func(t *testing.T) {
		_, err := cfgloader.Load[*appConfig](cfgloader.WithSilent())
		assert.True(t, errx.IsCodeIn(err, cfgloader.CodeInvalidConfig))
	})
}

func TestLoad_PrintsMaskedConfig(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	dir := writeConfig(t, cfgloader.EnvTest, "name: library\ndb:\n  host: localhost\n  password: s3cret\n")

	_, err := cfgloader.Load[appConfig](
		cfgloader.WithConfigDir(dir),
		cfgloader.WithEnvironment(cfgloader.EnvTest),
		cfgloader.WithLogger(logger.FromZap(zap.New(core))),
	)
	require.NoError(t, err)

	require.Equal(t, 1, logs.Len())
	printed := logs.All()[0].Message
	assert.Contains(t, printed, "host: localhost")
	assert.Contains(t, printed, "********")
	assert.NotContains(t, printed, "s3cret")
}
