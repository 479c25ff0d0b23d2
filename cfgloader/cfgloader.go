// Package cfgloader provides a simple way to load and validate configuration at the start of an application.
package cfgloader

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"slices"

	"github.com/code19m/errx"
	"github.com/creasty/defaults"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/rise-and-shine/cmdpipe/val"
)

const (
	EnvProduction = "production"
	EnvStaging    = "staging"
	EnvDev        = "dev"
	EnvLocal      = "local"
	EnvTest       = "test"
)

const (
	defaultConfigDir = "./config"

	CodeInvalidEnvironment = "INVALID_ENVIRONMENT"
	CodeConfigNotFound     = "CONFIG_NOT_FOUND"
	CodeInvalidConfig      = "INVALID_CONFIG"
)

// Load loads and validates configuration from a YAML file selected by the ENVIRONMENT variable.
// The files must be named ${ENVIRONMENT}.yaml and live in the config directory.
//
// ${VAR} references in the file are expanded from the process environment, after
// a .env file in the working directory is loaded if present.
//
// The configuration struct should use `yaml` struct tags to map fields to the YAML file structure.
// Defaults come from the `default` struct tag and are applied before validation.
// Validations are done using the `validate` tag of go-playground/validator.
// Fields tagged `mask:"true"` are masked when the config is printed.
//
// Example:
//
//	type Config struct {
//	    Host     string `yaml:"host" validate:"required"`
//	    Port     int    `yaml:"port" default:"8080"`
//	    Password string `yaml:"password" mask:"true"`
//	}
func Load[T any](opts ...Option) (T, error) {
	var config T

	if reflect.TypeOf(config) == nil || reflect.TypeOf(config).Kind() == reflect.Ptr {
		return config, errx.New("[cfgloader]: config type must be a non-pointer struct", errx.WithCode(CodeInvalidConfig))
	}

	o := buildOptions(opts)

	_ = godotenv.Load()

	env, err := defineEnvironment(o.Environment)
	if err != nil {
		return config, err
	}

	data, err := readConfigFile(filepath.Join(o.Dir, env+".yaml"))
	if err != nil {
		return config, err
	}

	if err = yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &config); err != nil {
		return config, errx.Wrap(err, errx.WithCode(CodeInvalidConfig), errx.WithDetails(errx.D{"environment": env}))
	}

	if err = defaults.Set(&config); err != nil {
		return config, errx.Wrap(err, errx.WithCode(CodeInvalidConfig))
	}

	if err = validateConfig(config, env); err != nil {
		return config, err
	}

	if !o.Silent {
		printConfig(o.Logger, config)
	}

	return config, nil
}

// MustLoad is Load that exits the process when the config cannot be loaded.
func MustLoad[T any](opts ...Option) T {
	config, err := Load[T](opts...)
	if err != nil {
		buildOptions(opts).Logger.Errorx(err)
		os.Exit(1)
	}
	return config
}

func defineEnvironment(override string) (string, error) {
	env := override
	if env == "" {
		env = os.Getenv("ENVIRONMENT")
	}

	choices := []string{EnvProduction, EnvStaging, EnvDev, EnvLocal, EnvTest}
	if !slices.Contains(choices, env) {
		return "", errx.New(
			fmt.Sprintf("[cfgloader]: ENVIRONMENT is not set or invalid. Choices are: %v", choices),
			errx.WithCode(CodeInvalidEnvironment),
			errx.WithDetails(errx.D{"environment": env}),
		)
	}
	return env, nil
}

func readConfigFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errx.New(
			fmt.Sprintf("[cfgloader]: config file not found in the path %s", path),
			errx.WithCode(CodeConfigNotFound),
		)
	}
	if err != nil {
		return nil, errx.Wrap(err, errx.WithCode(CodeConfigNotFound))
	}
	return data, nil
}

func validateConfig(config any, env string) error {
	fieldErrs, err := val.Check(config)
	if err != nil {
		return err
	}
	if len(fieldErrs) == 0 {
		return nil
	}

	fields := make(errx.M, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields[fe.Field] = fe.Message
	}
	return errx.New(
		fmt.Sprintf("[cfgloader]: invalid fields in %s config", env),
		errx.WithCode(CodeInvalidConfig),
		errx.WithFields(fields),
	)
}
