package cfgloader

import "github.com/rise-and-shine/cmdpipe/observability/logger"

// Options holds configuration options for Load.
type Options struct {
	// Silent disables printing the loaded config.
	Silent bool

	// Dir is the directory holding ${ENVIRONMENT}.yaml files. Defaults to "./config".
	Dir string

	// Environment overrides the ENVIRONMENT variable.
	Environment string

	// Logger prints the loaded config. Defaults to the global logger.
	Logger logger.Logger
}

// Option is a functional option for configuring Load behavior.
type Option func(*Options)

// WithSilent disables printing the loaded config.
func WithSilent() Option {
	return func(o *Options) {
		o.Silent = true
	}
}

// WithConfigDir reads config files from dir instead of "./config".
func WithConfigDir(dir string) Option {
	return func(o *Options) {
		o.Dir = dir
	}
}

// WithEnvironment selects the config file without consulting ENVIRONMENT.
func WithEnvironment(env string) Option {
	return func(o *Options) {
		o.Environment = env
	}
}

// WithLogger prints the loaded config with l.
func WithLogger(l logger.Logger) Option {
	return func(o *Options) {
		o.Logger = l
	}
}

func buildOptions(opts []Option) Options {
	o := Options{Dir: defaultConfigDir}
	for _, opt := range opts {
		opt(&o)
	}
	if o.Logger == nil {
		o.Logger = logger.Global()
	}
	return o
}
