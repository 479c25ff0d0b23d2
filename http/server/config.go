package server

import (
	"net"
	"strconv"
	"time"
)

// Config defines the HTTP server.
type Config struct {
	// HideErrorDetails removes error traces and details from error responses.
	HideErrorDetails bool `yaml:"hide_error_details"`

	// Host is the address to bind to.
	Host string `yaml:"host" validate:"required"`
	// Port is the port to listen on.
	Port int `yaml:"port" validate:"required"`

	// ReadTimeout bounds reading a whole request, body included.
	ReadTimeout time.Duration `yaml:"read_timeout"    validate:"required" default:"5s"`
	// WriteTimeout bounds writing the response.
	WriteTimeout time.Duration `yaml:"write_timeout"   validate:"required" default:"5s"`
	// IdleTimeout is how long a keep-alive connection waits for the next request.
	IdleTimeout time.Duration `yaml:"idle_timeout"    validate:"required" default:"120s"`
	// HandleTimeout bounds handling a single request, including the dispatched command.
	HandleTimeout time.Duration `yaml:"request_timeout" validate:"required" default:"10s"`

	// BodyLimit is the maximum request body size in bytes. Default is 4MB.
	BodyLimit int `yaml:"body_limit" validate:"required" default:"4194304"`
}

// Address returns the listen address as "host:port".
func (c Config) Address() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
