package tracing

import "time"

const (
	instrumentationName = "github.com/rise-and-shine/cmdpipe"

	reconnectionPeriod = 30 * time.Second
	clientTimeout      = 30 * time.Second
	maxQueueSize       = 10000
	batchTimeout       = 5 * time.Second
	maxExportBatchSize = 1024
	shutdownTimeout    = 5 * time.Second
)

// Config holds the configuration of the tracer provider.
type Config struct {
	// Disable installs a no-op tracer provider. No spans are collected or exported.
	Disable bool `yaml:"disable" default:"false"`

	// SampleRate is the fraction of root traces that are sampled, between 0 and 1.
	SampleRate float64 `yaml:"sample_rate" default:"1" validate:"gte=0,lte=1"`

	// ExporterHost and ExporterPort address the OTLP gRPC collector.
	ExporterHost string `yaml:"exporter_host" validate:"required_unless=Disable true"`
	ExporterPort int    `yaml:"exporter_port" validate:"required_unless=Disable true"`

	// Tags are added as resource attributes to every span.
	Tags map[string]string `yaml:"tags"`
}
