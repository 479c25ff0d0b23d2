// Package tracing provides distributed tracing using OpenTelemetry.
// InitGlobalTracer installs the global tracer provider that the command tracing
// wrapper and the HTTP server instrumentation report to.
package tracing

import (
	"context"
	"net"

	"github.com/code19m/errx"
	"github.com/spf13/cast"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.23.1"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/rise-and-shine/cmdpipe/meta"
)

// InitGlobalTracer installs a global tracer provider exporting spans over OTLP gRPC.
// It returns a shutdown function that flushes pending spans and should be deferred.
//
// If cfg.Disable is true a no-op provider is installed. The service name and version
// recorded on every span come from meta.Service.
func InitGlobalTracer(cfg Config) (func() error, error) {
	if cfg.Disable {
		otel.SetTracerProvider(noop.NewTracerProvider())
		return func() error { return nil }, nil
	}

	exporterAddr := net.JoinHostPort(cfg.ExporterHost, cast.ToString(cfg.ExporterPort))

	exporter, err := otlptrace.New(
		context.Background(),
		otlptracegrpc.NewClient(
			otlptracegrpc.WithInsecure(),
			otlptracegrpc.WithEndpoint(exporterAddr),
			otlptracegrpc.WithReconnectionPeriod(reconnectionPeriod),
			otlptracegrpc.WithTimeout(clientTimeout),
		),
	)
	if err != nil {
		return nil, errx.Wrap(err)
	}

	processor := sdktrace.NewBatchSpanProcessor(exporter,
		sdktrace.WithMaxQueueSize(maxQueueSize),
		sdktrace.WithBatchTimeout(batchTimeout),
		sdktrace.WithMaxExportBatchSize(maxExportBatchSize),
	)

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(cfg.SampleRate))),
		sdktrace.WithSpanProcessor(processor),
		sdktrace.WithResource(resource.NewWithAttributes(semconv.SchemaURL, resourceAttributes(cfg)...)),
	)

	otel.SetTextMapPropagator(
		propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{},
			propagation.Baggage{},
		),
	)
	otel.SetTracerProvider(tp)

	return shutdownFunc(tp), nil
}

// Tracer returns the tracer used for command and request spans.
func Tracer() trace.Tracer {
	return otel.Tracer(instrumentationName)
}

func resourceAttributes(cfg Config) []attribute.KeyValue {
	name, version := meta.Service()

	attrs := make([]attribute.KeyValue, 0, len(cfg.Tags)+2)
	for k, v := range cfg.Tags {
		attrs = append(attrs, attribute.String(k, v))
	}
	return append(attrs,
		semconv.ServiceNameKey.String(name),
		semconv.ServiceVersionKey.String(version),
	)
}

func shutdownFunc(tp *sdktrace.TracerProvider) func() error {
	return func() error {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := tp.ForceFlush(ctx); err != nil {
			return errx.Wrap(err)
		}
		return errx.Wrap(tp.Shutdown(ctx))
	}
}
