// Package otel wires OpenTelemetry tracing for companion processes.
package otel

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// Options controls tracing setup. Tracing stays off until an endpoint is set.
type Options struct {
	// Endpoint is the OTLP/HTTP collector URL.
	Endpoint string `env:"OTEL_ENDPOINT"`
	// Disabled turns tracing off even when an endpoint is configured.
	Disabled bool `env:"OTEL_DISABLED" envDefault:"false"`
	// SampleRatio is the fraction of root spans kept, in [0, 1].
	SampleRatio float64 `env:"OTEL_SAMPLE_RATIO" envDefault:"1"`
}

// Enabled reports whether Setup will register a tracer provider.
func (o Options) Enabled() bool {
	return !o.Disabled && strings.TrimSpace(o.Endpoint) != ""
}

func (o Options) sampler() (sdktrace.Sampler, error) {
	switch {
	case o.SampleRatio < 0 || o.SampleRatio > 1:
		return nil, fmt.Errorf("sample ratio %v outside [0, 1]", o.SampleRatio)
	case o.SampleRatio == 1:
		return sdktrace.ParentBased(sdktrace.AlwaysSample()), nil
	default:
		return sdktrace.ParentBased(sdktrace.TraceIDRatioBased(o.SampleRatio)), nil
	}
}

func noopFlush(context.Context) error { return nil }

// Setup registers a batching tracer provider for service and returns its
// flush function. Disabled options leave the global no-op tracer in place.
func Setup(ctx context.Context, service string, options Options) (func(context.Context) error, error) {
	if !options.Enabled() {
		return noopFlush, nil
	}
	sampler, err := options.sampler()
	if err != nil {
		return noopFlush, err
	}
	exporter, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpointURL(strings.TrimSpace(options.Endpoint)))
	if err != nil {
		return noopFlush, fmt.Errorf("otlp exporter: %w", err)
	}
	res, err := resource.New(ctx, resource.WithAttributes(semconv.ServiceName(service)))
	if err != nil {
		return noopFlush, fmt.Errorf("trace resource: %w", err)
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sampler),
	)
	otel.SetTracerProvider(provider)
	otel.SetTextMapPropagator(propagation.TraceContext{})
	return provider.Shutdown, nil
}
