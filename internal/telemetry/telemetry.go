// Package telemetry provides OpenTelemetry instrumentation for Honeycomb.
package telemetry

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const (
	serviceName    = "minesweeper"
	serviceVersion = "0.1.0"

	honeycombEndpoint = "https://api.honeycomb.io"
	defaultDataset    = "minesweeper"
)

// Setup initializes OpenTelemetry with OTLP HTTP exporter.
// It reads configuration from standard OTEL_* environment variables:
//   - OTEL_EXPORTER_OTLP_ENDPOINT: Honeycomb endpoint (https://api.honeycomb.io)
//   - OTEL_EXPORTER_OTLP_HEADERS: Headers including x-honeycomb-team=<api-key>
//
// Returns a shutdown function that should be called on application exit.
func Setup(ctx context.Context) (shutdown func(context.Context) error, err error) {
	exporter, err := otlptracehttp.New(ctx)
	if err != nil {
		return nil, err
	}

	// Own resource instead of merging with Default() to avoid schema URL conflicts
	res, err := resource.New(ctx,
		resource.WithAttributes(
			attribute.String("service.name", serviceName),
			attribute.String("service.version", serviceVersion),
			attribute.String("telemetry.sdk.language", "go"),
			attribute.String("telemetry.sdk.name", "opentelemetry"),
			attribute.String("host.name", getHostname()),
			attribute.String("os.type", runtime.GOOS),
			attribute.String("process.runtime.name", "go"),
			attribute.String("process.runtime.version", runtime.Version()),
		),
	)
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return tp.Shutdown, nil
}

// ConfigureHoneycombEnv maps HONEYCOMB_MINESWEEPER_* variables onto the
// OTEL_* variables read by the exporter. It reports whether an API key was
// found; without one there is nothing to export to.
func ConfigureHoneycombEnv() bool {
	os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", honeycombEndpoint)

	// The .env file may hold an unexpanded reference, so build the header here
	apiKey := os.Getenv("HONEYCOMB_MINESWEEPER_API_KEY")
	dataset := os.Getenv("HONEYCOMB_MINESWEEPER_DATASET")
	if dataset == "" {
		dataset = defaultDataset
	}
	if apiKey == "" {
		return false
	}
	os.Setenv("OTEL_EXPORTER_OTLP_HEADERS",
		fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", apiKey, dataset))
	return true
}

// Tracer returns a named tracer for the given component.
func Tracer(name string) trace.Tracer {
	return otel.GetTracerProvider().Tracer(serviceName + "/" + name)
}

// NoopTracer returns a no-op tracer for use when telemetry is disabled.
func NoopTracer() trace.Tracer {
	return noop.NewTracerProvider().Tracer(serviceName + "/noop")
}

// getHostname returns the system hostname, or "unknown" if it cannot be determined.
func getHostname() string {
	hostname, err := os.Hostname()
	if err != nil {
		return "unknown"
	}
	return hostname
}
