// Package telemetry wires prdflight into an OTLP collector. Telemetry is
// off unless PRDFLIGHT_OTEL_ENABLED is set, so the CLI stays dependency-free
// for local use.
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
)

const serviceName = "prdflight"

// Version is set at build time via -ldflags.
var Version = "dev"

// Config controls the exporter wiring.
type Config struct {
	Endpoint    string  // OTLP collector host:port
	Environment string  // deployment environment attribute
	SampleRate  float64 // trace sampling ratio
	Enabled     bool
}

// FromEnv builds a Config from PRDFLIGHT_OTEL_ENABLED, PRDFLIGHT_OTEL_ENDPOINT
// and PRDFLIGHT_ENV.
func FromEnv() *Config {
	cfg := &Config{
		Endpoint:    "localhost:4317",
		Environment: "development",
		SampleRate:  1.0,
	}
	if v := os.Getenv("PRDFLIGHT_OTEL_ENABLED"); v == "true" || v == "1" {
		cfg.Enabled = true
	}
	if v := os.Getenv("PRDFLIGHT_OTEL_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("PRDFLIGHT_ENV"); v != "" {
		cfg.Environment = v
	}
	if cfg.Environment == "production" {
		cfg.SampleRate = 0.1
	}
	return cfg
}

// Init installs the global tracer and meter providers and returns a shutdown
// function. With telemetry disabled both the providers and the shutdown are
// no-ops.
func Init(ctx context.Context, cfg *Config) (func(context.Context) error, error) {
	if cfg == nil {
		cfg = FromEnv()
	}
	if !cfg.Enabled {
		return func(context.Context) error { return nil }, nil
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(Version),
			semconv.DeploymentEnvironment(cfg.Environment),
		),
		resource.WithHost(),
		resource.WithProcess(),
	)
	if err != nil {
		return nil, fmt.Errorf("building resource: %w", err)
	}

	traceExp, err := otlptracegrpc.New(ctx,
		otlptracegrpc.WithEndpoint(cfg.Endpoint),
		otlptracegrpc.WithInsecure(),
	)
	if err != nil {
		return nil, fmt.Errorf("creating trace exporter: %w", err)
	}
	metricExp, err := otlpmetricgrpc.New(ctx,
		otlpmetricgrpc.WithEndpoint(cfg.Endpoint),
		otlpmetricgrpc.WithInsecure(),
	)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(traceExp),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.TraceIDRatioBased(cfg.SampleRate)),
	)
	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metricExp)),
		sdkmetric.WithResource(res),
	)

	otel.SetTracerProvider(tp)
	otel.SetMeterProvider(mp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	if err := initMetrics(); err != nil {
		return nil, fmt.Errorf("registering instruments: %w", err)
	}

	return func(ctx context.Context) error {
		return errors.Join(tp.Shutdown(ctx), mp.Shutdown(ctx))
	}, nil
}

// MustInit is Init for main: any setup failure is fatal.
func MustInit(ctx context.Context, cfg *Config) func(context.Context) error {
	shutdown, err := Init(ctx, cfg)
	if err != nil {
		panic(fmt.Sprintf("telemetry init: %v", err))
	}
	return shutdown
}
