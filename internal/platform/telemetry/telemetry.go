package telemetry

import (
	"context"
	"strings"

	"pet-dispatch/internal/platform/logger"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

type Options struct {
	ServiceName string
	Endpoint    string
	Insecure    bool
}

// Setup registra un TracerProvider OTLP/gRPC global y devuelve su shutdown.
// Sin endpoint no exporta nada y el shutdown es no-op.
func Setup(ctx context.Context, opts Options, log logger.Logger) func(context.Context) error {
	noop := func(context.Context) error { return nil }

	endpoint := strings.TrimSpace(opts.Endpoint)
	if endpoint == "" {
		return noop
	}

	exOpts := []otlptracegrpc.Option{otlptracegrpc.WithEndpoint(endpoint)}
	if opts.Insecure {
		exOpts = append(exOpts, otlptracegrpc.WithInsecure())
	}

	exporter, err := otlptracegrpc.New(ctx, exOpts...)
	if err != nil {
		log.Warn("otel exporter disabled", map[string]any{"error": err.Error()})
		return noop
	}

	res, err := resource.New(ctx, resource.WithAttributes(semconv.ServiceName(opts.ServiceName)))
	if err != nil {
		log.Warn("otel resource error", map[string]any{"error": err.Error()})
	}

	provider := trace.NewTracerProvider(
		trace.WithBatcher(exporter),
		trace.WithResource(res),
	)
	otel.SetTracerProvider(provider)

	log.Info("otel tracing enabled", map[string]any{"endpoint": endpoint})
	return provider.Shutdown
}
