package observability

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Tracer is the shared tracer for query-path spans. Until InitTracerProvider
// installs a real provider it resolves to the global no-op provider.
var Tracer = otel.Tracer("typemeta")

// InitTracerProvider wires an OTLP/gRPC exporter into the global tracer
// provider and returns a cleanup function. When disabled, spans stay no-ops
// and the cleanup does nothing.
func InitTracerProvider(endpoint string, enabled bool) (func(), error) {
	if !enabled {
		return func() {}, nil
	}

	ctx := context.Background()
	exporter, err := otlptrace.New(ctx, otlptracegrpc.NewClient(
		otlptracegrpc.WithEndpoint(endpoint),
		otlptracegrpc.WithInsecure(),
	))
	if err != nil {
		return nil, err
	}

	res := resource.NewSchemaless(attribute.String("service.name", "typemeta"))
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)

	cleanup := func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(shutdownCtx); err != nil {
			slog.Error("tracer provider shutdown failed", "error", err)
		}
	}
	return cleanup, nil
}
