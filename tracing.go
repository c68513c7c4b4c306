package sdk

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"
)

// NewTracerProvider creates a TracerProvider that sends pipeline spans
// to the given exporter.
//
// The provider uses a batch span processor and tags every span with the
// archforge service name. Pass the resulting tracer to the pipeline via
// WithTracer:
//
//	tp := sdk.NewTracerProvider(exporter, logger)
//	defer tp.Shutdown(context.Background())
//
//	pipeline, err := sdk.NewPipeline(
//	    sdk.WithTracer(sdk.NewTracer(tp)),
//	)
func NewTracerProvider(exporter sdktrace.SpanExporter, logger *slog.Logger) *sdktrace.TracerProvider {
	if logger == nil {
		logger = slog.Default()
	}

	res, err := resource.New(
		context.Background(),
		resource.WithAttributes(
			semconv.ServiceNameKey.String("archforge-sdk"),
		),
	)
	if err != nil {
		logger.Warn("failed to create resource, using default", "error", err)
		res = resource.Default()
	}

	return sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
}

// NewTracer creates a tracer from the TracerProvider under the standard
// instrumentation name.
func NewTracer(tp *sdktrace.TracerProvider) trace.Tracer {
	return tp.Tracer("archforge-sdk")
}
