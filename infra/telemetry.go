package infra

import (
	"context"
	"fmt"
	"log"

	"go.opentelemetry.io/contrib/instrumentation/runtime"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"

	"github.com/obrunogonzaga/formatura-2025/config"
)

const instrumentationName = "github.com/obrunogonzaga/formatura-2025"

// TelemetryClient holds the process-wide meter/tracer providers plus the
// instruments the submission flow records on. Without an OTLP endpoint the
// providers have no exporters attached and everything becomes a no-op.
type TelemetryClient struct {
	MeterProvider  *sdkmetric.MeterProvider
	TracerProvider *sdktrace.TracerProvider
	Tracer         trace.Tracer

	SubmissionsCreated metric.Int64Counter
	PhotosRegistered   metric.Int64Counter
}

func InitTelemetryClient(cfg *config.EnvConfig) *TelemetryClient {
	res := resource.NewSchemaless(
		attribute.String("service.name", cfg.Telemetry.ServiceName),
		attribute.String("deployment.environment", cfg.Environment.Mode),
	)

	var metricOpts []sdkmetric.Option
	var traceOpts []sdktrace.TracerProviderOption
	metricOpts = append(metricOpts, sdkmetric.WithResource(res))
	traceOpts = append(traceOpts, sdktrace.WithResource(res))

	if cfg.Telemetry.OTLPEndpoint != "" && cfg.Environment.Mode != "development" {
		metricExporter, err := otlpmetrichttp.New(context.Background(),
			otlpmetrichttp.WithEndpoint(cfg.Telemetry.OTLPEndpoint),
		)
		if err != nil {
			panic(fmt.Sprintf("Failed to initialize OTLP metric exporter: %v", err))
		}
		metricOpts = append(metricOpts, sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metricExporter)))

		traceExporter, err := otlptracehttp.New(context.Background(),
			otlptracehttp.WithEndpoint(cfg.Telemetry.OTLPEndpoint),
		)
		if err != nil {
			panic(fmt.Sprintf("Failed to initialize OTLP trace exporter: %v", err))
		}
		traceOpts = append(traceOpts, sdktrace.WithBatcher(traceExporter))
	}

	meterProvider := sdkmetric.NewMeterProvider(metricOpts...)
	tracerProvider := sdktrace.NewTracerProvider(traceOpts...)
	otel.SetMeterProvider(meterProvider)
	otel.SetTracerProvider(tracerProvider)

	if err := runtime.Start(runtime.WithMeterProvider(meterProvider)); err != nil {
		log.Printf("Warning: runtime instrumentation not started: %v", err)
	}

	meter := meterProvider.Meter(instrumentationName)

	submissionsCreated, err := meter.Int64Counter("submissions_created_total",
		metric.WithDescription("Number of submissions committed to the database"),
	)
	if err != nil {
		panic(fmt.Sprintf("Failed to create submissions counter: %v", err))
	}

	photosRegistered, err := meter.Int64Counter("photos_registered_total",
		metric.WithDescription("Number of photo rows created across all submissions"),
	)
	if err != nil {
		panic(fmt.Sprintf("Failed to create photos counter: %v", err))
	}

	return &TelemetryClient{
		MeterProvider:      meterProvider,
		TracerProvider:     tracerProvider,
		Tracer:             tracerProvider.Tracer(instrumentationName),
		SubmissionsCreated: submissionsCreated,
		PhotosRegistered:   photosRegistered,
	}
}

func (t *TelemetryClient) Shutdown(ctx context.Context) error {
	if err := t.TracerProvider.Shutdown(ctx); err != nil {
		return err
	}
	return t.MeterProvider.Shutdown(ctx)
}
