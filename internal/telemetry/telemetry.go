// Package telemetry wires slog, OpenTelemetry tracing, and the Prometheus
// metrics endpoint for the process.
package telemetry

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// Metrics bundles the application-level instruments. A nil receiver is a
// no-op so tests can pass nil freely.
type Metrics struct {
	ordersPlaced metric.Int64Counter
	orderValue   metric.Float64Counter
}

// OrderPlaced records one committed order and its frozen total.
func (m *Metrics) OrderPlaced(ctx context.Context, total float64) {
	if m == nil {
		return
	}
	m.ordersPlaced.Add(ctx, 1)
	m.orderValue.Add(ctx, total)
}

// Init configures slog, the tracer provider, and the meter provider. It
// returns the application metrics, an http.Handler for /metrics, and a
// shutdown function to flush pending spans and metrics on exit.
func Init(ctx context.Context, serviceName string) (*Metrics, http.Handler, func(context.Context) error, error) {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(serviceName),
	)

	spanExporter, err := newSpanExporter(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	tracerProvider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(spanExporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tracerProvider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	promExporter, err := prometheus.New()
	if err != nil {
		return nil, nil, nil, err
	}
	meterProvider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(promExporter),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(meterProvider)

	metrics, err := newMetrics(meterProvider.Meter("internal/telemetry"))
	if err != nil {
		return nil, nil, nil, err
	}

	shutdown := func(ctx context.Context) error {
		return errors.Join(
			meterProvider.Shutdown(ctx),
			tracerProvider.Shutdown(ctx),
		)
	}

	return metrics, promhttp.Handler(), shutdown, nil
}

func newSpanExporter(ctx context.Context) (sdktrace.SpanExporter, error) {
	opts := []otlptracehttp.Option{}
	if endpoint := strings.TrimSpace(os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")); endpoint != "" {
		opts = append(opts, otlptracehttp.WithEndpoint(endpoint))
	}
	if os.Getenv("OTEL_EXPORTER_OTLP_INSECURE") != "0" {
		opts = append(opts, otlptracehttp.WithInsecure())
	}
	return otlptracehttp.New(ctx, opts...)
}

func newMetrics(meter metric.Meter) (*Metrics, error) {
	ordersPlaced, err := meter.Int64Counter("orders_placed_total",
		metric.WithDescription("Number of successfully placed orders"))
	if err != nil {
		return nil, err
	}
	orderValue, err := meter.Float64Counter("orders_value_total",
		metric.WithDescription("Sum of frozen order totals"))
	if err != nil {
		return nil, err
	}
	return &Metrics{ordersPlaced: ordersPlaced, orderValue: orderValue}, nil
}
