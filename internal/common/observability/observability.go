package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Observability bundles the OpenTelemetry meter and tracer used by the
// session controller. A zero value is safe to use and records nothing.
type Observability struct {
	meterProvider  *metric.MeterProvider
	tracerProvider *sdktrace.TracerProvider
	tracer         trace.Tracer
	queryCounter   otelmetric.Int64Counter
	queryDuration  otelmetric.Float64Histogram
}

// New wires a Prometheus-backed meter provider and an in-process tracer provider.
func New(serviceName string, opts ...sdktrace.TracerProviderOption) (*Observability, error) {
	exporter, err := prometheus.New()
	if err != nil {
		return &Observability{}, err
	}

	provider := metric.NewMeterProvider(metric.WithReader(exporter))
	otel.SetMeterProvider(provider)
	meter := provider.Meter(serviceName)

	queryCounter, err := meter.Int64Counter(
		"queries.processed",
		otelmetric.WithDescription("Number of queries answered"),
	)
	if err != nil {
		return &Observability{}, err
	}

	queryDuration, err := meter.Float64Histogram(
		"queries.duration",
		otelmetric.WithDescription("Classify, extract and synthesize duration"),
		otelmetric.WithUnit("ms"),
	)
	if err != nil {
		return &Observability{}, err
	}

	tp := sdktrace.NewTracerProvider(opts...)
	otel.SetTracerProvider(tp)

	return &Observability{
		meterProvider:  provider,
		tracerProvider: tp,
		tracer:         tp.Tracer(serviceName),
		queryCounter:   queryCounter,
		queryDuration:  queryDuration,
	}, nil
}

// StartSpan opens a span; the returned function ends it.
func (o *Observability) StartSpan(ctx context.Context, name string, attrs map[string]string) (context.Context, func()) {
	tracer := o.tracer
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("")
	}
	kv := make([]attribute.KeyValue, 0, len(attrs))
	for k, v := range attrs {
		kv = append(kv, attribute.String(k, v))
	}
	ctx, span := tracer.Start(ctx, name, trace.WithAttributes(kv...))
	return ctx, func() { span.End() }
}

func (o *Observability) RecordQueryProcessed(ctx context.Context, intent string) {
	if o.queryCounter != nil {
		o.queryCounter.Add(ctx, 1, otelmetric.WithAttributes(
			attribute.String("intent", intent),
		))
	}
}

func (o *Observability) RecordQueryDuration(ctx context.Context, duration time.Duration, intent string) {
	if o.queryDuration != nil {
		o.queryDuration.Record(ctx, float64(duration.Microseconds())/1000, otelmetric.WithAttributes(
			attribute.String("intent", intent),
		))
	}
}

func (o *Observability) Shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if o.meterProvider != nil {
		_ = o.meterProvider.Shutdown(ctx)
	}
	if o.tracerProvider != nil {
		_ = o.tracerProvider.Shutdown(ctx)
	}
}
