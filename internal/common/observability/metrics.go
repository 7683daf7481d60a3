package observability

import (
	"context"
	"log"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
)

type Observability struct {
	meterProvider         *metric.MeterProvider
	meter                 otelmetric.Meter
	recommendationCounter otelmetric.Int64Counter
	recommendationLatency otelmetric.Float64Histogram
	selectionCounter      otelmetric.Int64Counter
}

func New(serviceName string) *Observability {
	exporter, err := prometheus.New()
	if err != nil {
		log.Printf("Failed to create Prometheus exporter: %v", err)
		return &Observability{}
	}

	provider := metric.NewMeterProvider(metric.WithReader(exporter))
	otel.SetMeterProvider(provider)

	meter := provider.Meter(serviceName)

	recommendationCounter, _ := meter.Int64Counter(
		"recommendations.computed",
		otelmetric.WithDescription("Number of recommendation computations"),
	)

	recommendationLatency, _ := meter.Float64Histogram(
		"recommendations.duration",
		otelmetric.WithDescription("Recommendation scoring duration"),
		otelmetric.WithUnit("ms"),
	)

	selectionCounter, _ := meter.Int64Counter(
		"selections.toggled",
		otelmetric.WithDescription("Number of template selection toggles"),
	)

	return &Observability{
		meterProvider:         provider,
		meter:                 meter,
		recommendationCounter: recommendationCounter,
		recommendationLatency: recommendationLatency,
		selectionCounter:      selectionCounter,
	}
}

func (o *Observability) RecordRecommendation(ctx context.Context, industry string, duration time.Duration) {
	if o.recommendationCounter != nil {
		o.recommendationCounter.Add(ctx, 1, otelmetric.WithAttributes(
			attribute.String("industry", industry),
		))
	}
	if o.recommendationLatency != nil {
		o.recommendationLatency.Record(ctx, float64(duration.Milliseconds()), otelmetric.WithAttributes(
			attribute.String("industry", industry),
		))
	}
}

func (o *Observability) RecordSelection(ctx context.Context, selected bool) {
	if o.selectionCounter != nil {
		o.selectionCounter.Add(ctx, 1, otelmetric.WithAttributes(
			attribute.Bool("selected", selected),
		))
	}
}

func (o *Observability) Shutdown() {
	if o.meterProvider != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		o.meterProvider.Shutdown(ctx)
	}
}
