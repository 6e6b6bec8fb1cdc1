package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/faber/logger"
)

// InitMeter initializes the OpenTelemetry meter provider.
// Returns a MeterProvider that should be shut down on application exit.
func InitMeter(ctx context.Context, config Config) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(config.Endpoint),
	}
	if config.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(config.ServiceName, config.ServiceVersion, config.Environment)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	readerOpts := []sdkmetric.PeriodicReaderOption{}
	if config.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(config.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)

	otel.SetMeterProvider(mp)

	logger.Info("meter initialized", logger.Fields(
		"service", config.ServiceName,
		"endpoint", config.Endpoint,
		"interval", config.Interval.String(),
	))

	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// Metrics holds the instruments recording container activity.
type Metrics struct {
	cacheHits       metric.Int64Counter
	cacheMisses     metric.Int64Counter
	factoryCalls    metric.Int64Counter
	factoryDuration metric.Float64Histogram
}

// Instrument names.
const (
	MetricCacheHits       = "faber.cache.hits"
	MetricCacheMisses     = "faber.cache.misses"
	MetricFactoryCalls    = "faber.factory.calls"
	MetricFactoryDuration = "faber.factory.duration"
)

// NewMetrics creates metric instruments on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	cacheHits, err := meter.Int64Counter(MetricCacheHits,
		metric.WithDescription("Objects served from the container cache"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricCacheHits, err)
	}

	cacheMisses, err := meter.Int64Counter(MetricCacheMisses,
		metric.WithDescription("Cache misses that invoked a factory"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricCacheMisses, err)
	}

	factoryCalls, err := meter.Int64Counter(MetricFactoryCalls,
		metric.WithDescription("Factory invocations by entry and status"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricFactoryCalls, err)
	}

	factoryDuration, err := meter.Float64Histogram(MetricFactoryDuration,
		metric.WithDescription("Duration of factory invocations in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s histogram: %w", MetricFactoryDuration, err)
	}

	return &Metrics{
		cacheHits:       cacheHits,
		cacheMisses:     cacheMisses,
		factoryCalls:    factoryCalls,
		factoryDuration: factoryDuration,
	}, nil
}

// RecordCacheHit counts an object served from cache.
func (m *Metrics) RecordCacheHit(ctx context.Context, attrs ...attribute.KeyValue) {
	m.cacheHits.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// RecordCacheMiss counts a cache miss.
func (m *Metrics) RecordCacheMiss(ctx context.Context, attrs ...attribute.KeyValue) {
	m.cacheMisses.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// RecordFactory records one factory invocation.
func (m *Metrics) RecordFactory(ctx context.Context, status string, duration time.Duration, attrs ...attribute.KeyValue) {
	m.factoryCalls.Add(ctx, 1, metric.WithAttributes(append(attrs, attribute.String(AttrStatus, status))...))
	m.factoryDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}
