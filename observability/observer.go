package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/faber/container"
)

// Observer records container activity as metrics and spans.
type Observer struct {
	metrics *Metrics
	tracer  trace.Tracer
	attrs   []attribute.KeyValue
}

var _ container.Observer = (*Observer)(nil)

// NewObserver creates an Observer. attrs are added to every measurement
// and span, typically AttrContainerID.
func NewObserver(meter metric.Meter, tracer trace.Tracer, attrs ...attribute.KeyValue) (*Observer, error) {
	metrics, err := NewMetrics(meter)
	if err != nil {
		return nil, err
	}
	return &Observer{metrics: metrics, tracer: tracer, attrs: attrs}, nil
}

func (o *Observer) CacheHit(entry, key string) {
	o.metrics.RecordCacheHit(context.Background(), o.with(entry)...)
}

func (o *Observer) CacheMiss(entry, key string) {
	o.metrics.RecordCacheMiss(context.Background(), o.with(entry)...)
}

// FactoryInvoked records a span covering the factory call and its duration.
func (o *Observer) FactoryInvoked(entry string, started time.Time, d time.Duration, err error) {
	attrs := o.with(entry)
	_, span := o.tracer.Start(context.Background(), SpanFactory,
		trace.WithTimestamp(started),
		trace.WithAttributes(attrs...),
	)
	status := "ok"
	if err != nil {
		status = "error"
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End(trace.WithTimestamp(started.Add(d)))

	o.metrics.RecordFactory(context.Background(), status, d, attrs...)
}

func (o *Observer) with(entry string) []attribute.KeyValue {
	attrs := make([]attribute.KeyValue, 0, len(o.attrs)+1)
	attrs = append(attrs, o.attrs...)
	return append(attrs, attribute.String(AttrEntry, entry))
}
