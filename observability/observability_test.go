package observability

import (
	"context"
	"fmt"
	"testing"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/kbukum/faber/container"
	"github.com/kbukum/faber/logger"
)

type harness struct {
	reader   *sdkmetric.ManualReader
	recorder *tracetest.SpanRecorder
	observer *Observer
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	obs, err := NewObserver(mp.Meter("test"), tp.Tracer("test"), attribute.String(AttrContainerID, "app"))
	if err != nil {
		t.Fatalf("NewObserver failed: %v", err)
	}
	return &harness{reader: reader, recorder: recorder, observer: obs}
}

func (h *harness) counter(t *testing.T, name string) int64 {
	t.Helper()
	var rm metricdata.ResourceMetrics
	if err := h.reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("Collect failed: %v", err)
	}
	var total int64
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != name {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				t.Fatalf("metric %s is %T, expected Sum[int64]", name, m.Data)
			}
			for _, dp := range sum.DataPoints {
				total += dp.Value
			}
		}
	}
	return total
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig("test-service")
	if cfg.ServiceName != "test-service" {
		t.Errorf("expected ServiceName 'test-service', got %s", cfg.ServiceName)
	}
	if cfg.Endpoint != "localhost:4318" {
		t.Errorf("expected Endpoint 'localhost:4318', got %s", cfg.Endpoint)
	}
	if cfg.SampleRate != 1.0 || cfg.Interval != 15*time.Second {
		t.Errorf("unexpected export defaults: %+v", cfg)
	}
}

func TestConfigApplyDefaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()
	if cfg.Interval != 15*time.Second || cfg.SampleRate != 1.0 || cfg.Environment != "development" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.Endpoint != "" {
		t.Error("endpoint must not be defaulted")
	}
}

func TestSampler(t *testing.T) {
	tests := []struct {
		rate float64
		want string
	}{
		{1.0, "AlwaysOnSampler"},
		{0, "AlwaysOffSampler"},
		{0.5, "TraceIDRatioBased{0.5}"},
	}
	for _, tc := range tests {
		t.Run(fmt.Sprint(tc.rate), func(t *testing.T) {
			if got := sampler(tc.rate).Description(); got != tc.want {
				t.Errorf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestObserverCountsCacheEvents(t *testing.T) {
	h := newHarness(t)
	h.observer.CacheHit("db", "db_x")
	h.observer.CacheHit("db", "db_x")
	h.observer.CacheMiss("db", "db_y")

	if got := h.counter(t, MetricCacheHits); got != 2 {
		t.Errorf("expected 2 hits, got %d", got)
	}
	if got := h.counter(t, MetricCacheMisses); got != 1 {
		t.Errorf("expected 1 miss, got %d", got)
	}
}

func TestObserverRecordsFactorySpans(t *testing.T) {
	h := newHarness(t)
	started := time.Now()
	h.observer.FactoryInvoked("db", started, 5*time.Millisecond, nil)
	h.observer.FactoryInvoked("db", started, time.Millisecond, fmt.Errorf("boom"))

	spans := h.recorder.Ended()
	if len(spans) != 2 {
		t.Fatalf("expected 2 spans, got %d", len(spans))
	}
	if spans[0].Name() != SpanFactory {
		t.Errorf("expected span %s, got %s", SpanFactory, spans[0].Name())
	}
	if d := spans[0].EndTime().Sub(spans[0].StartTime()); d != 5*time.Millisecond {
		t.Errorf("expected span to cover the factory call, got %v", d)
	}
	if spans[1].Status().Code != codes.Error {
		t.Errorf("expected error status on failed call, got %v", spans[1].Status())
	}

	var entry, containerID string
	for _, kv := range spans[0].Attributes() {
		switch kv.Key {
		case AttrEntry:
			entry = kv.Value.AsString()
		case AttrContainerID:
			containerID = kv.Value.AsString()
		}
	}
	if entry != "db" || containerID != "app" {
		t.Errorf("unexpected span attributes: %v", spans[0].Attributes())
	}

	if got := h.counter(t, MetricFactoryCalls); got != 2 {
		t.Errorf("expected 2 factory calls, got %d", got)
	}
}

func TestObserverWiredIntoContainer(t *testing.T) {
	h := newHarness(t)
	c, err := container.New(container.WithLogger(logger.NewNop()), container.WithObserver(h.observer))
	if err != nil {
		t.Fatalf("container.New failed: %v", err)
	}
	_ = c.Register("db", func() string { return "conn" })
	_, _ = c.Get("db", nil)
	_, _ = c.Get("db", nil)

	if got := h.counter(t, MetricCacheMisses); got != 1 {
		t.Errorf("expected 1 miss, got %d", got)
	}
	if got := h.counter(t, MetricCacheHits); got != 1 {
		t.Errorf("expected 1 hit, got %d", got)
	}
	if n := len(h.recorder.Ended()); n != 1 {
		t.Errorf("expected one factory span, got %d", n)
	}
}

func TestServiceHealth(t *testing.T) {
	sh := NewServiceHealth("faber", "1.0.0")
	sh.AddComponent(Health{Name: "a", Status: HealthStatusUp})
	if sh.Status != HealthStatusUp {
		t.Errorf("expected up, got %s", sh.Status)
	}
	sh.AddComponent(Health{Name: "b", Status: HealthStatusDegraded})
	if sh.Status != HealthStatusDegraded {
		t.Errorf("expected degraded, got %s", sh.Status)
	}
	sh.AddComponent(Health{Name: "c", Status: HealthStatusDown})
	sh.AddComponent(Health{Name: "d", Status: HealthStatusDegraded})
	if sh.Status != HealthStatusDown {
		t.Errorf("expected down to stick, got %s", sh.Status)
	}
}

func TestContainerHealth(t *testing.T) {
	c := container.MustNew(container.WithID("app"), container.WithLogger(logger.NewNop()))
	if h := ContainerHealth(c); h.Status != HealthStatusDegraded {
		t.Errorf("expected empty container to be degraded, got %s", h.Status)
	}
	_ = c.Register("greeting", "hi")
	_ = c.Freeze("greeting")
	h := ContainerHealth(c)
	if h.Status != HealthStatusUp || h.Name != "app" {
		t.Errorf("unexpected health: %+v", h)
	}
	if h.Details["entries"] != "1" || h.Details["frozen"] != "1" {
		t.Errorf("unexpected details: %v", h.Details)
	}
}
