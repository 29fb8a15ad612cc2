package observe

import (
	"context"
	"testing"
	"time"
)

func TestObserverContract_Noops(t *testing.T) {
	cfg := Config{
		ServiceName: "observe-test",
		Tracing: TracingConfig{
			Enabled:  false,
			Exporter: "none",
		},
		Metrics: MetricsConfig{
			Enabled:  false,
			Exporter: "none",
		},
		Logging: LoggingConfig{
			Enabled: false,
			Level:   "info",
		},
	}

	obs, err := NewObserver(context.Background(), cfg)
	if err != nil {
		t.Fatalf("NewObserver failed: %v", err)
	}

	if obs.Tracer() == nil {
		t.Fatalf("expected non-nil tracer")
	}
	if obs.Meter() == nil {
		t.Fatalf("expected non-nil meter")
	}
	if obs.Logger() == nil {
		t.Fatalf("expected non-nil logger")
	}
}

func TestLoggerContract_WithQuery(t *testing.T) {
	logger := &noopLogger{}
	if logger.WithQuery(QueryMeta{Name: "noop"}) == nil {
		t.Fatalf("WithQuery should return non-nil logger")
	}
}

func TestMetricsContract_NoPanic(t *testing.T) {
	metrics := &noopMetrics{}
	ctx := context.Background()
	meta := QueryMeta{Name: "noop"}

	metrics.RecordLookup(ctx, meta, OutcomeHit, 10*time.Millisecond, nil)
	metrics.RecordBuild(ctx, meta, 10*time.Millisecond, nil)
	metrics.RecordDivergence(ctx, meta)
}

func TestTracerContract_NoPanic(t *testing.T) {
	tracer := newNoopTracer()
	ctx := context.Background()
	_, span := tracer.StartSpan(ctx, QueryMeta{Name: "noop"})
	tracer.EndSpan(span, nil)
}
