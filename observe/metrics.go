package observe

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Outcome classifies how a template lookup was served.
type Outcome string

const (
	// OutcomeHit means the template was served from cache.
	OutcomeHit Outcome = "hit"
	// OutcomeMiss means the template had to be built.
	OutcomeMiss Outcome = "miss"
	// OutcomeBypass means memoization was disabled and the query was
	// built directly.
	OutcomeBypass Outcome = "bypass"
)

// Metrics records cache and build metrics for query templates.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Context: must honor cancellation/deadlines and return quickly.
// - Errors: implementations must not panic.
type Metrics interface {
	// RecordLookup records one template lookup with its outcome, total
	// duration, and error status.
	RecordLookup(ctx context.Context, meta QueryMeta, outcome Outcome, duration time.Duration, err error)

	// RecordBuild records one template build with duration and error status.
	RecordBuild(ctx context.Context, meta QueryMeta, duration time.Duration, err error)

	// RecordDivergence records one detected divergence between the lazy
	// and concrete runs of a builder.
	RecordDivergence(ctx context.Context, meta QueryMeta)
}

// metricsImpl is the concrete implementation of Metrics.
type metricsImpl struct {
	meter        metric.Meter
	lookupCount  metric.Int64Counter
	lookupHist   metric.Float64Histogram
	buildCount   metric.Int64Counter
	buildErrors  metric.Int64Counter
	buildHist    metric.Float64Histogram
	divergeCount metric.Int64Counter
}

// newMetrics creates a new Metrics instance with the given meter.
func newMetrics(meter metric.Meter) (*metricsImpl, error) {
	lookupCount, err := meter.Int64Counter(
		"preparedq.lookups",
		metric.WithDescription("Total number of template lookups"),
		metric.WithUnit("{lookup}"),
	)
	if err != nil {
		return nil, err
	}

	lookupHist, err := meter.Float64Histogram(
		"preparedq.lookup.duration_ms",
		metric.WithDescription("Template lookup duration in milliseconds, builds included"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	buildCount, err := meter.Int64Counter(
		"preparedq.builds",
		metric.WithDescription("Total number of template builds"),
		metric.WithUnit("{build}"),
	)
	if err != nil {
		return nil, err
	}

	buildErrors, err := meter.Int64Counter(
		"preparedq.build.errors",
		metric.WithDescription("Total number of failed template builds"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, err
	}

	buildHist, err := meter.Float64Histogram(
		"preparedq.build.duration_ms",
		metric.WithDescription("Template build duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	divergeCount, err := meter.Int64Counter(
		"preparedq.divergences",
		metric.WithDescription("Total number of detected build divergences"),
		metric.WithUnit("{divergence}"),
	)
	if err != nil {
		return nil, err
	}

	return &metricsImpl{
		meter:        meter,
		lookupCount:  lookupCount,
		lookupHist:   lookupHist,
		buildCount:   buildCount,
		buildErrors:  buildErrors,
		buildHist:    buildHist,
		divergeCount: divergeCount,
	}, nil
}

// attrs builds the common attribute set for meta.
func (m *metricsImpl) attrs(meta QueryMeta) []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		attribute.String("query.name", meta.Name),
	}
	if meta.Shape != "" {
		attrs = append(attrs, attribute.String("query.shape", meta.Shape))
	}
	return attrs
}

// RecordLookup records metrics for one template lookup.
func (m *metricsImpl) RecordLookup(ctx context.Context, meta QueryMeta, outcome Outcome, duration time.Duration, err error) {
	attrs := append(m.attrs(meta),
		attribute.String("query.outcome", string(outcome)),
		attribute.Bool("query.error", err != nil),
	)
	opt := metric.WithAttributes(attrs...)

	m.lookupCount.Add(ctx, 1, opt)
	m.lookupHist.Record(ctx, float64(duration.Milliseconds()), opt)
}

// RecordBuild records metrics for one template build.
func (m *metricsImpl) RecordBuild(ctx context.Context, meta QueryMeta, duration time.Duration, err error) {
	opt := metric.WithAttributes(m.attrs(meta)...)

	m.buildCount.Add(ctx, 1, opt)
	if err != nil {
		m.buildErrors.Add(ctx, 1, opt)
	}
	m.buildHist.Record(ctx, float64(duration.Milliseconds()), opt)
}

// RecordDivergence records one detected divergence.
func (m *metricsImpl) RecordDivergence(ctx context.Context, meta QueryMeta) {
	m.divergeCount.Add(ctx, 1, metric.WithAttributes(m.attrs(meta)...))
}

// noopMetrics is a metrics implementation that does nothing.
type noopMetrics struct{}

func (m *noopMetrics) RecordLookup(ctx context.Context, meta QueryMeta, outcome Outcome, duration time.Duration, err error) {
}

func (m *noopMetrics) RecordBuild(ctx context.Context, meta QueryMeta, duration time.Duration, err error) {
}

func (m *noopMetrics) RecordDivergence(ctx context.Context, meta QueryMeta) {}
