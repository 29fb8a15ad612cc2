package observe

import (
	"context"
	"time"
)

// Hooks receives lifecycle callbacks from a query memoizer. Implementations
// fan the events out to tracing, metrics, and logging.
//
// Contract:
//   - Concurrency: implementations must be safe for concurrent use.
//   - Context: StartBuild may derive a new context (tracing span); callers
//     must use the returned context for the build and call the returned
//     function exactly once when the build finishes.
//   - Errors: hooks are best-effort and must not panic; they never alter
//     the caller's control flow.
type Hooks interface {
	// StartBuild marks the start of a template build. The returned
	// function ends the build with its error, if any.
	StartBuild(ctx context.Context, meta QueryMeta) (context.Context, func(error))

	// OnLookup reports one completed lookup: how it was served, how long
	// the whole operation took, and its error status.
	OnLookup(ctx context.Context, meta QueryMeta, outcome Outcome, duration time.Duration, err error)

	// OnDivergence reports a detected divergence between the lazy and
	// concrete runs of a builder.
	OnDivergence(ctx context.Context, meta QueryMeta, err error)
}

// observerHooks is the concrete implementation of Hooks.
type observerHooks struct {
	tracer  Tracer
	metrics Metrics
	logger  Logger
}

// NewHooks creates Hooks from the given observability components.
func NewHooks(tracer Tracer, metrics Metrics, logger Logger) Hooks {
	return &observerHooks{
		tracer:  tracer,
		metrics: metrics,
		logger:  logger,
	}
}

// HooksFromObserver creates Hooks from an Observer.
// This is a convenience function for common use cases.
func HooksFromObserver(obs Observer) (Hooks, error) {
	if obs == nil {
		return nil, ErrNilObserver
	}

	tracer := newTracer(obs.Tracer())

	metrics, err := newMetrics(obs.Meter())
	if err != nil {
		return nil, err
	}

	return NewHooks(tracer, metrics, obs.Logger()), nil
}

// StartBuild opens a span for the build and returns its completion function.
func (h *observerHooks) StartBuild(ctx context.Context, meta QueryMeta) (context.Context, func(error)) {
	ctx, span := h.tracer.StartSpan(ctx, meta)
	start := time.Now()

	return ctx, func(err error) {
		duration := time.Since(start)

		h.tracer.EndSpan(span, err)
		h.metrics.RecordBuild(ctx, meta, duration, err)

		queryLogger := h.logger.WithQuery(meta)
		fields := []Field{
			{Key: "duration_ms", Value: float64(duration.Milliseconds())},
		}
		if err != nil {
			fields = append(fields, Field{Key: "error", Value: err.Error()})
			queryLogger.Error(ctx, "template build failed", fields...)
		} else {
			queryLogger.Info(ctx, "template build completed", fields...)
		}
	}
}

// OnLookup records lookup metrics and logs the outcome.
func (h *observerHooks) OnLookup(ctx context.Context, meta QueryMeta, outcome Outcome, duration time.Duration, err error) {
	h.metrics.RecordLookup(ctx, meta, outcome, duration, err)

	queryLogger := h.logger.WithQuery(meta)
	fields := []Field{
		{Key: "outcome", Value: string(outcome)},
		{Key: "duration_ms", Value: float64(duration.Milliseconds())},
	}
	if err != nil {
		fields = append(fields, Field{Key: "error", Value: err.Error()})
		queryLogger.Error(ctx, "query lookup failed", fields...)
	} else {
		queryLogger.Debug(ctx, "query lookup completed", fields...)
	}
}

// OnDivergence records the divergence and logs it at error level.
func (h *observerHooks) OnDivergence(ctx context.Context, meta QueryMeta, err error) {
	h.metrics.RecordDivergence(ctx, meta)

	queryLogger := h.logger.WithQuery(meta)
	fields := []Field{}
	if err != nil {
		fields = append(fields, Field{Key: "error", Value: err.Error()})
	}
	queryLogger.Error(ctx, "query build diverged", fields...)
}

// NopHooks is a Hooks implementation that does nothing. It is the default
// when no observability is wired.
type NopHooks struct{}

func (NopHooks) StartBuild(ctx context.Context, meta QueryMeta) (context.Context, func(error)) {
	return ctx, func(error) {}
}

func (NopHooks) OnLookup(ctx context.Context, meta QueryMeta, outcome Outcome, duration time.Duration, err error) {
}

func (NopHooks) OnDivergence(ctx context.Context, meta QueryMeta, err error) {}

var _ Hooks = (*observerHooks)(nil)
var _ Hooks = NopHooks{}
