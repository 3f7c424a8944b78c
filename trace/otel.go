package trace

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	otrace "go.opentelemetry.io/otel/trace"
)

// Recorder emits each appended Step as an OpenTelemetry span plus a counter
// and latency histogram. A Runner creates
// one Recorder span per turn (via StartTurn) and records every Step emitted
// while that span is active as a child span.
type Recorder struct {
	tracer otrace.Tracer
	meter  metric.Meter

	stepCounter   metric.Int64Counter
	latencyHisto  metric.Float64Histogram
}

// NewRecorder builds a Recorder. Either tracer or meter may be nil, in
// which case the corresponding instrumentation is skipped.
func NewRecorder(tracer otrace.Tracer, meter metric.Meter) (*Recorder, error) {
	r := &Recorder{tracer: tracer, meter: meter}
	if meter != nil {
		var err error
		r.stepCounter, err = meter.Int64Counter(
			"harness.trace.step.count",
			metric.WithDescription("Number of decision-trace steps recorded"),
			metric.WithUnit("1"),
		)
		if err != nil {
			return nil, fmt.Errorf("trace: create step counter: %w", err)
		}
		r.latencyHisto, err = meter.Float64Histogram(
			"harness.trace.step.latency_ms",
			metric.WithDescription("Latency of the operation a trace step records"),
			metric.WithUnit("ms"),
		)
		if err != nil {
			return nil, fmt.Errorf("trace: create latency histogram: %w", err)
		}
	}
	return r, nil
}

// StartTurn opens one span covering an entire scenario turn. Callers must
// call the returned End func once the turn's trace steps have all been
// recorded.
func (r *Recorder) StartTurn(ctx context.Context, scenarioID string, turnIndex int) (context.Context, func()) {
	if r == nil || r.tracer == nil {
		return ctx, func() {}
	}
	ctx, span := r.tracer.Start(ctx, "harness.turn",
		otrace.WithAttributes(
			attribute.String("scenario.id", scenarioID),
			attribute.Int("turn.index", turnIndex),
		),
	)
	return ctx, span.End
}

// Record emits step as a child span (if a span is active on ctx) and
// records its latency/count metrics.
func (r *Recorder) Record(ctx context.Context, step Step) {
	if r == nil {
		return
	}
	if r.tracer != nil {
		_, span := r.tracer.Start(ctx, "harness.trace_step",
			otrace.WithAttributes(
				attribute.String("step.kind", string(step.Kind)),
				attribute.String("step.actor", string(step.Actor)),
				attribute.Int64("step.latency_ms", step.LatencyMs),
			),
		)
		span.End()
	}
	if r.meter != nil {
		attrs := metric.WithAttributes(
			attribute.String("step.kind", string(step.Kind)),
			attribute.String("step.actor", string(step.Actor)),
		)
		if r.stepCounter != nil {
			r.stepCounter.Add(ctx, 1, attrs)
		}
		if r.latencyHisto != nil && step.LatencyMs > 0 {
			r.latencyHisto.Record(ctx, float64(step.LatencyMs), attrs)
		}
	}
}
