package trace

import (
	"sort"
	"time"
)

// Trace is the per-scenario, append-only decision log. It is exclusively
// owned by the runner goroutine driving that scenario — no internal
// locking — and is totally ordered by TimestampMs, ties broken by
// insertion order (SeqNo).
type Trace struct {
	ScenarioID string
	RunID      string

	steps []Step
	seq   int64
	clock func() time.Time
}

// New returns an empty Trace for scenarioID within runID.
func New(runID, scenarioID string) *Trace {
	return &Trace{RunID: runID, ScenarioID: scenarioID, clock: time.Now}
}

// WithClock overrides the time source, for deterministic tests.
func (t *Trace) WithClock(clock func() time.Time) *Trace {
	t.clock = clock
	return t
}

// Append records one Step and returns it. latency is the duration the
// recorded operation took; pass 0 if not applicable.
func (t *Trace) Append(kind StepKind, actor Actor, latency time.Duration, payload any) Step {
	clock := t.clock
	if clock == nil {
		clock = time.Now
	}
	t.seq++
	step := Step{
		TimestampMs: clock().UnixMilli(),
		SeqNo:       t.seq,
		Kind:        kind,
		Actor:       actor,
		LatencyMs:   latency.Milliseconds(),
		Payload:     payload,
	}
	t.steps = append(t.steps, step)
	return step
}

// Steps returns every recorded step, totally ordered. The returned slice is
// a defensive copy.
func (t *Trace) Steps() []Step {
	out := make([]Step, len(t.steps))
	copy(out, t.steps)
	// steps are appended in order already; Sort is a defensive no-op that
	// documents and enforces the total-order invariant (§3) even if a
	// future caller appends out of timestamp order (e.g. from clock skew
	// across goroutines composing state concurrently).
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].TimestampMs != out[j].TimestampMs {
			return out[i].TimestampMs < out[j].TimestampMs
		}
		return out[i].SeqNo < out[j].SeqNo
	})
	return out
}

// Len reports the number of recorded steps.
func (t *Trace) Len() int { return len(t.steps) }

// Truncate drops every step after the first n. Nothing in the harness calls
// it on a timeout; a timed-out trace keeps every step recorded so far.
func (t *Trace) Truncate(n int) {
	if n < len(t.steps) {
		t.steps = t.steps[:n]
	}
}
