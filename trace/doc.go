// Package trace holds the append-only decision trace: the primary durable
// artifact of a scenario run. A Trace is owned exclusively by the runner
// goroutine driving one scenario (no locks); it is flushed to the
// Aggregator and to a durable JSONL file when the scenario completes, and
// may optionally be mirrored live over Redis pub/sub and emitted as
// OpenTelemetry spans/metrics.
package trace
