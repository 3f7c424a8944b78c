// Package harness is the scenario-driven agent evaluation harness: a
// declarative scenario model, a turn loop that routes every decision
// through a single message pipeline, a decision-trace collector, and the
// evaluator/aggregator that turn traces into scored, comparable reports.
package harness

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
)

// Sentinel errors for common harness error conditions. Usable with
// errors.Is().
var (
	// ErrScenarioNotFound indicates a requested scenario id is not in the repository.
	ErrScenarioNotFound = errors.New("scenario not found")

	// ErrNoSafeDefault indicates no REPLY/WAIT/NOOP action is registered with
	// the pipeline's action registry; pipeline construction fails fast on this.
	ErrNoSafeDefault = errors.New("no safe-default action (REPLY/WAIT/NOOP) registered")

	// ErrCancelled indicates the run was cancelled via the cooperative cancel token.
	ErrCancelled = errors.New("run cancelled")
)

// Error kinds mirror the taxonomy of spec §7: a closed set of categories,
// not Go error types. Only KindConfiguration and KindInvariant ever
// propagate out of the runner; the rest are recorded on
// TurnResult/ScenarioResult.Error.
const (
	// KindConfiguration covers malformed scenarios, unknown actions, and
	// unresolvable providers. Fatal at startup.
	KindConfiguration = "configuration"

	// KindDriverInfrastructure covers an environment that failed to start or
	// a Step that raised. The affected scenario is marked with an error; the
	// runner continues to the next scenario.
	KindDriverInfrastructure = "driver_infrastructure"

	// KindModelHandler covers upstream API errors and timeouts. Retried with
	// backoff; on exhaustion the pipeline degrades to the safe-default
	// action. Never fatal.
	KindModelHandler = "model_handler"

	// KindActionHandler covers a handler that raised or returned
	// success=false. Recorded on the TurnResult; outcomes are still
	// evaluated against whatever was produced.
	KindActionHandler = "action_handler"

	// KindOutcomeEvaluation covers an unknown outcome kind: recorded as a
	// failed OutcomeResult, never halts the run.
	KindOutcomeEvaluation = "outcome_evaluation"

	// KindCancellation covers cooperative cancellation; produces partial but
	// valid results.
	KindCancellation = "cancellation"

	// KindInvariant covers internal bugs (e.g. a turn produced no action and
	// no default). Fatal; the run aborts with the scenario id and trace
	// location.
	KindInvariant = "invariant_violation"
)

// SDKError is a structured error that wraps an underlying error with the
// operation that failed and which of the seven §7 categories it falls
// into. It implements the error interface and supports errors.Is/As.
type SDKError struct {
	// Op is the operation that failed (e.g. "Pipeline.Decide", "Runner.RunScenario").
	Op string

	// Kind is one of the Kind* constants above.
	Kind string

	// Err is the underlying error.
	Err error

	// Context carries diagnostic fields (scenario_id, turn_index, run_id, ...).
	Context map[string]any
}

// Error implements the error interface.
func (e *SDKError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("harness: %s: %s", e.Op, e.Kind)
	}
	if len(e.Context) > 0 {
		return fmt.Sprintf("harness: %s (%s): %v [context: %+v]", e.Op, e.Kind, e.Err, e.Context)
	}
	return fmt.Sprintf("harness: %s (%s): %v", e.Op, e.Kind, e.Err)
}

// Unwrap returns the underlying error.
func (e *SDKError) Unwrap() error {
	return e.Err
}

// Is allows comparison by Kind (and, if set, Op) against another SDKError,
// falling back to delegating to the wrapped error.
func (e *SDKError) Is(target error) bool {
	if target == nil {
		return false
	}
	if t, ok := target.(*SDKError); ok {
		if t.Kind != "" && e.Kind == t.Kind {
			if t.Op == "" || e.Op == t.Op {
				return true
			}
		}
	}
	return errors.Is(e.Err, target)
}

// WithContext returns a copy of e with ctx merged into Context.
func (e *SDKError) WithContext(ctx map[string]any) *SDKError {
	cp := *e
	cp.Context = make(map[string]any, len(e.Context)+len(ctx))
	for k, v := range e.Context {
		cp.Context[k] = v
	}
	for k, v := range ctx {
		cp.Context[k] = v
	}
	return &cp
}

// Propagates reports whether an error of this Kind is allowed to leave the
// runner per §7's propagation policy: only configuration and invariant
// violations do.
func (e *SDKError) Propagates() bool {
	return e.Kind == KindConfiguration || e.Kind == KindInvariant
}

func newKindError(op, kind string, err error) *SDKError {
	return &SDKError{Op: op, Kind: kind, Err: err}
}

// NewConfigurationError builds a fatal-at-startup KindConfiguration error.
func NewConfigurationError(op string, err error) *SDKError {
	return newKindError(op, KindConfiguration, err)
}

// NewDriverInfrastructureError builds a KindDriverInfrastructure error.
func NewDriverInfrastructureError(op string, err error) *SDKError {
	return newKindError(op, KindDriverInfrastructure, err)
}

// NewModelHandlerError builds a KindModelHandler error.
func NewModelHandlerError(op string, err error) *SDKError {
	return newKindError(op, KindModelHandler, err)
}

// NewActionHandlerError builds a KindActionHandler error.
func NewActionHandlerError(op string, err error) *SDKError {
	return newKindError(op, KindActionHandler, err)
}

// NewOutcomeEvaluationError builds a KindOutcomeEvaluation error.
func NewOutcomeEvaluationError(op string, err error) *SDKError {
	return newKindError(op, KindOutcomeEvaluation, err)
}

// NewCancellationError builds a KindCancellation error.
func NewCancellationError(op string, err error) *SDKError {
	return newKindError(op, KindCancellation, err)
}

// NewInvariantError builds a fatal KindInvariant error.
func NewInvariantError(op string, err error) *SDKError {
	return newKindError(op, KindInvariant, err)
}

// CloseWithLog closes closer and logs any error at warning level instead of
// discarding it, for use in defer statements. If logger is nil,
// slog.Default() is used.
func CloseWithLog(closer io.Closer, logger *slog.Logger, name string) {
	if closer == nil {
		return
	}
	if logger == nil {
		logger = slog.Default()
	}
	if err := closer.Close(); err != nil {
		logger.Warn("failed to close resource", "resource", name, "error", err)
	}
}
