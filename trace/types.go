package trace

// StepKind is the closed set of decision-trace record kinds (§3).
type StepKind string

const (
	StepObserve        StepKind = "OBSERVE"
	StepComposeState   StepKind = "COMPOSE_STATE"
	StepModelCall      StepKind = "MODEL_CALL"
	StepActionSelected StepKind = "ACTION_SELECTED"
	StepActionExecuted StepKind = "ACTION_EXECUTED"
	StepEnvStep        StepKind = "ENV_STEP"
	StepEvaluation     StepKind = "EVALUATION"
)

// Actor identifies who produced a Step.
type Actor string

const (
	ActorAgent     Actor = "agent"
	ActorEnv       Actor = "env"
	ActorEvaluator Actor = "evaluator"
)

// Step is one structured record in the append-only decision log.
type Step struct {
	TimestampMs int64    `json:"ts_ms"`
	SeqNo       int64    `json:"seq_no"`
	Kind        StepKind `json:"step_kind"`
	Actor       Actor    `json:"actor"`
	LatencyMs   int64    `json:"latency_ms"`
	Payload     any      `json:"payload,omitempty"`
}
