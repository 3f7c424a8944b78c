package runner

import "github.com/agentbench/harness/eval"

// ScenarioResult is the outcome of one Runner.RunScenario call: one
// ordered TurnResult per non-skipped turn (or a non-empty Error and a
// short TurnResults slice if the scenario aborted early).
type ScenarioResult struct {
	ScenarioID     string           `json:"scenario_id"`
	ScalePoint     string           `json:"scale_point"`
	ConfigName     string           `json:"config_name"`
	Trial          int              `json:"trial"`
	TurnResults    []eval.TurnResult `json:"turn_results"`
	Score          float64          `json:"score"`
	TotalLatencyMs int64            `json:"total_latency_ms"`
	Error          string           `json:"error,omitempty"`
	TraceID        string           `json:"trace_id"`
}
