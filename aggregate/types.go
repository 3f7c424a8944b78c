package aggregate

import "github.com/agentbench/harness/runner"

// RunRecord is the aggregate record for one orchestrator invocation (§3):
// every ScenarioResult it produced plus the baselines and run identity
// needed to reproduce it.
type RunRecord struct {
	RunID         string                   `json:"run_id"`
	BenchmarkName string                   `json:"benchmark_name"`
	AgentID       string                   `json:"agent_id"`
	ConfigHash    string                   `json:"config_hash"`
	Seed          int64                    `json:"seed"`
	StartedAt     int64                    `json:"started_at_ms"`
	CompletedAt   int64                    `json:"completed_at_ms"`
	ScenarioResults []runner.ScenarioResult `json:"scenario_results"`
	Baselines     BaselineSet              `json:"baselines"`
}

// BaselineSet holds the two deterministic reference runs every benchmark
// invocation computes alongside the real agent run.
type BaselineSet struct {
	Random      []BaselinePoint `json:"random"`
	AlwaysReply []BaselinePoint `json:"always_reply"`
}

// BaselinePoint is one baseline's score against one scenario.
type BaselinePoint struct {
	ScenarioID string  `json:"scenario_id"`
	Score      float64 `json:"score"`
}

// ScalingPoint is one (config, scale_point) cell of the scaling curve.
type ScalingPoint struct {
	ScaleLabel string  `json:"scale_label"`
	Score      float64 `json:"score"`
	LatencyMs  float64 `json:"latency_ms"`
	Count      int     `json:"count"`
}

// PerScenarioSummary is the per-scenario rollup keyed by scenario id in the
// export contract.
type PerScenarioSummary struct {
	Score     float64  `json:"score"`
	LatencyMs int64    `json:"latency_ms"`
	Actions   []string `json:"actions"`
}

// FailureCount is one (outcome_kind, category) bucket in the failure
// breakdown. Only counts are emitted, per §4.H.
type FailureCount struct {
	OutcomeKind string `json:"outcome_kind"`
	Category    string `json:"category"`
	Count       int    `json:"count"`
}

// LevelBreakdown is the per-scenario-level rollup used by the Markdown
// report's "per-level breakdown" section.
type LevelBreakdown struct {
	Level     int     `json:"level"`
	MeanScore float64 `json:"mean_score"`
	Count     int     `json:"count"`
}

// Summary is the full export contract (§4.H): metadata, baselines, the
// per-config scaling curves, and the per-scenario rollup.
type Summary struct {
	Metadata      Metadata                   `json:"metadata"`
	Baselines     BaselineSet                `json:"baselines"`
	ScalingCurves map[string][]ScalingPoint  `json:"scaling_curves"`
	PerScenario   map[string]PerScenarioSummary `json:"per_scenario"`

	levels    []LevelBreakdown
	worst     []runner.ScenarioResult
	failures  []FailureCount
}

// Metadata identifies the run a Summary was built from.
type Metadata struct {
	RunID         string `json:"run_id"`
	BenchmarkName string `json:"benchmark_name"`
	AgentID       string `json:"agent_id"`
	ConfigHash    string `json:"config_hash"`
	Seed          int64  `json:"seed"`
	ScenarioCount int    `json:"scenario_count"`
}
