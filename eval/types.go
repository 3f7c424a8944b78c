package eval

import "github.com/agentbench/harness/scenario"

// TurnResult is the frozen record of one turn's pipeline decision and
// environment step, the input the Evaluator scores against a turn's
// ExpectedOutcomes.
type TurnResult struct {
	TurnIndex          int             `json:"turn_index"`
	SelectedActions    []string        `json:"selected_actions"`
	ResponseText       string          `json:"response_text"`
	ProvidersConsulted []string        `json:"providers_consulted"`
	OutcomeResults     []OutcomeResult `json:"outcome_results,omitempty"`
	LatencyMs          int64           `json:"latency_ms"`
	RawModelOutput     string          `json:"raw_model_output,omitempty"`
	Thought            string          `json:"thought,omitempty"`
}

// OutcomeResult is the immutable verdict for one ExpectedOutcome.
type OutcomeResult struct {
	Outcome     scenario.ExpectedOutcome `json:"outcome"`
	Passed      bool                     `json:"passed"`
	ActualValue string                   `json:"actual_value,omitempty"`
	Detail      string                   `json:"detail,omitempty"`
}

// TurnScore computes Σ(weight·passed)/Σ(weight), defaulting to 1.0 for an
// empty outcome list.
func TurnScore(results []OutcomeResult) float64 {
	if len(results) == 0 {
		return 1.0
	}
	var total, passed float64
	for _, r := range results {
		w := r.Outcome.EffectiveWeight()
		total += w
		if r.Passed {
			passed += w
		}
	}
	if total == 0 {
		return 1.0
	}
	return passed / total
}

// ScenarioScore is the arithmetic mean over scored-turn scores (turns whose
// outcome list is non-empty); 1.0 if there are none.
func ScenarioScore(turnScores []float64) float64 {
	if len(turnScores) == 0 {
		return 1.0
	}
	var sum float64
	for _, s := range turnScores {
		sum += s
	}
	return sum / float64(len(turnScores))
}
