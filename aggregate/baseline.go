package aggregate

import (
	"math/rand"

	"github.com/agentbench/harness/eval"
	"github.com/agentbench/harness/pipeline"
	"github.com/agentbench/harness/scenario"
)

// policyFunc picks an action name for a turn without consulting a model or
// environment; it is how a baseline stands in for the real pipeline.
type policyFunc func(turn scenario.Turn) string

// ComputeBaselines scores every scenario against the random and
// always-reply baselines (§4.H), deterministic given seed.
func ComputeBaselines(scenarios []scenario.Scenario, actionCatalog []string, reg *eval.CustomRegistry, seed int64) BaselineSet {
	rng := rand.New(rand.NewSource(seed))
	random := randomActionPolicy(rng, actionCatalog)

	var set BaselineSet
	for _, s := range scenarios {
		set.Random = append(set.Random, BaselinePoint{ScenarioID: s.ID, Score: scoreScenario(s, reg, random)})
		set.AlwaysReply = append(set.AlwaysReply, BaselinePoint{ScenarioID: s.ID, Score: scoreScenario(s, reg, alwaysReplyPolicy)})
	}
	return set
}

func randomActionPolicy(rng *rand.Rand, catalog []string) policyFunc {
	return func(scenario.Turn) string {
		if len(catalog) == 0 {
			return pipeline.Reply
		}
		return catalog[rng.Intn(len(catalog))]
	}
}

func alwaysReplyPolicy(scenario.Turn) string { return pipeline.Reply }

// scoreScenario runs policy over s's non-system turns and scores the
// resulting synthetic TurnResults the same way a real run would be scored.
func scoreScenario(s scenario.Scenario, reg *eval.CustomRegistry, policy policyFunc) float64 {
	var turnResults []eval.TurnResult
	for i, turn := range s.Turns {
		if turn.Actor == scenario.ActorSystem {
			continue
		}
		tr := eval.TurnResult{TurnIndex: i, SelectedActions: []string{policy(turn)}}

		outcomes := make([]scenario.ExpectedOutcome, 0, len(turn.ExpectedOutcomes)+len(turn.ForbiddenOutcomes))
		outcomes = append(outcomes, turn.ExpectedOutcomes...)
		outcomes = append(outcomes, turn.ForbiddenOutcomes...)
		if len(outcomes) > 0 {
			tr.OutcomeResults = eval.Evaluate(tr, outcomes, reg)
		}
		turnResults = append(turnResults, tr)
	}
	return scoreAll(turnResults)
}
