package aggregate

import (
	"sort"

	"github.com/agentbench/harness/eval"
	"github.com/agentbench/harness/runner"
	"github.com/agentbench/harness/scenario"
)

// Build rolls run up into a Summary, looking up each ScenarioResult's
// scenario in scenarios for category/level/tag grouping.
func Build(run RunRecord, scenarios []scenario.Scenario) *Summary {
	byID := make(map[string]scenario.Scenario, len(scenarios))
	for _, s := range scenarios {
		byID[s.ID] = s
	}

	s := &Summary{
		Metadata: Metadata{
			RunID:         run.RunID,
			BenchmarkName: run.BenchmarkName,
			AgentID:       run.AgentID,
			ConfigHash:    run.ConfigHash,
			Seed:          run.Seed,
			ScenarioCount: len(run.ScenarioResults),
		},
		Baselines:     run.Baselines,
		ScalingCurves: scalingCurves(run.ScenarioResults),
		PerScenario:   perScenario(run.ScenarioResults),
	}
	s.levels = levelBreakdown(run.ScenarioResults, byID)
	s.worst = worstScenarios(run.ScenarioResults, 10)
	s.failures = failureBreakdown(run.ScenarioResults, byID)
	return s
}

// scalingCurves groups by ConfigName, then by ScalePoint label, computing
// mean score, mean latency and count per cell (§4.H).
func scalingCurves(results []runner.ScenarioResult) map[string][]ScalingPoint {
	type cell struct {
		scoreSum, latencySum float64
		count                int
	}
	byConfig := make(map[string]map[string]*cell)

	for _, r := range results {
		cfg := byConfig[r.ConfigName]
		if cfg == nil {
			cfg = make(map[string]*cell)
			byConfig[r.ConfigName] = cfg
		}
		c := cfg[r.ScalePoint]
		if c == nil {
			c = &cell{}
			cfg[r.ScalePoint] = c
		}
		c.scoreSum += r.Score
		c.latencySum += float64(r.TotalLatencyMs)
		c.count++
	}

	out := make(map[string][]ScalingPoint, len(byConfig))
	for cfg, cells := range byConfig {
		labels := make([]string, 0, len(cells))
		for label := range cells {
			labels = append(labels, label)
		}
		sort.Strings(labels)

		points := make([]ScalingPoint, 0, len(labels))
		for _, label := range labels {
			c := cells[label]
			points = append(points, ScalingPoint{
				ScaleLabel: label,
				Score:      c.scoreSum / float64(c.count),
				LatencyMs:  c.latencySum / float64(c.count),
				Count:      c.count,
			})
		}
		out[cfg] = points
	}
	return out
}

func perScenario(results []runner.ScenarioResult) map[string]PerScenarioSummary {
	out := make(map[string]PerScenarioSummary, len(results))
	for _, r := range results {
		var actions []string
		for _, t := range r.TurnResults {
			actions = append(actions, t.SelectedActions...)
		}
		out[r.ScenarioID] = PerScenarioSummary{
			Score:     r.Score,
			LatencyMs: r.TotalLatencyMs,
			Actions:   actions,
		}
	}
	return out
}

func levelBreakdown(results []runner.ScenarioResult, byID map[string]scenario.Scenario) []LevelBreakdown {
	type acc struct {
		sum   float64
		count int
	}
	byLevel := make(map[int]*acc)
	for _, r := range results {
		level := byID[r.ScenarioID].Level
		a := byLevel[level]
		if a == nil {
			a = &acc{}
			byLevel[level] = a
		}
		a.sum += r.Score
		a.count++
	}
	levels := make([]int, 0, len(byLevel))
	for l := range byLevel {
		levels = append(levels, l)
	}
	sort.Ints(levels)

	out := make([]LevelBreakdown, 0, len(levels))
	for _, l := range levels {
		a := byLevel[l]
		out = append(out, LevelBreakdown{Level: l, MeanScore: a.sum / float64(a.count), Count: a.count})
	}
	return out
}

// worstScenarios returns up to n ScenarioResults with the lowest score,
// ties broken by scenario id for determinism.
func worstScenarios(results []runner.ScenarioResult, n int) []runner.ScenarioResult {
	sorted := make([]runner.ScenarioResult, len(results))
	copy(sorted, results)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Score != sorted[j].Score {
			return sorted[i].Score < sorted[j].Score
		}
		return sorted[i].ScenarioID < sorted[j].ScenarioID
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// failureBreakdown groups failed OutcomeResults by outcome kind and
// scenario category, emitting counts only (§4.H).
func failureBreakdown(results []runner.ScenarioResult, byID map[string]scenario.Scenario) []FailureCount {
	type key struct {
		kind, category string
	}
	counts := make(map[key]int)
	for _, r := range results {
		category := byID[r.ScenarioID].Category
		for _, t := range r.TurnResults {
			for _, o := range t.OutcomeResults {
				if o.Passed {
					continue
				}
				k := key{kind: string(o.Outcome.Kind), category: category}
				counts[k]++
			}
		}
	}
	out := make([]FailureCount, 0, len(counts))
	for k, c := range counts {
		out = append(out, FailureCount{OutcomeKind: k.kind, Category: k.category, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].OutcomeKind != out[j].OutcomeKind {
			return out[i].OutcomeKind < out[j].OutcomeKind
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// scoreAll is a convenience used by baseline computation to turn a slice of
// TurnResults straight into a scenario score; turns without OutcomeResults
// are not scored.
func scoreAll(turnResults []eval.TurnResult) float64 {
	scores := make([]float64, 0, len(turnResults))
	for _, t := range turnResults {
		if len(t.OutcomeResults) > 0 {
			scores = append(scores, eval.TurnScore(t.OutcomeResults))
		}
	}
	return eval.ScenarioScore(scores)
}
