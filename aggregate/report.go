package aggregate

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// JSON marshals the export contract verbatim (§4.H): {metadata, baselines,
// scaling_curves, per_scenario}.
func (s *Summary) JSON() ([]byte, error) {
	out, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("aggregate: marshal summary: %w", err)
	}
	return out, nil
}

// Markdown renders the same Summary as a human report: header, baselines,
// scaling curves, per-level breakdown, worst scenarios, and failed-outcome
// details. Renderers are thin and accept the JSON shape verbatim — this
// method reads only Summary's exported fields plus the unexported rollups
// Build already computed.
func (s *Summary) Markdown() string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", s.Metadata.BenchmarkName)
	fmt.Fprintf(&b, "Run: `%s`  Agent: `%s`  Config: `%s`  Seed: `%d`  Scenarios: %d\n\n",
		s.Metadata.RunID, s.Metadata.AgentID, s.Metadata.ConfigHash, s.Metadata.Seed, s.Metadata.ScenarioCount)

	b.WriteString("## Baselines\n\n")
	writeBaselineTable(&b, "Random", s.Baselines.Random)
	writeBaselineTable(&b, "Always-reply", s.Baselines.AlwaysReply)

	b.WriteString("## Scaling Curves\n\n")
	configs := make([]string, 0, len(s.ScalingCurves))
	for c := range s.ScalingCurves {
		configs = append(configs, c)
	}
	sort.Strings(configs)
	for _, cfg := range configs {
		fmt.Fprintf(&b, "### %s\n\n", cfg)
		b.WriteString("| scale | score | latency_ms | count |\n|---|---|---|---|\n")
		for _, p := range s.ScalingCurves[cfg] {
			fmt.Fprintf(&b, "| %s | %.3f | %.1f | %d |\n", p.ScaleLabel, p.Score, p.LatencyMs, p.Count)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Per-Level Breakdown\n\n")
	b.WriteString("| level | mean_score | count |\n|---|---|---|\n")
	for _, l := range s.levels {
		fmt.Fprintf(&b, "| %d | %.3f | %d |\n", l.Level, l.MeanScore, l.Count)
	}
	b.WriteString("\n")

	b.WriteString("## Worst Scenarios\n\n")
	b.WriteString("| scenario | score | latency_ms | error |\n|---|---|---|---|\n")
	for _, w := range s.worst {
		fmt.Fprintf(&b, "| %s | %.3f | %d | %s |\n", w.ScenarioID, w.Score, w.TotalLatencyMs, w.Error)
	}
	b.WriteString("\n")

	b.WriteString("## Failed Outcomes\n\n")
	if len(s.failures) == 0 {
		b.WriteString("None.\n")
	} else {
		b.WriteString("| outcome_kind | category | count |\n|---|---|---|\n")
		for _, f := range s.failures {
			fmt.Fprintf(&b, "| %s | %s | %d |\n", f.OutcomeKind, f.Category, f.Count)
		}
	}

	return b.String()
}

func writeBaselineTable(b *strings.Builder, label string, points []BaselinePoint) {
	fmt.Fprintf(b, "**%s**\n\n", label)
	if len(points) == 0 {
		b.WriteString("No scenarios.\n\n")
		return
	}
	var sum float64
	for _, p := range points {
		sum += p.Score
	}
	fmt.Fprintf(b, "Mean score: %.3f (%d scenarios)\n\n", sum/float64(len(points)), len(points))
}
