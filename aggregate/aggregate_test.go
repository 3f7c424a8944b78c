package aggregate

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentbench/harness/eval"
	"github.com/agentbench/harness/runner"
	"github.com/agentbench/harness/scenario"
)

func sampleScenarios() []scenario.Scenario {
	return []scenario.Scenario{
		{ID: "s1", Level: 0, Category: "basic", Turns: []scenario.Turn{{Actor: scenario.ActorUser, Text: "x"}}},
		{ID: "s2", Level: 1, Category: "advanced", Turns: []scenario.Turn{{Actor: scenario.ActorUser, Text: "y"}}},
	}
}

func sampleRun() RunRecord {
	return RunRecord{
		RunID:         "run-1",
		BenchmarkName: "my-bench",
		AgentID:       "agent-a",
		ConfigHash:    "abc123",
		Seed:          42,
		ScenarioResults: []runner.ScenarioResult{
			{
				ScenarioID: "s1", ScalePoint: "small", ConfigName: "cfg-a",
				Score: 1.0, TotalLatencyMs: 100,
				TurnResults: []eval.TurnResult{
					{
						SelectedActions: []string{"CLICK"},
						OutcomeResults: []eval.OutcomeResult{
							{Outcome: scenario.ExpectedOutcome{Kind: scenario.ActionMatch}, Passed: true},
						},
					},
				},
			},
			{
				ScenarioID: "s2", ScalePoint: "small", ConfigName: "cfg-a",
				Score: 0.0, TotalLatencyMs: 200,
				TurnResults: []eval.TurnResult{
					{
						SelectedActions: []string{"WAIT"},
						OutcomeResults: []eval.OutcomeResult{
							{Outcome: scenario.ExpectedOutcome{Kind: scenario.ActionMatch}, Passed: false},
						},
					},
				},
			},
		},
	}
}

func TestBuildScalingCurves(t *testing.T) {
	s := Build(sampleRun(), sampleScenarios())
	require.Contains(t, s.ScalingCurves, "cfg-a")
	points := s.ScalingCurves["cfg-a"]
	require.Len(t, points, 1)
	assert.Equal(t, "small", points[0].ScaleLabel)
	assert.Equal(t, 0.5, points[0].Score)
	assert.Equal(t, 2, points[0].Count)
}

func TestBuildPerScenario(t *testing.T) {
	s := Build(sampleRun(), sampleScenarios())
	require.Contains(t, s.PerScenario, "s1")
	assert.Equal(t, 1.0, s.PerScenario["s1"].Score)
	assert.Equal(t, []string{"CLICK"}, s.PerScenario["s1"].Actions)
}

func TestBuildLevelAndFailureBreakdown(t *testing.T) {
	s := Build(sampleRun(), sampleScenarios())
	require.Len(t, s.levels, 2)
	require.Len(t, s.failures, 1)
	assert.Equal(t, "advanced", s.failures[0].Category)
	assert.Equal(t, 1, s.failures[0].Count)
}

func TestBuildWorstScenariosSortedAscending(t *testing.T) {
	s := Build(sampleRun(), sampleScenarios())
	require.Len(t, s.worst, 2)
	assert.Equal(t, "s2", s.worst[0].ScenarioID)
}

func TestMarkdownRendersAllSections(t *testing.T) {
	s := Build(sampleRun(), sampleScenarios())
	md := s.Markdown()
	assert.Contains(t, md, "# my-bench")
	assert.Contains(t, md, "## Baselines")
	assert.Contains(t, md, "## Scaling Curves")
	assert.Contains(t, md, "## Per-Level Breakdown")
	assert.Contains(t, md, "## Worst Scenarios")
	assert.Contains(t, md, "## Failed Outcomes")
}

func TestJSONRoundTrip(t *testing.T) {
	s := Build(sampleRun(), sampleScenarios())
	data, err := s.JSON()
	require.NoError(t, err)
	assert.Contains(t, string(data), `"run_id": "run-1"`)

	var back Summary
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, s.Metadata, back.Metadata)
	assert.Equal(t, s.ScalingCurves, back.ScalingCurves)
}

func TestComputeBaselinesDeterministic(t *testing.T) {
	scenarios := []scenario.Scenario{
		{ID: "s1", Turns: []scenario.Turn{
			{Actor: scenario.ActorUser, Text: "click", ExpectedOutcomes: []scenario.ExpectedOutcome{
				{Kind: scenario.ActionMatch, Value: "CLICK"},
			}},
		}},
	}
	a := ComputeBaselines(scenarios, []string{"CLICK", "WAIT", "REPLY"}, nil, 7)
	b := ComputeBaselines(scenarios, []string{"CLICK", "WAIT", "REPLY"}, nil, 7)
	assert.Equal(t, a, b)

	always := ComputeBaselines(scenarios, nil, nil, 7)
	require.Len(t, always.AlwaysReply, 1)
	assert.Equal(t, 0.0, always.AlwaysReply[0].Score)
}
