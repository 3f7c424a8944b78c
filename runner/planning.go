package runner

import (
	"fmt"

	"github.com/agentbench/harness/scenario"
)

// scenarioPlanContext adapts one scenario.Scenario and the turn currently
// executing into a planning.PlanningContext. It backs the "planning"
// Provider for scenarios flagged RequiresPlanning, exposing the turn's
// position and the turns still to come.
type scenarioPlanContext struct {
	s          scenario.Scenario
	index      int
	stepBudget int
}

func newScenarioPlanContext(s scenario.Scenario, index, stepBudget int) *scenarioPlanContext {
	return &scenarioPlanContext{s: s, index: index, stepBudget: stepBudget}
}

func (p *scenarioPlanContext) OriginalGoal() string {
	if p.s.Description != "" {
		return p.s.Description
	}
	return p.s.Name
}

func (p *scenarioPlanContext) CurrentStepIndex() int { return p.index }

func (p *scenarioPlanContext) TotalSteps() int { return len(p.s.Turns) }

func (p *scenarioPlanContext) RemainingSteps() []string {
	remaining := make([]string, 0, len(p.s.Turns)-p.index-1)
	for i := p.index + 1; i < len(p.s.Turns); i++ {
		remaining = append(remaining, fmt.Sprintf("turn_%d", i))
	}
	return remaining
}

func (p *scenarioPlanContext) StepBudget() int { return p.stepBudget }

// MissionBudgetRemaining is always 0: the harness scores turns against a
// fixed scale point rather than a consumable mission-wide token budget.
func (p *scenarioPlanContext) MissionBudgetRemaining() int { return 0 }
