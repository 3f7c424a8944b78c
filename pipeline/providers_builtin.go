package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/agentbench/harness/llm"
)

// observationPosition and actionCatalogPosition bracket the composed state:
// the observation always leads, the action catalog always trails, and
// everything else (history, memory, planning hints, ...) sorts between
// them. Both names are in pinnedProviderNames so assembleWithCeiling never
// truncates them.
const (
	observationPosition   = 0
	planningPosition      = 5
	historyPosition       = 10
	actionCatalogPosition = 100
)

// planningProvider renders a scenario's planning.PlanningContext, when one
// is attached to the Message, into the model-facing text that lets an
// agent budget its remaining turns for a RequiresPlanning scenario.
type planningProvider struct{}

// NewPlanningProvider returns the built-in "planning" Provider. It produces
// no text when the Message carries no Plan, so it is safe to register
// unconditionally.
func NewPlanningProvider() Provider { return planningProvider{} }

func (planningProvider) Name() string  { return "planning" }
func (planningProvider) Position() int { return planningPosition }
func (planningProvider) Dynamic() bool { return true }
func (planningProvider) Private() bool { return false }

func (planningProvider) Produce(ctx context.Context, rt *Runtime, msg Message, state *ComposeState) (ProviderResult, error) {
	plan := msg.Plan
	if plan == nil {
		return ProviderResult{}, nil
	}
	var b strings.Builder
	if goal := plan.OriginalGoal(); goal != "" {
		fmt.Fprintf(&b, "Goal: %s\n", goal)
	}
	fmt.Fprintf(&b, "Step %d of %d\n", plan.CurrentStepIndex()+1, plan.TotalSteps())
	if budget := plan.StepBudget(); budget > 0 {
		fmt.Fprintf(&b, "Step token budget: %d\n", budget)
	}
	if remaining := plan.RemainingSteps(); len(remaining) > 0 {
		fmt.Fprintf(&b, "Remaining steps: %s\n", strings.Join(remaining, ", "))
	}
	return ProviderResult{Text: strings.TrimRight(b.String(), "\n")}, nil
}

// observationProvider formats the environment's current Observation into
// the model-facing text every turn must carry (§4.D step 1: "preserving the
// observation and action catalog").
type observationProvider struct{}

// NewObservationProvider returns the built-in "observation" Provider. It is
// pinned: the pipeline's soft token ceiling never truncates it.
func NewObservationProvider() Provider { return observationProvider{} }

func (observationProvider) Name() string  { return "observation" }
func (observationProvider) Position() int { return observationPosition }
func (observationProvider) Dynamic() bool { return true }
func (observationProvider) Private() bool { return false }

func (observationProvider) Produce(ctx context.Context, rt *Runtime, msg Message, state *ComposeState) (ProviderResult, error) {
	obs := msg.Observation
	var b strings.Builder
	fmt.Fprintf(&b, "Instruction: %s\n", obs.Instruction)
	fmt.Fprintf(&b, "Step %d of %d\n", obs.StepIndex, obs.MaxSteps)
	if len(obs.PreviousActions) > 0 {
		fmt.Fprintf(&b, "Previous actions: %s\n", strings.Join(obs.PreviousActions, ", "))
	}
	if obs.StructuredState != nil {
		if encoded, err := json.Marshal(obs.StructuredState); err == nil {
			fmt.Fprintf(&b, "State: %s\n", encoded)
		}
	}
	if len(obs.Screenshot) > 0 {
		fmt.Fprintf(&b, "Screenshot: %d bytes attached\n", len(obs.Screenshot))
	}
	return ProviderResult{Text: strings.TrimRight(b.String(), "\n")}, nil
}

// historyProvider summarizes the conversation so far. It is deliberately
// non-pinned: a long-running scenario's history is exactly the kind of
// section the soft token ceiling should truncate first, not the
// observation or the action catalog.
type historyProvider struct {
	maxTurns int
}

// NewHistoryProvider returns the built-in "history" Provider, rendering at
// most the last maxTurns messages. maxTurns<=0 means unbounded.
func NewHistoryProvider(maxTurns int) Provider {
	return historyProvider{maxTurns: maxTurns}
}

func (historyProvider) Name() string  { return "history" }
func (historyProvider) Position() int { return historyPosition }
func (historyProvider) Dynamic() bool { return true }
func (historyProvider) Private() bool { return false }

func (p historyProvider) Produce(ctx context.Context, rt *Runtime, msg Message, state *ComposeState) (ProviderResult, error) {
	history := msg.History
	if p.maxTurns > 0 && len(history) > p.maxTurns {
		history = history[len(history)-p.maxTurns:]
	}
	if len(history) == 0 {
		return ProviderResult{}, nil
	}
	var b strings.Builder
	b.WriteString("Conversation so far:\n")
	for _, m := range history {
		fmt.Fprintf(&b, "%s: %s\n", roleLabel(m.Role), m.Content)
	}
	return ProviderResult{Text: strings.TrimRight(b.String(), "\n")}, nil
}

func roleLabel(r llm.Role) string {
	switch r {
	case llm.RoleSystem:
		return "system"
	case llm.RoleAssistant:
		return "assistant"
	default:
		return "user"
	}
}

// actionCatalogProvider enumerates every registered action with its
// description and parameter schema, the "available-tools catalog" §4.D
// step 1 names alongside the observation formatter.
type actionCatalogProvider struct{}

// NewActionCatalogProvider returns the built-in "action_catalog" Provider.
// It is pinned: the pipeline's soft token ceiling never truncates it.
func NewActionCatalogProvider() Provider { return actionCatalogProvider{} }

func (actionCatalogProvider) Name() string  { return "action_catalog" }
func (actionCatalogProvider) Position() int { return actionCatalogPosition }
func (actionCatalogProvider) Dynamic() bool { return false }
func (actionCatalogProvider) Private() bool { return false }

func (actionCatalogProvider) Produce(ctx context.Context, rt *Runtime, msg Message, state *ComposeState) (ProviderResult, error) {
	var b strings.Builder
	b.WriteString("Available actions:\n")
	for _, name := range rt.Actions().Names() {
		def, _ := rt.Actions().Resolve(name)
		if def.Description != "" {
			fmt.Fprintf(&b, "- %s: %s\n", def.Name, def.Description)
		} else {
			fmt.Fprintf(&b, "- %s\n", def.Name)
		}
		if len(def.Schema.Properties) > 0 {
			fmt.Fprintf(&b, "  parameters: %s\n", schemaSummary(def))
		}
	}
	return ProviderResult{Text: strings.TrimRight(b.String(), "\n")}, nil
}

func schemaSummary(def ActionDef) string {
	names := make([]string, 0, len(def.Schema.Properties))
	required := make(map[string]struct{}, len(def.Schema.Required))
	for _, r := range def.Schema.Required {
		required[r] = struct{}{}
	}
	for name := range def.Schema.Properties {
		if _, req := required[name]; req {
			names = append(names, name+"*")
		} else {
			names = append(names, name)
		}
	}
	return strings.Join(names, ", ")
}

// RegisterBuiltinProviders wires the observation, planning, history and
// action catalog providers into rt. Benchmarks that need a different composed
// state shape can register their own providers instead; this is the
// default a CLI-driven run wires up (§4.D design notes).
func RegisterBuiltinProviders(rt *Runtime, historyMaxTurns int) {
	rt.RegisterProvider(NewObservationProvider())
	rt.RegisterProvider(NewPlanningProvider())
	rt.RegisterProvider(NewHistoryProvider(historyMaxTurns))
	rt.RegisterProvider(NewActionCatalogProvider())
}
