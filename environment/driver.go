// Package environment defines the narrow contract concrete benchmark
// environments (desktop VM, container shell, chain validator, message
// broker, browser, long-context store) implement, and the opaque
// observation/action/step-result shapes that cross that boundary.
package environment

import (
	"context"

	"github.com/agentbench/harness/scenario"
)

// Observation is the environment's rendered view delivered to the agent.
// Created by a Driver's Environment, consumed by the Message Pipeline, and
// never mutated after emission.
type Observation struct {
	Instruction      string         `json:"instruction"`
	StepIndex        int            `json:"step_index"`
	MaxSteps         int            `json:"max_steps"`
	Screenshot       []byte         `json:"screenshot,omitempty"`
	StructuredState  any            `json:"structured_state,omitempty"`
	PreviousActions  []string       `json:"previous_actions,omitempty"`
}

// Action is one decision produced by the Message Pipeline and handed to the
// environment's Step.
type Action struct {
	Name       string         `json:"action_name"`
	Parameters map[string]any `json:"parameters,omitempty"`
	RawCode    string         `json:"raw_code,omitempty"`
	Reasoning  string         `json:"reasoning,omitempty"`
	Confidence *float64       `json:"confidence,omitempty"`
}

// StepResult is the total (never-erroring-for-agent-mistakes) result of
// stepping an environment with an Action.
type StepResult struct {
	Observation Observation    `json:"observation"`
	Reward      float64        `json:"reward"`
	Done        bool           `json:"done"`
	Info        map[string]any `json:"info,omitempty"`
}

// Capabilities is the set of feature tags ("screenshot", "code_exec",
// "network", ...) a Driver declares so the runner can skip scenarios it
// cannot serve.
type Capabilities map[string]struct{}

// NewCapabilities builds a Capabilities set from a list of tags.
func NewCapabilities(tags ...string) Capabilities {
	c := make(Capabilities, len(tags))
	for _, t := range tags {
		c[t] = struct{}{}
	}
	return c
}

// Has reports whether tag is present.
func (c Capabilities) Has(tag string) bool {
	_, ok := c[tag]
	return ok
}

// Satisfies reports whether c contains every capability required.
func (c Capabilities) Satisfies(required []string) bool {
	for _, r := range required {
		if !c.Has(r) {
			return false
		}
	}
	return true
}

// Environment is the opaque handle returned by Driver.Start; it spans
// exactly one scenario.
type Environment interface {
	// Observe snapshots current state without mutating it.
	Observe(ctx context.Context) (Observation, error)

	// Step executes action and must be total: it returns StepResult for
	// ordinary agent mistakes and only errors for infrastructure faults.
	Step(ctx context.Context, action Action) (StepResult, error)

	// Reset returns the environment to a clean slate. withinScenario=true is
	// the new_session case; false is the cold-start case between scenarios.
	Reset(ctx context.Context, withinScenario bool) (Observation, error)

	// Teardown releases all resources. Must be idempotent and always called.
	Teardown(ctx context.Context) error
}

// Driver is the environment-specific implementation a benchmark plugs in.
type Driver interface {
	// Start allocates resources for scenario and returns an opaque handle.
	// Idempotent within a scenario; may take tens of seconds.
	Start(ctx context.Context, s scenario.Scenario) (Environment, error)

	// Capabilities declares the feature tags this driver supports.
	Capabilities() Capabilities
}
