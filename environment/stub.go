package environment

import (
	"context"
	"sync"

	"github.com/agentbench/harness/scenario"
)

// StubDriver is an in-memory Driver used by tests and by cmd/evalctl, which
// wires it as the environment for every run. It records every
// lifecycle call so tests can assert on call order (e.g. Reset happening
// exactly once between two turns).
type StubDriver struct {
	caps Capabilities

	mu    sync.Mutex
	calls []string
}

// NewStubDriver returns a StubDriver reporting the given capabilities.
func NewStubDriver(caps ...string) *StubDriver {
	return &StubDriver{caps: NewCapabilities(caps...)}
}

func (d *StubDriver) Capabilities() Capabilities { return d.caps }

func (d *StubDriver) Start(ctx context.Context, s scenario.Scenario) (Environment, error) {
	d.record("start:" + s.ID)
	return &stubEnvironment{driver: d, maxSteps: len(s.Turns)}, nil
}

func (d *StubDriver) record(call string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls = append(d.calls, call)
}

// Calls returns every recorded lifecycle call, in order.
func (d *StubDriver) Calls() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]string, len(d.calls))
	copy(out, d.calls)
	return out
}

type stubEnvironment struct {
	driver   *StubDriver
	step     int
	maxSteps int
}

func (e *stubEnvironment) Observe(ctx context.Context) (Observation, error) {
	e.driver.record("observe")
	return Observation{StepIndex: e.step, MaxSteps: e.maxSteps}, nil
}

func (e *stubEnvironment) Step(ctx context.Context, action Action) (StepResult, error) {
	e.driver.record("step:" + action.Name)
	e.step++
	return StepResult{
		Observation: Observation{StepIndex: e.step, MaxSteps: e.maxSteps, PreviousActions: []string{action.Name}},
		Done:        e.step >= e.maxSteps,
	}, nil
}

func (e *stubEnvironment) Reset(ctx context.Context, withinScenario bool) (Observation, error) {
	e.driver.record("reset")
	e.step = 0
	return Observation{StepIndex: 0, MaxSteps: e.maxSteps}, nil
}

func (e *stubEnvironment) Teardown(ctx context.Context) error {
	e.driver.record("teardown")
	return nil
}
