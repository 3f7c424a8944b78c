package pipeline

import (
	"context"
	"fmt"

	"github.com/agentbench/harness/plugin"
	"github.com/agentbench/harness/types"
)

// ProviderPlugin adapts the teacher's plugin.Plugin interface (a
// self-contained, versioned unit with its own health check and named
// methods) into a Provider, so a benchmark can ship a Provider as a
// loadable plugin instead of a bare Go function. Exactly one plugin method
// is queried per Produce call; its result becomes the provider's
// contribution to the composed state.
type ProviderPlugin struct {
	p           plugin.Plugin
	method      string
	position    int
	dynamic     bool
	private     bool
	initialized bool
	initErr     error
	initConfig  map[string]any
}

// NewProviderPlugin wraps p, querying method on every Produce call and
// passing initConfig to p.Initialize the first time the provider runs.
func NewProviderPlugin(p plugin.Plugin, method string, position int, dynamic, private bool, initConfig map[string]any) *ProviderPlugin {
	return &ProviderPlugin{
		p:          p,
		method:     method,
		position:   position,
		dynamic:    dynamic,
		private:    private,
		initConfig: initConfig,
	}
}

func (pp *ProviderPlugin) Name() string  { return pp.p.Name() }
func (pp *ProviderPlugin) Position() int { return pp.position }
func (pp *ProviderPlugin) Dynamic() bool { return pp.dynamic }
func (pp *ProviderPlugin) Private() bool { return pp.private }

// Health delegates to the wrapped plugin's own health check.
func (pp *ProviderPlugin) Health(ctx context.Context) types.HealthStatus {
	return pp.p.Health(ctx)
}

func (pp *ProviderPlugin) Produce(ctx context.Context, rt *Runtime, msg Message, state *ComposeState) (ProviderResult, error) {
	if !pp.initialized {
		pp.initErr = pp.p.Initialize(ctx, pp.initConfig)
		pp.initialized = true
	}
	if pp.initErr != nil {
		return ProviderResult{}, fmt.Errorf("pipeline: plugin %s: initialize: %w", pp.p.Name(), pp.initErr)
	}

	params := map[string]any{
		"instruction":      msg.Observation.Instruction,
		"step_index":       msg.Observation.StepIndex,
		"previous_actions": msg.Observation.PreviousActions,
	}
	result, err := pp.p.Query(ctx, pp.method, params)
	if err != nil {
		return ProviderResult{}, fmt.Errorf("pipeline: plugin %s.%s: %w", pp.p.Name(), pp.method, err)
	}

	text, _ := result.(string)
	if text == "" {
		if m, ok := result.(map[string]any); ok {
			if t, ok := m["text"].(string); ok {
				text = t
			}
			return ProviderResult{Text: text, Values: m}, nil
		}
	}
	return ProviderResult{Text: text}, nil
}

// Shutdown releases the wrapped plugin's resources. Callers tear down
// plugin-backed providers explicitly since Runtime has no generic shutdown
// hook of its own.
func (pp *ProviderPlugin) Shutdown(ctx context.Context) error {
	return pp.p.Shutdown(ctx)
}
