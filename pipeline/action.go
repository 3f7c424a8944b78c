package pipeline

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/agentbench/harness/schema"
)

// Reply, Wait and Noop are the three candidate safe-default action names;
// the pipeline fails fast at construction unless at least one is registered
// (§9 Safe-default action contract).
const (
	Reply = "REPLY"
	Wait  = "WAIT"
	Noop  = "NOOP"
)

var safeDefaultNames = map[string]struct{}{Reply: {}, Wait: {}, Noop: {}}

// ActionResult is what an ActionHandler returns after executing an
// Action's semantics.
type ActionResult struct {
	Text    string
	Values  map[string]any
	Data    any
	Success bool
	Error   string
}

// ActionOptions carries the coerced parameters an ActionHandler executes
// with.
type ActionOptions struct {
	Parameters map[string]any
}

// Callback lets an ActionHandler report incremental progress (e.g. partial
// tool output) back to the pipeline while it still runs; benchmarks that
// don't need streaming feedback may ignore it.
type Callback func(partial ActionResult)

// ActionHandler executes one Action's semantics.
type ActionHandler func(ctx context.Context, rt *Runtime, msg Message, state *ComposeState, opts ActionOptions, cb Callback) (ActionResult, error)

// ActionDef is one registered action: its name, parameter schema, and
// handler.
type ActionDef struct {
	Name        string
	Description string
	Schema      schema.JSON
	Handler     ActionHandler
}

// ActionRegistry holds every action a scenario's agent may select, keyed
// case-insensitively.
type ActionRegistry struct {
	mu      sync.RWMutex
	byName  map[string]ActionDef
	order   []string
}

// NewActionRegistry returns an empty ActionRegistry.
func NewActionRegistry() *ActionRegistry {
	return &ActionRegistry{byName: make(map[string]ActionDef)}
}

// Register adds def, keyed by the case-folded action name.
func (r *ActionRegistry) Register(def ActionDef) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := strings.ToUpper(def.Name)
	if _, exists := r.byName[key]; !exists {
		r.order = append(r.order, key)
	}
	r.byName[key] = def
}

// Resolve looks up an action by name, case-insensitively.
func (r *ActionRegistry) Resolve(name string) (ActionDef, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.byName[strings.ToUpper(name)]
	return def, ok
}

// Names returns every registered action name, in registration order.
func (r *ActionRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// HasSafeDefault reports whether at least one of REPLY/WAIT/NOOP is
// registered.
func (r *ActionRegistry) HasSafeDefault() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for name := range safeDefaultNames {
		if _, ok := r.byName[name]; ok {
			return true
		}
	}
	return false
}

// SafeDefault returns the name of the registered safe-default action,
// preferring REPLY, then WAIT, then NOOP.
func (r *ActionRegistry) SafeDefault() (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, name := range []string{Reply, Wait, Noop} {
		if _, ok := r.byName[name]; ok {
			return name, true
		}
	}
	return "", false
}

// CoerceParameters drops parameters unknown to def's schema and reports
// whether every schema-required parameter is present. Known parameters
// that fail schema.JSON.Validate are also dropped (coerced away) rather
// than rejecting the whole action, matching the "missing required
// parameters degrade to a safe default" rule in §4.D step 3 — unknown or
// invalid parameters alone don't cause a degrade unless they were required.
func CoerceParameters(def ActionDef, raw map[string]any) (map[string]any, bool) {
	coerced := make(map[string]any)
	for name, v := range raw {
		prop, known := def.Schema.Properties[name]
		if !known {
			continue // unknown parameters are dropped
		}
		if err := prop.Validate(v); err != nil {
			continue // invalid parameters are dropped, not fatal on their own
		}
		coerced[name] = v
	}
	for _, req := range def.Schema.Required {
		if _, ok := coerced[req]; !ok {
			return coerced, false
		}
	}
	return coerced, true
}

// errUnknownAction builds the error dispatch reports when the selected
// action name matches nothing in the registry.
func errUnknownAction(name string) error {
	return fmt.Errorf("pipeline: unknown action %q", name)
}
