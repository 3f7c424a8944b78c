package pipeline

import (
	"sort"
	"sync"

	"github.com/agentbench/harness/llm"
)

// Runtime is the shared, read-only-after-startup registry object every
// Provider and ActionHandler receives as their first argument, resolving
// the "providers read registered actions, actions emit provider-visible
// observations" cycle without back-references (§9 design notes).
type Runtime struct {
	mu sync.RWMutex

	providers map[string]Provider
	actions   *ActionRegistry
	models    *llm.Registry
	creds     CredentialResolver

	tokenCeiling int
}

// CredentialResolver resolves a named secret without exposing it as a plain
// action or model parameter (types.Credential's contract).
type CredentialResolver interface {
	Credential(name string) (string, bool)
}

// NewRuntime builds a Runtime around an action registry, model registry and
// credential resolver. tokenCeiling of 0 disables soft truncation.
func NewRuntime(actions *ActionRegistry, models *llm.Registry, creds CredentialResolver, tokenCeiling int) *Runtime {
	return &Runtime{
		providers:    make(map[string]Provider),
		actions:      actions,
		models:       models,
		creds:        creds,
		tokenCeiling: tokenCeiling,
	}
}

// Credential implements llm.Runtime so a Runtime can be passed directly to
// a llm.HandlerFunc.
func (rt *Runtime) Credential(name string) (string, bool) {
	if rt.creds == nil {
		return "", false
	}
	return rt.creds.Credential(name)
}

// RegisterProvider adds p to the runtime's provider set, keyed by name.
func (rt *Runtime) RegisterProvider(p Provider) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	rt.providers[p.Name()] = p
}

// Providers returns every registered provider, ordered by Position
// ascending (ties broken by name for determinism).
func (rt *Runtime) Providers() []Provider {
	rt.mu.RLock()
	defer rt.mu.RUnlock()
	out := make([]Provider, 0, len(rt.providers))
	for _, p := range rt.providers {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Position() != out[j].Position() {
			return out[i].Position() < out[j].Position()
		}
		return out[i].Name() < out[j].Name()
	})
	return out
}

// Actions returns the runtime's action registry.
func (rt *Runtime) Actions() *ActionRegistry { return rt.actions }

// Models returns the runtime's model handler registry.
func (rt *Runtime) Models() *llm.Registry { return rt.models }
