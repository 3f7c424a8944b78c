package llm

import (
	"context"
	"fmt"
	"sync"
)

// ModelType selects which class of model a HandlerFunc serves.
type ModelType string

const (
	TextLarge ModelType = "TEXT_LARGE"
	TextSmall ModelType = "TEXT_SMALL"
	Vision    ModelType = "VISION"
	Embedding ModelType = "EMBEDDING"
)

// Runtime is the shared, read-only-after-startup context passed to every
// handler: registries, credentials, and run configuration live here so
// handlers never take back-references to the pipeline that calls them.
type Runtime interface {
	// Credential resolves a named secret (e.g. "OPENAI_API_KEY") without
	// exposing it as a plain action parameter.
	Credential(name string) (string, bool)
}

// HandlerFunc is an async text-generation handler for one (ModelType,
// provider) pair. It must not raise on ordinary 4xx/5xx errors from the
// underlying provider: it catches, logs, and returns "" instead.
type HandlerFunc func(ctx context.Context, rt Runtime, req CompletionRequest) (string, error)

type registration struct {
	provider string
	handler  HandlerFunc
}

// Registry maps (ModelType, provider) to a HandlerFunc. It is read-only
// after startup; concurrent Resolve calls are safe. Resolution is
// first-registered-wins per ModelType unless an explicit override names a
// specific provider.
type Registry struct {
	mu    sync.RWMutex
	byType map[ModelType][]registration
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{byType: make(map[ModelType][]registration)}
}

// Register adds handler as a candidate for modelType under provider. The
// first provider registered for a given ModelType becomes the default.
func (r *Registry) Register(modelType ModelType, provider string, handler HandlerFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byType[modelType] = append(r.byType[modelType], registration{provider: provider, handler: handler})
}

// Resolve returns the handler for modelType. If override is non-empty, the
// handler registered under that provider name is returned; otherwise the
// first-registered handler for modelType wins.
func (r *Registry) Resolve(modelType ModelType, override string) (HandlerFunc, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	regs, ok := r.byType[modelType]
	if !ok || len(regs) == 0 {
		return nil, fmt.Errorf("llm: no handler registered for model type %q", modelType)
	}

	if override == "" {
		return regs[0].handler, nil
	}
	for _, reg := range regs {
		if reg.provider == override {
			return reg.handler, nil
		}
	}
	return nil, fmt.Errorf("llm: no handler registered for model type %q provider %q", modelType, override)
}

// Providers lists the provider names registered for modelType, in
// registration order.
func (r *Registry) Providers(modelType ModelType) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	regs := r.byType[modelType]
	out := make([]string, 0, len(regs))
	for _, reg := range regs {
		out = append(out, reg.provider)
	}
	return out
}
