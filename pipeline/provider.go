package pipeline

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"sync"
)

// ProviderResult is what a Provider contributes to the composed state: text
// appended to the model prompt, structured values merged into the turn's
// context, and an opaque data blob for downstream consumers (e.g. other
// providers, a PostActionEvaluator).
type ProviderResult struct {
	Text   string
	Values map[string]any
	Data   any
}

// Provider is a named, async producer of context text/values/data that
// feeds the composed state handed to the model. Providers never
// back-reference the pipeline; they read everything they need from the
// Runtime passed as their first argument.
type Provider interface {
	// Name uniquely identifies this provider within a Runtime.
	Name() string

	// Position orders this provider's section in the composed state,
	// ascending. Lower positions appear first.
	Position() int

	// Dynamic reports whether this provider's output can legitimately
	// change between invocations for the same message (used for diagnostics
	// and to decide which sections are safe to cache).
	Dynamic() bool

	// Private reports whether this provider's output must never be
	// persisted verbatim in a durable trace (only its name is recorded).
	Private() bool

	// Produce computes this provider's contribution for msg given the
	// in-progress ComposeState. Providers of one compose call run
	// concurrently, so no other provider's values are guaranteed to be in
	// state.Values yet.
	Produce(ctx context.Context, rt *Runtime, msg Message, state *ComposeState) (ProviderResult, error)
}

// section is one provider's contribution, held until final assembly.
type section struct {
	name    string
	pos     int
	text    string
	pinned  bool
	private bool
}

// ComposeState is the bounded, position-ordered concatenation of every
// Provider's output for one Message. Providers within a single compose call
// may run concurrently; their results are reassembled by Position before
// the composed text is read.
type ComposeState struct {
	mu       sync.Mutex
	sections []section
	Values   map[string]any
	Data     map[string]any

	// Errors records providers that failed; their text is omitted but the
	// pipeline never aborts on a single provider's error (§4.D step 1).
	Errors map[string]error

	// ProvidersConsulted is every provider that actually ran (regardless of
	// success), used to satisfy the PROVIDERS_REQUESTED outcome kind.
	ProvidersConsulted []string
}

func newComposeState() *ComposeState {
	return &ComposeState{
		Values: make(map[string]any),
		Data:   make(map[string]any),
		Errors: make(map[string]error),
	}
}

// pinnedProviderNames are never truncated: the observation and the
// action/tool catalog must always reach the model.
var pinnedProviderNames = map[string]struct{}{
	"observation":     {},
	"action_catalog":  {},
}

func (s *ComposeState) record(name string, pos int, result ProviderResult, private bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, pinned := pinnedProviderNames[name]
	s.sections = append(s.sections, section{name: name, pos: pos, text: result.Text, pinned: pinned, private: private})
	for k, v := range result.Values {
		s.Values[k] = v
	}
	if result.Data != nil {
		s.Data[name] = result.Data
	}
	s.ProvidersConsulted = append(s.ProvidersConsulted, name)
}

func (s *ComposeState) recordError(name string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Errors[name] = err
	s.ProvidersConsulted = append(s.ProvidersConsulted, name)
}

// estimateTokens is a coarse, dependency-free token estimate (no tokenizer
// library appears anywhere in the retrieval pack): roughly 4 characters per
// token, which is accurate enough for a soft truncation ceiling.
func estimateTokens(s string) int {
	return (len(s) + 3) / 4
}

// compose runs every applicable provider concurrently, then assembles the
// composed text ordered by Position ascending, truncating the longest
// non-pinned sections first until the total fits tokenCeiling.
func compose(ctx context.Context, rt *Runtime, msg Message, logger *slog.Logger) (*ComposeState, string) {
	state := newComposeState()
	providers := rt.Providers()

	var wg sync.WaitGroup
	for _, p := range providers {
		if !msg.includesProvider(p.Name()) {
			continue
		}
		p := p
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, err := p.Produce(ctx, rt, msg, state)
			if err != nil {
				if logger != nil {
					logger.Warn("pipeline: provider failed, omitting", "provider", p.Name(), "error", err)
				}
				state.recordError(p.Name(), err)
				return
			}
			state.record(p.Name(), p.Position(), result, p.Private())
		}()
	}
	wg.Wait()

	sort.SliceStable(state.sections, func(i, j int) bool {
		return state.sections[i].pos < state.sections[j].pos
	})

	text := assembleWithCeiling(state.sections, rt.tokenCeiling)
	return state, text
}

// assembleWithCeiling concatenates sections (position order already
// applied) and, if the result exceeds ceiling tokens, truncates the longest
// non-pinned sections first until it fits, preserving pinned sections in
// full.
func assembleWithCeiling(sections []section, ceiling int) string {
	if ceiling <= 0 {
		return joinSections(sections)
	}

	total := 0
	for _, s := range sections {
		total += estimateTokens(s.text)
	}
	if total <= ceiling {
		return joinSections(sections)
	}

	// Work on a mutable copy, truncating the longest non-pinned section
	// repeatedly until the ceiling is met or nothing left to cut.
	work := make([]section, len(sections))
	copy(work, sections)

	for total > ceiling {
		longest := -1
		longestLen := 0
		for i, s := range work {
			if s.pinned || s.text == "" {
				continue
			}
			if l := estimateTokens(s.text); l > longestLen {
				longestLen = l
				longest = i
			}
		}
		if longest < 0 {
			break // nothing left to cut; pinned sections always survive
		}
		over := total - ceiling
		cutChars := over * 4
		if cutChars >= len(work[longest].text) {
			total -= estimateTokens(work[longest].text)
			work[longest].text = ""
		} else {
			keep := len(work[longest].text) - cutChars
			if keep < 0 {
				keep = 0
			}
			work[longest].text = strings.TrimSpace(work[longest].text[:keep]) + " …[truncated]"
			total = recount(work)
		}
	}
	return joinSections(work)
}

func recount(sections []section) int {
	total := 0
	for _, s := range sections {
		total += estimateTokens(s.text)
	}
	return total
}

func joinSections(sections []section) string {
	var b strings.Builder
	for _, s := range sections {
		if s.text == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(s.text)
	}
	return b.String()
}
