package eval

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/cel-go/cel"
	"golang.org/x/text/unicode/norm"

	"github.com/agentbench/harness/scenario"
)

// evaluatorFunc checks a single ExpectedOutcome against a TurnResult.
type evaluatorFunc func(o scenario.ExpectedOutcome, tr TurnResult, reg *CustomRegistry) OutcomeResult

// table is the dynamic-dispatch-by-kind table described in the design notes:
// one function per OutcomeKind, selected by the kind enum. Adding a kind is
// additive.
var table = map[scenario.OutcomeKind]evaluatorFunc{
	scenario.ActionMatch:        evalActionMatch,
	scenario.ActionNotMatch:     evalActionNotMatch,
	scenario.TextContains:       evalTextContains,
	scenario.TextNotContains:    evalTextNotContains,
	scenario.ParamMatch:         evalParamMatch,
	scenario.ProvidersRequested: evalProvidersRequested,
	scenario.MemoryRecalled:     evalTextContains, // alias, exists for trace readability
	scenario.Custom:             evalCustom,
}

// Evaluate scores tr against outcomes, producing exactly one OutcomeResult
// per outcome, in order. reg may be nil if no CUSTOM outcomes are in use.
func Evaluate(tr TurnResult, outcomes []scenario.ExpectedOutcome, reg *CustomRegistry) []OutcomeResult {
	results := make([]OutcomeResult, 0, len(outcomes))
	for _, o := range outcomes {
		fn, ok := table[o.Kind]
		if !ok {
			results = append(results, OutcomeResult{
				Outcome: o,
				Passed:  false,
				Detail:  "unknown outcome kind",
			})
			continue
		}
		results = append(results, fn(o, tr, reg))
	}
	return results
}

func normalize(s string) string {
	return norm.NFC.String(strings.ToLower(s))
}

func valueStrings(v any) []string {
	switch t := v.(type) {
	case string:
		return []string{t}
	case []string:
		return t
	case []any:
		out := make([]string, 0, len(t))
		for _, e := range t {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

func containsFold(haystack []string, needle string) bool {
	n := normalize(strings.TrimSpace(needle))
	for _, h := range haystack {
		if normalize(h) == n {
			return true
		}
	}
	return false
}

func evalActionMatch(o scenario.ExpectedOutcome, tr TurnResult, _ *CustomRegistry) OutcomeResult {
	wanted := valueStrings(o.Value)
	for _, w := range wanted {
		if containsFold(tr.SelectedActions, w) {
			return OutcomeResult{Outcome: o, Passed: true, ActualValue: strings.Join(tr.SelectedActions, ",")}
		}
	}
	return OutcomeResult{
		Outcome:     o,
		Passed:      false,
		ActualValue: strings.Join(tr.SelectedActions, ","),
		Detail:      fmt.Sprintf("Expected %v, got %v", wanted, tr.SelectedActions),
	}
}

func evalActionNotMatch(o scenario.ExpectedOutcome, tr TurnResult, _ *CustomRegistry) OutcomeResult {
	forbidden := valueStrings(o.Value)
	var violations []string
	for _, f := range forbidden {
		if containsFold(tr.SelectedActions, f) {
			violations = append(violations, f)
		}
	}
	if len(violations) == 0 {
		return OutcomeResult{Outcome: o, Passed: true, ActualValue: strings.Join(tr.SelectedActions, ",")}
	}
	return OutcomeResult{
		Outcome:     o,
		Passed:      false,
		ActualValue: strings.Join(tr.SelectedActions, ","),
		Detail:      fmt.Sprintf("Violations: %s", strings.Join(violations, ", ")),
	}
}

// snippet returns ±radius characters of haystack around the first match of
// needle (case/normalization-insensitive), for diagnostics.
func snippet(haystack, needle string, radius int) string {
	hNorm := normalize(haystack)
	idx := strings.Index(hNorm, normalize(strings.TrimSpace(needle)))
	if idx < 0 {
		return ""
	}
	runes := []rune(haystack)
	normRunes := []rune(hNorm)
	// idx is a byte offset into hNorm; approximate with rune positions since
	// normalize only lower-cases and NFC-composes, byte/rune drift is rare
	// for ASCII-heavy benchmark text.
	start := idx
	if start > len(normRunes) {
		start = len(normRunes)
	}
	lo := start - radius
	if lo < 0 {
		lo = 0
	}
	hi := start + len(needle) + radius
	if hi > len(runes) {
		hi = len(runes)
	}
	if lo > len(runes) {
		lo = len(runes)
	}
	if lo > hi {
		return ""
	}
	return string(runes[lo:hi])
}

func evalTextContains(o scenario.ExpectedOutcome, tr TurnResult, _ *CustomRegistry) OutcomeResult {
	needle, _ := o.Value.(string)
	haystack := tr.ResponseText
	if normalize(haystack) == "" || !strings.Contains(normalize(haystack), normalize(strings.TrimSpace(needle))) {
		return OutcomeResult{Outcome: o, Passed: false, Detail: fmt.Sprintf("%q not found in response", needle)}
	}
	return OutcomeResult{Outcome: o, Passed: true, ActualValue: snippet(haystack, needle, 30)}
}

func evalTextNotContains(o scenario.ExpectedOutcome, tr TurnResult, _ *CustomRegistry) OutcomeResult {
	needle, _ := o.Value.(string)
	haystack := tr.ResponseText
	if strings.Contains(normalize(haystack), normalize(strings.TrimSpace(needle))) {
		return OutcomeResult{
			Outcome:     o,
			Passed:      false,
			ActualValue: snippet(haystack, needle, 30),
			Detail:      fmt.Sprintf("%q unexpectedly found in response", needle),
		}
	}
	return OutcomeResult{Outcome: o, Passed: true}
}

func evalParamMatch(o scenario.ExpectedOutcome, tr TurnResult, _ *CustomRegistry) OutcomeResult {
	mapping, _ := o.Value.(map[string]any)
	combined := normalize(tr.ResponseText + " " + tr.Thought + " " + tr.RawModelOutput)

	var missing []string
	for k, v := range mapping {
		needle, ok := v.(string)
		if !ok {
			needle = fmt.Sprintf("%v", v)
		}
		if !strings.Contains(combined, normalize(strings.TrimSpace(needle))) {
			missing = append(missing, fmt.Sprintf("%s=%v", k, v))
		}
	}
	if len(missing) > 0 {
		return OutcomeResult{Outcome: o, Passed: false, Detail: fmt.Sprintf("missing params: %s", strings.Join(missing, ", "))}
	}
	return OutcomeResult{Outcome: o, Passed: true}
}

func evalProvidersRequested(o scenario.ExpectedOutcome, tr TurnResult, _ *CustomRegistry) OutcomeResult {
	wanted := valueStrings(o.Value)
	var missing []string
	for _, w := range wanted {
		if !containsFold(tr.ProvidersConsulted, w) {
			missing = append(missing, w)
		}
	}
	if len(missing) > 0 {
		return OutcomeResult{Outcome: o, Passed: false, Detail: fmt.Sprintf("providers not requested: %s", strings.Join(missing, ", "))}
	}
	return OutcomeResult{Outcome: o, Passed: true, ActualValue: strings.Join(tr.ProvidersConsulted, ",")}
}

func evalCustom(o scenario.ExpectedOutcome, tr TurnResult, reg *CustomRegistry) OutcomeResult {
	id, _ := o.Value.(string)
	if reg == nil {
		return OutcomeResult{Outcome: o, Passed: false, Detail: fmt.Sprintf("no custom registry configured for predicate %q", id)}
	}
	passed, detail, err := reg.Evaluate(id, tr)
	if err != nil {
		return OutcomeResult{Outcome: o, Passed: false, Detail: err.Error()}
	}
	return OutcomeResult{Outcome: o, Passed: passed, Detail: detail}
}

// CustomRegistry holds named CUSTOM predicates, either Go functions or
// compiled CEL expressions evaluated against response_text, thought, actions
// and turn_index.
type CustomRegistry struct {
	mu    sync.RWMutex
	fns   map[string]func(TurnResult) (bool, string)
	cel   map[string]cel.Program
	env   *cel.Env
}

// NewCustomRegistry builds a registry with a CEL environment exposing
// response_text (string), actions (list<string>), turn_index (int), and
// thought (string) to expressions.
func NewCustomRegistry() (*CustomRegistry, error) {
	env, err := cel.NewEnv(
		cel.Variable("response_text", cel.StringType),
		cel.Variable("thought", cel.StringType),
		cel.Variable("actions", cel.ListType(cel.StringType)),
		cel.Variable("turn_index", cel.IntType),
	)
	if err != nil {
		return nil, fmt.Errorf("eval: build CEL env: %w", err)
	}
	return &CustomRegistry{
		fns: make(map[string]func(TurnResult) (bool, string)),
		cel: make(map[string]cel.Program),
		env: env,
	}, nil
}

// Register adds a Go predicate under id.
func (r *CustomRegistry) Register(id string, fn func(TurnResult) (bool, string)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fns[id] = fn
}

// RegisterCEL compiles expr and registers it under id. expr must evaluate to
// a bool.
func (r *CustomRegistry) RegisterCEL(id, expr string) error {
	ast, issues := r.env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return fmt.Errorf("eval: compile CEL predicate %q: %w", id, issues.Err())
	}
	prg, err := r.env.Program(ast)
	if err != nil {
		return fmt.Errorf("eval: build CEL program %q: %w", id, err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cel[id] = prg
	return nil
}

// Evaluate runs the predicate registered under id against tr.
func (r *CustomRegistry) Evaluate(id string, tr TurnResult) (bool, string, error) {
	r.mu.RLock()
	fn, hasFn := r.fns[id]
	prg, hasCEL := r.cel[id]
	r.mu.RUnlock()

	switch {
	case hasFn:
		passed, detail := fn(tr)
		return passed, detail, nil
	case hasCEL:
		out, _, err := prg.Eval(map[string]any{
			"response_text": tr.ResponseText,
			"thought":       tr.Thought,
			"actions":       tr.SelectedActions,
			"turn_index":    int64(tr.TurnIndex),
		})
		if err != nil {
			return false, "", fmt.Errorf("eval: evaluate CEL predicate %q: %w", id, err)
		}
		passed, ok := out.Value().(bool)
		if !ok {
			return false, "", fmt.Errorf("eval: CEL predicate %q did not return bool", id)
		}
		return passed, "", nil
	default:
		return false, "", fmt.Errorf("eval: no predicate registered for id %q", id)
	}
}
