// Package eval scores a scenario turn against its ExpectedOutcomes.
//
// TurnResult is the frozen record of what a turn's pipeline decision and
// environment step actually did; Evaluate walks a turn's []ExpectedOutcome
// and, for each one, dispatches on its OutcomeKind to produce an
// OutcomeResult. The dispatch table (see outcome.go) covers ACTION_MATCH,
// ACTION_NOT_MATCH, TEXT_CONTAINS, TEXT_NOT_CONTAINS, PARAM_MATCH,
// PROVIDERS_REQUESTED, MEMORY_RECALLED (an alias of TEXT_CONTAINS: the
// runner enriches ResponseText with recalled memory before Evaluate sees
// it, so no separate check is needed) and CUSTOM.
//
// CUSTOM outcomes are resolved through a CustomRegistry, which a benchmark
// author populates with either a Go predicate or a CEL expression compiled
// against response_text, thought, actions and turn_index:
//
//	reg, _ := eval.NewCustomRegistry()
//	reg.RegisterCEL("mentions_cve", `response_text.contains("CVE-")`)
//	reg.Register("no_destructive_actions", func(tr eval.TurnResult) (bool, string) {
//	    for _, a := range tr.SelectedActions {
//	        if a == "DELETE" {
//	            return false, "DELETE is forbidden for this scenario"
//	        }
//	    }
//	    return true, ""
//	})
//
// TurnScore and ScenarioScore aggregate OutcomeResults and per-turn scores
// into the weighted pass ratios recorded on a ScenarioResult.
package eval
