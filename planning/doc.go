// Package planning provides planning-aware interfaces for agent developers.
//
// This package enables agents to:
//   - Be aware of their position in mission execution
//   - Access budget constraints (step and mission level)
//   - Provide feedback to the planning system
//   - Suggest next steps and recommend replanning
//
// # PlanningContext
//
// The PlanningContext interface provides read-only access to the mission plan state.
// Action handlers receive it as pipeline.Message.Plan, which the runner sets
// for scenarios flagged requires_planning (nil otherwise):
//
//	func handler(ctx context.Context, rt *pipeline.Runtime, msg pipeline.Message, state *pipeline.ComposeState, opts pipeline.ActionOptions, cb pipeline.Callback) (pipeline.ActionResult, error) {
//	    planCtx := msg.Plan
//	    if planCtx == nil {
//	        // Planning not enabled, proceed normally
//	        return pipeline.ActionResult{Success: true}, nil
//	    }
//
//	    // Adapt based on plan position
//	    if planCtx.CurrentStepIndex() == 0 {
//	        // First step - initialize mission state
//	    }
//
//	    if planCtx.StepBudget() < 1000 {
//	        // Low budget - use efficient strategy
//	    }
//
//	    if planCtx.CurrentStepIndex() == planCtx.TotalSteps()-1 {
//	        // Last step - summarize findings
//	    }
//
//	    // ...
//	}
//
// # StepHints
//
// The StepHints builder allows agents to provide feedback to the planner.
// Use the fluent builder pattern to construct hints:
//
//	hints := planning.NewStepHints().
//	    WithConfidence(0.85).
//	    WithKeyFinding("Admin panel discovered at /admin").
//	    WithKeyFinding("Default credentials may be in use").
//	    WithSuggestion("auth_bypass_agent").
//	    RecommendReplan("Target uses custom auth - standard attacks ineffective")
//
//	// Attach to the action result
//	return pipeline.ActionResult{Success: true, Values: map[string]any{"step_hints": hints}}, nil
//
// The pipeline records the hints (confidence, suggestions, key findings,
// replan reason) in the trace step of the executed action and hands them to
// the runner, which logs a replan recommendation. Hints do not change the
// turn's score and do not trigger replanning.
//
// # Design Principles
//
// This package is designed to be standalone and usable by external agent developers.
// It has no dependencies on the harness's internal packages and uses only the standard library.
//
// The interfaces are read-only to prevent agents from modifying mission state directly.
// All state changes flow through the harness to maintain consistency.
package planning
