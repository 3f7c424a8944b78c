// Package runner drives one scenario at a time through the Environment
// Driver and Message Pipeline: seeding prefill history, honoring
// delay_seconds and new_session turns, invoking the pipeline for
// user/assistant turns, stepping the environment, scoring outcomes, and
// enforcing per-turn/per-scenario timeouts and cooperative cancellation.
package runner
