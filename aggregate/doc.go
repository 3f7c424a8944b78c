// Package aggregate rolls up ScenarioResults from one orchestrator
// invocation into scaling curves, category breakdowns, deterministic
// random/always-reply baselines, and failure breakdowns, then renders the
// roll-up as a JSON summary and a Markdown/ASCII human report (§4.H).
package aggregate
