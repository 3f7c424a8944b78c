// Package pipeline implements the Message Pipeline, the heart of the
// harness: given an observation and conversation history it produces a
// single Action decision by composing state from registered Providers,
// calling the resolved model handler, parsing and validating the model's
// output against the registered action catalog, dispatching the selected
// Action's handler, optionally chaining a PostActionEvaluator follow-up,
// and emitting exactly one trace.Step per step of the pipeline.
package pipeline
