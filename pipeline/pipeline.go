package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/agentbench/harness"
	"github.com/agentbench/harness/environment"
	"github.com/agentbench/harness/llm"
	"github.com/agentbench/harness/planning"
	"github.com/agentbench/harness/result"
	"github.com/agentbench/harness/trace"
)

// resultValidator assesses every dispatched ActionResult's Values so a
// trace reader can tell a thin or anomalous action result from a complete
// one without re-running the scenario.
var resultValidator = result.NewValidator()

// DefaultRetryBackoff is the 1s/2s/4s schedule for exhausted model-handler
// retries (§4.D step 2 / §7).
var DefaultRetryBackoff = []time.Duration{time.Second, 2 * time.Second, 4 * time.Second}

// Result is everything the Runner needs to build a TurnResult from one
// Pipeline.Decide call, across however many PostActionEvaluator chain hops
// ran within the turn.
type Result struct {
	Action             environment.Action
	ResponseText       string
	SelectedActions    []string
	ProvidersConsulted []string
	RawModelOutput     string
	Thought            string
	// StepHints carries the last dispatched action's planning feedback, if
	// any action handler attached one via ActionResult.Values["step_hints"].
	StepHints *planning.StepHints
}

// Pipeline implements the Message Pipeline (§4.D): compose state, call the
// model, parse and validate its decision, dispatch the selected action, and
// optionally chain a PostActionEvaluator follow-up, emitting exactly one
// trace.Step per numbered step.
type Pipeline struct {
	rt               *Runtime
	modelType        llm.ModelType
	providerOverride string
	temperature      float64
	maxTokens        int
	chainDepth       int
	postEval         PostActionEvaluator
	recorder         *trace.Recorder
	logger           *slog.Logger
	retryBackoff     []time.Duration
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithModelType selects which ModelType the pipeline resolves for model
// calls. Defaults to llm.TextLarge.
func WithModelType(t llm.ModelType) Option { return func(p *Pipeline) { p.modelType = t } }

// WithProviderOverride pins model resolution to a specific provider name
// instead of first-registered-wins.
func WithProviderOverride(provider string) Option {
	return func(p *Pipeline) { p.providerOverride = provider }
}

// WithTemperature sets the sampling temperature passed to the model handler.
func WithTemperature(t float64) Option { return func(p *Pipeline) { p.temperature = t } }

// WithMaxTokens sets the max-tokens budget passed to the model handler.
func WithMaxTokens(n int) Option { return func(p *Pipeline) { p.maxTokens = n } }

// WithPostActionEvaluator registers a chaining evaluator and caps the chain
// depth (clamped to [0, MaxChainDepth]; 0 disables chaining).
func WithPostActionEvaluator(e PostActionEvaluator, depth int) Option {
	return func(p *Pipeline) {
		p.postEval = e
		if depth > MaxChainDepth {
			depth = MaxChainDepth
		}
		if depth < 0 {
			depth = 0
		}
		p.chainDepth = depth
	}
}

// WithRecorder attaches an OpenTelemetry trace.Recorder mirroring every
// emitted trace.Step as a span/metric.
func WithRecorder(r *trace.Recorder) Option { return func(p *Pipeline) { p.recorder = r } }

// WithLogger attaches a structured logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option { return func(p *Pipeline) { p.logger = l } }

// WithRetryBackoff overrides the model-call retry schedule (default 1s/2s/4s).
func WithRetryBackoff(backoff []time.Duration) Option {
	return func(p *Pipeline) { p.retryBackoff = backoff }
}

// New builds a Pipeline around rt. It fails fast (§9) unless rt's action
// registry has at least one of REPLY/WAIT/NOOP registered.
func New(rt *Runtime, opts ...Option) (*Pipeline, error) {
	if rt.Actions() == nil || !rt.Actions().HasSafeDefault() {
		return nil, harness.NewConfigurationError("pipeline.New", harness.ErrNoSafeDefault)
	}
	p := &Pipeline{
		rt:           rt,
		modelType:    llm.TextLarge,
		chainDepth:   DefaultChainDepth,
		logger:       slog.Default(),
		retryBackoff: DefaultRetryBackoff,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Decide runs the full pipeline for msg, appending one trace.Step per
// numbered step (and per PostActionEvaluator chain hop) to tr.
func (p *Pipeline) Decide(ctx context.Context, tr *trace.Trace, msg Message) (Result, error) {
	result := Result{}
	current := msg
	hops := 0

	for {
		state, composedText := p.composeState(ctx, tr, current)
		result.ProvidersConsulted = append(result.ProvidersConsulted, state.ProvidersConsulted...)

		rawOutput := p.callModel(ctx, tr, composedText)
		if hops == 0 {
			result.RawModelOutput = rawOutput
		}

		decision := ParseDecision(rawOutput)
		actionName, params, ok := p.validate(decision)
		if !ok {
			actionName, _ = p.rt.Actions().SafeDefault()
			params = map[string]any{}
		}
		p.emitActionSelected(ctx, tr, actionName, decision, ok)
		result.SelectedActions = append(result.SelectedActions, actionName)
		result.Thought = decision.Thought

		actionResult := p.dispatch(ctx, tr, current, state, actionName, params)

		result.Action = environment.Action{
			Name:       actionName,
			Parameters: params,
			Reasoning:  decision.Thought,
		}
		if rawCode, ok := actionResult.Values["raw_code"].(string); ok {
			result.Action.RawCode = rawCode
		}
		result.ResponseText = responseText(actionResult, rawOutput)
		if hints, ok := actionResult.Values["step_hints"].(*planning.StepHints); ok && hints != nil {
			result.StepHints = hints
		}

		if p.postEval == nil || hops >= p.chainDepth {
			break
		}
		followUp, ok := p.postEval.Evaluate(ctx, actionResult, current)
		if !ok {
			break
		}
		current = followUp
		hops++
	}

	return result, nil
}

func responseText(result ActionResult, rawOutput string) string {
	if result.Text != "" {
		return result.Text
	}
	return strings.TrimSpace(rawOutput)
}

func (p *Pipeline) composeState(ctx context.Context, tr *trace.Trace, msg Message) (*ComposeState, string) {
	start := time.Now()
	state, composedText := compose(ctx, p.rt, msg, p.logger)
	step := tr.Append(trace.StepComposeState, trace.ActorAgent, time.Since(start), map[string]any{
		"providers_consulted": state.ProvidersConsulted,
		"errors":              errorStrings(state.Errors),
	})
	p.mirror(ctx, step)
	return state, composedText
}

func errorStrings(errs map[string]error) map[string]string {
	if len(errs) == 0 {
		return nil
	}
	out := make(map[string]string, len(errs))
	for k, v := range errs {
		out[k] = v.Error()
	}
	return out
}

// callModel performs step 2: resolve the handler, build the completion
// request, and retry with the 1s/2s/4s backoff on error, returning "" on
// exhaustion (never an error — §7 says model errors are never fatal).
func (p *Pipeline) callModel(ctx context.Context, tr *trace.Trace, composedText string) string {
	start := time.Now()
	defer func() {
		step := tr.Append(trace.StepModelCall, trace.ActorAgent, time.Since(start), nil)
		p.mirror(ctx, step)
	}()

	handler, err := p.rt.Models().Resolve(p.modelType, p.providerOverride)
	if err != nil {
		if p.logger != nil {
			p.logger.Warn("pipeline: no model handler resolved", "model_type", p.modelType, "error", err)
		}
		return ""
	}

	actionNames := p.rt.Actions().Names()
	req := llm.CompletionRequest{
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: SystemPrompt(actionNames)},
			{Role: llm.RoleUser, Content: composedText},
		},
	}
	if p.temperature != 0 {
		t := p.temperature
		req.Temperature = &t
	}
	if p.maxTokens != 0 {
		m := p.maxTokens
		req.MaxTokens = &m
	}

	var out string
	for attempt := 0; attempt <= len(p.retryBackoff); attempt++ {
		out, err = handler(ctx, p.rt, req)
		if err == nil {
			return out
		}
		if p.logger != nil {
			p.logger.Warn("pipeline: model call failed, retrying", "attempt", attempt, "error", err)
		}
		if attempt < len(p.retryBackoff) {
			select {
			case <-ctx.Done():
				return ""
			case <-time.After(p.retryBackoff[attempt]):
			}
		}
	}
	return "" // exhausted
}

// validate implements step 3: case-insensitive action-name resolution,
// schema-coerced parameters, and a degrade signal when required parameters
// are missing.
func (p *Pipeline) validate(decision Decision) (name string, params map[string]any, ok bool) {
	def, found := p.rt.Actions().Resolve(decision.Action)
	if !found {
		return Reply, map[string]any{}, true
	}
	coerced, complete := CoerceParameters(def, decision.Parameters)
	if !complete {
		return "", nil, false
	}
	return def.Name, coerced, true
}

func (p *Pipeline) emitActionSelected(ctx context.Context, tr *trace.Trace, name string, decision Decision, validated bool) {
	step := tr.Append(trace.StepActionSelected, trace.ActorAgent, 0, map[string]any{
		"action":    name,
		"validated": validated,
		"raw_action": decision.Action,
	})
	p.mirror(ctx, step)
}

// dispatch implements step 4: invoke the selected action's handler,
// recovering panics/errors into a failed ActionResult rather than
// propagating (§4.D / §7 KindActionHandler).
func (p *Pipeline) dispatch(ctx context.Context, tr *trace.Trace, msg Message, state *ComposeState, name string, params map[string]any) (result ActionResult) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			result = ActionResult{Success: false, Error: fmt.Sprintf("panic:%v", r)}
		}
		payload := map[string]any{
			"action":  name,
			"success": result.Success,
			"error":   result.Error,
		}
		if assessment := resultValidator.Validate(result.Values); assessment != nil {
			payload["quality"] = assessment.Quality
			payload["confidence"] = assessment.Confidence
			if len(assessment.Warnings) > 0 {
				payload["quality_warnings"] = assessment.Warnings
			}
		}
		if hints, ok := result.Values["step_hints"].(*planning.StepHints); ok && hints != nil {
			payload["step_hints"] = map[string]any{
				"confidence":     hints.Confidence(),
				"suggested_next": hints.SuggestedNext(),
				"key_findings":   hints.KeyFindings(),
				"replan_reason":  hints.ReplanReason(),
			}
		}
		step := tr.Append(trace.StepActionExecuted, trace.ActorAgent, time.Since(start), payload)
		p.mirror(ctx, step)
	}()

	def, found := p.rt.Actions().Resolve(name)
	if !found {
		return ActionResult{Success: false, Error: fmt.Sprintf("action_handler:%v", errUnknownAction(name))}
	}
	out, err := def.Handler(ctx, p.rt, msg, state, ActionOptions{Parameters: params}, func(ActionResult) {})
	if err != nil {
		return ActionResult{Success: false, Error: fmt.Sprintf("%T:%s", err, err.Error())}
	}
	return out
}

func (p *Pipeline) mirror(ctx context.Context, step trace.Step) {
	if p.recorder != nil {
		p.recorder.Record(ctx, step)
	}
}
