package runner

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/agentbench/harness/environment"
	"github.com/agentbench/harness/eval"
	"github.com/agentbench/harness/llm"
	"github.com/agentbench/harness/memory"
	"github.com/agentbench/harness/pipeline"
	"github.com/agentbench/harness/scenario"
	"github.com/agentbench/harness/trace"
)

// DefaultTurnTimeout is the hard per-turn ceiling (§4.E / §5).
const DefaultTurnTimeout = 300 * time.Second

// ScenarioTimeoutMultiplier scales the sum of turn timeouts into the
// default per-scenario ceiling.
const ScenarioTimeoutMultiplier = 1.5

// teardownTimeout bounds environment cleanup so a hung driver can never
// block the runner from reporting a result.
const teardownTimeout = 30 * time.Second

// Runner drives one scenario at a time through a Driver and Pipeline,
// implementing the turn algorithm of §4.E. A Runner is not safe for
// concurrent use by multiple goroutines against the same scenario, but
// independent Runners (or the same Runner called sequentially) may be
// fanned out across scenarios by an orchestrator.
type Runner struct {
	driver     environment.Driver
	pipeline   *pipeline.Pipeline
	customEval *eval.CustomRegistry

	recorder *trace.Recorder
	mirror   *trace.Mirror

	memoryStore memory.Store

	logger     *slog.Logger
	topicPool  *TopicPool
	configName string
	runID      string

	turnTimeout     time.Duration
	scenarioTimeout time.Duration

	traceSink func(*trace.Trace)
}

// Option configures a Runner.
type Option func(*Runner)

// WithRecorder attaches an OpenTelemetry trace.Recorder mirroring every
// step the Runner itself appends (OBSERVE, ENV_STEP, EVALUATION).
func WithRecorder(r *trace.Recorder) Option { return func(rn *Runner) { rn.recorder = r } }

// WithMirror attaches a Redis trace.Mirror for live trace fan-out.
func WithMirror(m *trace.Mirror) Option { return func(rn *Runner) { rn.mirror = m } }

// WithMemoryStore attaches a memory.Store backing scenarios flagged
// RequiresMemory: each turn's response is written into Mission memory, and
// a later turn's MEMORY_RECALLED outcome is checked against what the store
// actually recalls instead of only the turn's own response text.
func WithMemoryStore(s memory.Store) Option { return func(rn *Runner) { rn.memoryStore = s } }

// WithLogger attaches a structured logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option { return func(rn *Runner) { rn.logger = l } }

// WithTopicPool overrides the default conversation_prefill topic pool.
func WithTopicPool(p *TopicPool) Option { return func(rn *Runner) { rn.topicPool = p } }

// WithConfigName sets the ScenarioResult.ConfigName recorded for every run
// (the named agent/model configuration under test).
func WithConfigName(name string) Option { return func(rn *Runner) { rn.configName = name } }

// WithRunID overrides the run identifier used for trace.New and
// ScenarioResult.TraceID. Defaults to a freshly generated UUID.
func WithRunID(id string) Option { return func(rn *Runner) { rn.runID = id } }

// WithTurnTimeout overrides the default 300s per-turn timeout.
func WithTurnTimeout(d time.Duration) Option { return func(rn *Runner) { rn.turnTimeout = d } }

// WithScenarioTimeout overrides the default (Σ turn timeouts × 1.5)
// per-scenario timeout.
func WithScenarioTimeout(d time.Duration) Option { return func(rn *Runner) { rn.scenarioTimeout = d } }

// WithCustomOutcomes registers the CEL/Go predicate registry consulted for
// CUSTOM outcome kinds.
func WithCustomOutcomes(r *eval.CustomRegistry) Option { return func(rn *Runner) { rn.customEval = r } }

// WithTraceSink registers a callback invoked with the completed trace.Trace
// once RunScenario returns, letting a caller persist it (e.g. to the
// traces/<run_id>/<scenario_id>.jsonl layout) without the Runner itself
// knowing about output paths.
func WithTraceSink(fn func(*trace.Trace)) Option { return func(rn *Runner) { rn.traceSink = fn } }

// New builds a Runner around driver and p.
func New(driver environment.Driver, p *pipeline.Pipeline, opts ...Option) *Runner {
	rn := &Runner{
		driver:    driver,
		pipeline:  p,
		logger:    slog.Default(),
		topicPool: NewTopicPool(),
		runID:     uuid.NewString(),
	}
	for _, opt := range opts {
		opt(rn)
	}
	return rn
}

// RunScenario drives s at scale point sp through a full turn loop,
// returning a ScenarioResult that is always populated, never nil-valued:
// an infrastructure failure or cancellation still yields a ScenarioResult
// with however many TurnResults completed and a non-empty Error.
func (rn *Runner) RunScenario(ctx context.Context, s scenario.Scenario, sp scenario.ScalePoint, trial int) ScenarioResult {
	start := time.Now()
	tr := trace.New(rn.runID, s.ID)
	if rn.traceSink != nil {
		defer func() { rn.traceSink(tr) }()
	}

	result := ScenarioResult{
		ScenarioID: s.ID,
		ScalePoint: sp.Label,
		ConfigName: rn.configName,
		Trial:      trial,
		TraceID:    rn.runID,
	}

	turnTimeout := rn.turnTimeout
	if turnTimeout <= 0 {
		turnTimeout = DefaultTurnTimeout
	}
	scenarioTimeout := rn.scenarioTimeout
	if scenarioTimeout <= 0 {
		scenarioTimeout = time.Duration(float64(turnTimeout) * float64(maxInt(len(s.Turns), 1)) * ScenarioTimeoutMultiplier)
	}

	scenarioCtx, cancelScenario := context.WithTimeout(ctx, scenarioTimeout)
	defer cancelScenario()

	env, err := rn.driver.Start(scenarioCtx, s)
	if err != nil {
		return rn.finish(result, start, fmt.Sprintf("driver_infrastructure:%s", err))
	}
	defer rn.teardown(env, s.ID)

	history := rn.seedPrefill(sp.ConversationPrefill)

	for i, turn := range s.Turns {
		if err := ctx.Err(); err != nil {
			return rn.finish(result, start, "cancelled")
		}
		if err := scenarioCtx.Err(); err != nil {
			return rn.finish(result, start, "cancelled")
		}

		if turn.DelaySeconds > 0 {
			select {
			case <-time.After(time.Duration(turn.DelaySeconds * float64(time.Second))):
			case <-ctx.Done():
				return rn.finish(result, start, "cancelled")
			case <-scenarioCtx.Done():
				return rn.finish(result, start, "cancelled")
			}
		}

		if turn.NewSession {
			if _, err := env.Reset(scenarioCtx, true); err != nil {
				return rn.finish(result, start, fmt.Sprintf("driver_infrastructure:%s", err))
			}
		}

		if turn.Actor == scenario.ActorSystem {
			history = append(history, llm.Message{Role: llm.RoleSystem, Content: turn.Text})
			continue
		}
		history = append(history, llm.Message{Role: roleFor(turn.Actor), Content: turn.Text})

		turnResult, fatal := rn.runTurn(ctx, scenarioCtx, tr, env, s, i, turn, history, turnTimeout)
		if fatal != "" {
			return rn.finish(result, start, fatal)
		}
		history = append(history, llm.Message{Role: llm.RoleAssistant, Content: turnResult.ResponseText})
		result.TurnResults = append(result.TurnResults, turnResult)
	}

	return rn.finish(result, start, "")
}

// runTurn executes one non-skipped turn: observe, decide, step, evaluate.
// fatal is non-empty only for an infrastructure-level exception (§4.E
// step 3's "first infrastructure-level exception").
func (rn *Runner) runTurn(
	ctx, scenarioCtx context.Context,
	tr *trace.Trace,
	env environment.Environment,
	s scenario.Scenario,
	index int,
	turn scenario.Turn,
	history []llm.Message,
	turnTimeout time.Duration,
) (eval.TurnResult, string) {
	turnCtx, cancel := context.WithTimeout(scenarioCtx, turnTimeout)
	defer cancel()

	turnStart := time.Now()
	var recorderEnd func()
	if rn.recorder != nil {
		turnCtx, recorderEnd = rn.recorder.StartTurn(turnCtx, tr.ScenarioID, index)
		defer recorderEnd()
	}

	obsStart := time.Now()
	obs, err := env.Observe(turnCtx)
	if err != nil {
		return eval.TurnResult{}, fmt.Sprintf("driver_infrastructure:%s", err)
	}
	rn.appendStep(ctx, tr, trace.StepObserve, trace.ActorEnv, time.Since(obsStart), map[string]any{"step_index": obs.StepIndex})

	msg := pipeline.Message{
		Observation: obs,
		History:     append([]llm.Message(nil), history...),
		OnlyInclude: turn.OnlyInclude,
	}
	if s.RequiresPlanning {
		msg.Plan = newScenarioPlanContext(s, index, 0)
	}
	decision, err := rn.pipeline.Decide(turnCtx, tr, msg)
	if err != nil {
		// Only KindConfiguration/KindInvariant ever reach here (§7); the
		// pipeline recovers every other failure mode into a safe-default
		// decision instead of returning an error.
		return eval.TurnResult{}, fmt.Sprintf("invariant_violation:%s", err)
	}
	if decision.StepHints != nil && decision.StepHints.HasReplanRecommendation() {
		rn.logger.Info("runner: agent recommended replan",
			"scenario_id", s.ID, "turn_index", index, "reason", decision.StepHints.ReplanReason())
	}

	stepStart := time.Now()
	stepResult, err := env.Step(turnCtx, decision.Action)
	if err != nil {
		return eval.TurnResult{}, fmt.Sprintf("driver_infrastructure:%s", err)
	}
	rn.appendStep(ctx, tr, trace.StepEnvStep, trace.ActorEnv, time.Since(stepStart), map[string]any{
		"action": decision.Action.Name,
		"reward": stepResult.Reward,
		"done":   stepResult.Done,
	})

	turnResult := eval.TurnResult{
		TurnIndex:          index,
		SelectedActions:    decision.SelectedActions,
		ResponseText:       decision.ResponseText,
		ProvidersConsulted: decision.ProvidersConsulted,
		LatencyMs:          time.Since(turnStart).Milliseconds(),
		RawModelOutput:     decision.RawModelOutput,
		Thought:            decision.Thought,
	}

	outcomes := make([]scenario.ExpectedOutcome, 0, len(turn.ExpectedOutcomes)+len(turn.ForbiddenOutcomes))
	outcomes = append(outcomes, turn.ExpectedOutcomes...)
	outcomes = append(outcomes, turn.ForbiddenOutcomes...)
	if len(outcomes) > 0 {
		evalInput := turnResult
		if rn.memoryStore != nil && s.RequiresMemory && hasOutcomeKind(outcomes, scenario.MemoryRecalled) {
			evalInput.ResponseText = rn.enrichWithRecall(turnCtx, turnResult.ResponseText, turn.Text)
		}
		turnResult.OutcomeResults = eval.Evaluate(evalInput, outcomes, rn.customEval)
	}
	evalStart := time.Now()
	rn.appendStep(ctx, tr, trace.StepEvaluation, trace.ActorEvaluator, time.Since(evalStart), turnResult.OutcomeResults)

	if rn.memoryStore != nil && s.RequiresMemory {
		rn.recallMemory(turnCtx, s.ID, index, turn, turnResult.ResponseText)
	}

	return turnResult, ""
}

// hasOutcomeKind reports whether any outcome in outcomes is of kind k.
func hasOutcomeKind(outcomes []scenario.ExpectedOutcome, k scenario.OutcomeKind) bool {
	for _, o := range outcomes {
		if o.Kind == k {
			return true
		}
	}
	return false
}

// enrichWithRecall appends the top Mission-memory matches for query to
// responseText, so a MEMORY_RECALLED outcome (evaluated as TEXT_CONTAINS)
// checks against what the store actually recalls rather than only the
// turn's raw response.
func (rn *Runner) enrichWithRecall(ctx context.Context, responseText, query string) string {
	results, err := rn.memoryStore.Mission().Search(ctx, query, 3)
	if err != nil || len(results) == 0 {
		return responseText
	}
	var b strings.Builder
	b.WriteString(responseText)
	for _, r := range results {
		fmt.Fprintf(&b, "\n[recalled %s] %v", r.Key, r.Value)
	}
	return b.String()
}

// recallMemory writes this turn's response into Mission memory, keyed by
// scenario and turn index, so later turns in the same scenario can recall
// it via enrichWithRecall.
func (rn *Runner) recallMemory(ctx context.Context, scenarioID string, index int, turn scenario.Turn, responseText string) {
	key := fmt.Sprintf("%s:turn:%d", scenarioID, index)
	err := rn.memoryStore.Mission().Set(ctx, key, responseText, map[string]any{
		"scenario_id": scenarioID,
		"turn_index":  index,
		"actor":       string(turn.Actor),
	})
	if err != nil {
		rn.logger.Debug("runner: mission memory write failed", "scenario_id", scenarioID, "turn_index", index, "error", err)
	}
}

// appendStep records step on tr and mirrors it to the OTel recorder and
// Redis pub/sub mirror, if configured. Mirroring never blocks or fails the
// turn — publish errors are logged at debug level.
func (rn *Runner) appendStep(ctx context.Context, tr *trace.Trace, kind trace.StepKind, actor trace.Actor, latency time.Duration, payload any) {
	step := tr.Append(kind, actor, latency, payload)
	if rn.recorder != nil {
		rn.recorder.Record(ctx, step)
	}
	if rn.mirror != nil {
		if err := rn.mirror.Publish(ctx, tr.RunID, tr.ScenarioID, step); err != nil {
			rn.logger.Debug("runner: trace mirror publish failed", "scenario_id", tr.ScenarioID, "error", err)
		}
	}
}

// finish computes the scenario score, stamps latency, and returns result.
// An empty errMsg means a clean completion.
func (rn *Runner) finish(result ScenarioResult, start time.Time, errMsg string) ScenarioResult {
	result.Error = errMsg
	result.TotalLatencyMs = time.Since(start).Milliseconds()

	scored := make([]float64, 0, len(result.TurnResults))
	for _, t := range result.TurnResults {
		if len(t.OutcomeResults) > 0 {
			scored = append(scored, eval.TurnScore(t.OutcomeResults))
		}
	}
	result.Score = eval.ScenarioScore(scored)
	return result
}

func (rn *Runner) teardown(env environment.Environment, scenarioID string) {
	ctx, cancel := context.WithTimeout(context.Background(), teardownTimeout)
	defer cancel()
	if err := env.Teardown(ctx); err != nil {
		rn.logger.Warn("runner: environment teardown failed", "scenario_id", scenarioID, "error", err)
	}
}

// seedPrefill builds n synthetic user/assistant exchanges drawn cyclically
// from the topic pool (§4.E step 2). Prefill never invokes the pipeline.
func (rn *Runner) seedPrefill(n int) []llm.Message {
	if n <= 0 {
		return nil
	}
	history := make([]llm.Message, 0, n*2)
	for i := 0; i < n; i++ {
		topic := rn.topicPool.At(i)
		history = append(history,
			llm.Message{Role: llm.RoleUser, Content: topic.User},
			llm.Message{Role: llm.RoleAssistant, Content: topic.Assistant},
		)
	}
	return history
}

func roleFor(actor scenario.Actor) llm.Role {
	switch actor {
	case scenario.ActorAssistant:
		return llm.RoleAssistant
	case scenario.ActorSystem:
		return llm.RoleSystem
	default:
		return llm.RoleUser
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
