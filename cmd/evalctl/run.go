package main

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/agentbench/harness/aggregate"
	"github.com/agentbench/harness/environment"
	"github.com/agentbench/harness/memory"
	"github.com/agentbench/harness/runner"
	"github.com/agentbench/harness/scenario"
	"github.com/agentbench/harness/trace"
)

// runTask is one (scenario, scale point, trial) cell of the run matrix.
type runTask struct {
	scenario   scenario.Scenario
	scalePoint scenario.ScalePoint
	trial      int
}

func runCommand(args []string) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	var f filters
	var scaleLabels stringsFlag
	fs.StringVar(&f.dir, "scenarios", "", "directory of scenario JSON/YAML sources")
	fs.Var((*intsFlag)(&f.levels), "levels", "comma-separated scenario levels")
	fs.Var((*stringsFlag)(&f.tags), "tags", "comma-separated required tags")
	fs.Var((*stringsFlag)(&f.ids), "ids", "comma-separated explicit scenario ids")
	fs.Var(&scaleLabels, "scale", "comma-separated scale point labels (default: all)")
	trials := fs.Int("trials", 1, "trials per (scenario, scale point)")
	seed := fs.Int64("seed", 0, "deterministic seed for baselines and the mock model")
	model := fs.String("model", "default", "config name recorded on every ScenarioResult")
	provider := fs.String("provider", "", "model handler provider override")
	output := fs.String("output", "eval-results", "output directory")
	concurrency := fs.Int("concurrency", 1, "global concurrency cap")
	useMock := fs.Bool("mock", false, "force the mock model handler")
	failOn := fs.Float64("fail-on", -1, "exit non-zero if mean score is below this threshold")
	memContinuity := fs.String("memory-continuity", string(memory.DefaultMemoryContinuity),
		"mission memory sharing across trials of the same scenario: isolated|inherit|shared")
	if err := fs.Parse(args); err != nil {
		return err
	}

	continuity := memory.MemoryContinuityMode(*memContinuity)
	if err := continuity.Validate(); err != nil {
		return newExitError(1, "%w", err)
	}

	scenarios, err := loadFiltered(f)
	if err != nil {
		return newExitError(1, "%w", err)
	}
	if len(scenarios) == 0 {
		return newExitError(1, "no scenarios matched the given filters")
	}

	scalePoints := scalePointsByLabel(scaleLabels)
	if len(scalePoints) == 0 {
		return newExitError(1, "no scale points matched --scale %v", []string(scaleLabels))
	}

	p, rt, customEval, err := buildPipeline(modelConfig{provider: *provider, useMock: *useMock})
	if err != nil {
		return newExitError(1, "%w", err)
	}

	driver := environment.NewStubDriver("screenshot", "code_exec", "network")
	// A driver that cannot isolate its environments forces the cap to 1.
	if !driver.Capabilities().Has("isolatable") {
		*concurrency = 1
	}

	runID := uuid.NewString()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	tasks := buildMatrix(scenarios, scalePoints, *trials, driver)

	outputDir := filepath.Join(*output, fmt.Sprintf("%s-%d", *model, time.Now().Unix()))
	memoryStoreFor := memoryStoreFactory(continuity)
	startedAt := time.Now()
	results, cancelled := runMatrix(ctx, tasks, *concurrency, func(s scenario.Scenario) *runner.Runner {
		return runner.New(driver, p,
			runner.WithConfigName(*model),
			runner.WithRunID(runID),
			runner.WithCustomOutcomes(customEval),
			runner.WithMemoryStore(memoryStoreFor(s.ID)),
			runner.WithTraceSink(func(t *trace.Trace) {
				if err := t.WriteJSONL(trace.TracesPath(outputDir, t.RunID, t.ScenarioID)); err != nil {
					fmt.Fprintf(os.Stderr, "evalctl: write trace: %v\n", err)
				}
			}),
		)
	})

	baselines := aggregate.ComputeBaselines(scenarios, rt.Actions().Names(), customEval, *seed)

	record := aggregate.RunRecord{
		RunID:           runID,
		BenchmarkName:   filepath.Base(f.dir),
		AgentID:         *model,
		ConfigHash:      configHash(*model, scaleLabels, *seed, *trials),
		Seed:            *seed,
		StartedAt:       startedAt.UnixMilli(),
		CompletedAt:     time.Now().UnixMilli(),
		ScenarioResults: results,
		Baselines:       baselines,
	}
	summary := aggregate.Build(record, scenarios)

	if err := persist(outputDir, record.BenchmarkName, runID, summary, record); err != nil {
		return newExitError(1, "%w", err)
	}

	if *failOn >= 0 {
		if meanScore(results) < *failOn {
			return newExitError(1, "mean score %.3f below --fail-on threshold %.3f", meanScore(results), *failOn)
		}
	}
	if cancelled {
		fmt.Fprintln(os.Stderr, "evalctl: run cancelled, partial results written")
	}
	return nil
}

// memoryStoreFactory returns a constructor for the mission-memory store each
// scenario run gets, honoring --memory-continuity (§4.1):
//   - Isolated (default): a fresh in-memory store per trial, so no trial can
//     recall another trial's memory.
//   - Inherit/Shared: one store per scenario ID, shared across all of that
//     scenario's scale points and trials, so later trials can recall what
//     earlier trials wrote to Mission memory.
func memoryStoreFactory(mode memory.MemoryContinuityMode) func(scenarioID string) memory.Store {
	if mode == memory.MemoryIsolated {
		return func(string) memory.Store { return memory.NewInMemoryStore() }
	}
	var mu sync.Mutex
	stores := make(map[string]memory.Store)
	return func(scenarioID string) memory.Store {
		mu.Lock()
		defer mu.Unlock()
		if s, ok := stores[scenarioID]; ok {
			return s
		}
		s := memory.NewInMemoryStore()
		stores[scenarioID] = s
		return s
	}
}

// buildMatrix expands scenarios × scalePoints × trials, skipping any
// scenario a driver's capabilities cannot serve (§4.B).
func buildMatrix(scenarios []scenario.Scenario, scalePoints []scenario.ScalePoint, trials int, driver environment.Driver) []runTask {
	var tasks []runTask
	for _, s := range scenarios {
		if !driver.Capabilities().Satisfies(s.RequiredCapabilities) {
			fmt.Fprintf(os.Stderr, "evalctl: skipping %s: driver lacks required capabilities %v\n", s.ID, s.RequiredCapabilities)
			continue
		}
		for _, sp := range scalePoints {
			for trial := 0; trial < trials; trial++ {
				tasks = append(tasks, runTask{scenario: s, scalePoint: sp, trial: trial})
			}
		}
	}
	return tasks
}

// runMatrix drives every task, bounded by concurrency (default 1: strictly
// sequential, matching the teacher's "cross-scenario parallelism is
// optional" default). A fresh Runner is built per task via newRunner so
// each scenario run gets its own trace buffer (§5: a Trace is exclusively
// owned by its runner goroutine).
func runMatrix(ctx context.Context, tasks []runTask, concurrency int, newRunner func(scenario.Scenario) *runner.Runner) ([]runner.ScenarioResult, bool) {
	if concurrency < 1 {
		concurrency = 1
	}
	results := make([]runner.ScenarioResult, len(tasks))
	sem := make(chan struct{}, concurrency)
	var wg sync.WaitGroup
	var cancelled bool
	var mu sync.Mutex

	for i, task := range tasks {
		select {
		case <-ctx.Done():
			mu.Lock()
			cancelled = true
			mu.Unlock()
		default:
		}

		sem <- struct{}{}
		wg.Add(1)
		go func(i int, task runTask) {
			defer wg.Done()
			defer func() { <-sem }()
			rn := newRunner(task.scenario)
			results[i] = rn.RunScenario(ctx, task.scenario, task.scalePoint, task.trial)
			if results[i].Error == "cancelled" {
				mu.Lock()
				cancelled = true
				mu.Unlock()
			}
		}(i, task)
	}
	wg.Wait()
	return results, cancelled
}

func configHash(model string, scaleLabels []string, seed int64, trials int) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s|%v|%d|%d", model, scaleLabels, seed, trials)
	return fmt.Sprintf("%x", h.Sum(nil))[:16]
}

func meanScore(results []runner.ScenarioResult) float64 {
	if len(results) == 0 {
		return 1.0
	}
	var sum float64
	for _, r := range results {
		sum += r.Score
	}
	return sum / float64(len(results))
}

// persist writes the §6 output layout: JSON summary, Markdown report and
// raw/<run_id>.json full dump. Trace JSONL files are written incrementally
// by each Runner's WithTraceSink callback.
func persist(outputDir, benchmark, runID string, summary *aggregate.Summary, record aggregate.RunRecord) error {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", outputDir, err)
	}
	if err := os.MkdirAll(filepath.Join(outputDir, "raw"), 0o755); err != nil {
		return fmt.Errorf("mkdir raw: %w", err)
	}

	stamp := time.Now().Format("20060102-150405")
	jsonPath := filepath.Join(outputDir, fmt.Sprintf("%s-%s.json", benchmark, stamp))
	mdPath := filepath.Join(outputDir, fmt.Sprintf("%s-%s.md", benchmark, stamp))
	rawPath := filepath.Join(outputDir, "raw", runID+".json")

	summaryJSON, err := summary.JSON()
	if err != nil {
		return err
	}
	if err := os.WriteFile(jsonPath, summaryJSON, 0o644); err != nil {
		return fmt.Errorf("write summary json: %w", err)
	}
	if err := os.WriteFile(mdPath, []byte(summary.Markdown()), 0o644); err != nil {
		return fmt.Errorf("write summary md: %w", err)
	}

	rawJSON, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(rawPath, rawJSON, 0o644); err != nil {
		return fmt.Errorf("write raw dump: %w", err)
	}

	fmt.Printf("wrote %s\n", jsonPath)
	fmt.Printf("wrote %s\n", mdPath)
	fmt.Printf("wrote %s\n", rawPath)
	return nil
}
