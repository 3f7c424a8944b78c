package main

import (
	"fmt"

	"github.com/agentbench/harness/eval"
	"github.com/agentbench/harness/llm"
	"github.com/agentbench/harness/pipeline"
	"github.com/agentbench/harness/types"
)

// modelConfig carries the run-configuration knobs §4.D step 2 reads
// (temperature, max-tokens, provider override, mock toggle).
type modelConfig struct {
	provider    string
	useMock     bool
	temperature float64
	maxTokens   int
}

// buildPipeline wires a Runtime and Pipeline the way a CLI-driven run does
// by default: the three built-in safe-default actions, the EXEC and
// HTTP_REQUEST reference actions, the observation/planning/history/
// action-catalog providers, environment-variable credentials, and the mock model handler
// (the only TEXT_LARGE handler this module ships — real provider SDKs are
// out of scope per spec §1).
func buildPipeline(mc modelConfig) (*pipeline.Pipeline, *pipeline.Runtime, *eval.CustomRegistry, error) {
	actions := pipeline.NewActionRegistry()
	actions.Register(pipeline.NewReplyAction())
	actions.Register(pipeline.NewWaitAction())
	actions.Register(pipeline.NewNoopAction())
	actions.Register(pipeline.NewExecAction())
	actions.Register(pipeline.NewHTTPAction())

	models := llm.NewRegistry()
	registerMockHandler(models)

	rt := pipeline.NewRuntime(actions, models, types.EnvCredentialStore{}, 0)
	pipeline.RegisterBuiltinProviders(rt, 20)

	opts := []pipeline.Option{}
	if mc.useMock || mc.provider == "" {
		opts = append(opts, pipeline.WithProviderOverride("mock"))
	} else {
		opts = append(opts, pipeline.WithProviderOverride(mc.provider))
	}
	if mc.temperature != 0 {
		opts = append(opts, pipeline.WithTemperature(mc.temperature))
	}
	if mc.maxTokens != 0 {
		opts = append(opts, pipeline.WithMaxTokens(mc.maxTokens))
	}

	p, err := pipeline.New(rt, opts...)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("build pipeline: %w", err)
	}

	customEval, err := eval.NewCustomRegistry()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("build custom outcome registry: %w", err)
	}

	return p, rt, customEval, nil
}
