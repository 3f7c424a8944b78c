package pipeline

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentbench/harness/environment"
	"github.com/agentbench/harness/plugin"
	"github.com/agentbench/harness/schema"
)

func newEchoPlugin(t *testing.T) plugin.Plugin {
	t.Helper()
	cfg := plugin.NewConfig()
	cfg.SetName("echo")
	cfg.SetVersion("1.0.0")
	cfg.SetDescription("echoes the instruction back as provider text")
	cfg.AddMethodWithDesc(
		"render",
		"renders the current instruction",
		func(ctx context.Context, params map[string]any) (any, error) {
			return map[string]any{"text": params["instruction"]}, nil
		},
		schema.Object(map[string]schema.JSON{"instruction": schema.String()}),
		schema.Object(map[string]schema.JSON{"text": schema.String()}),
	)
	p, err := plugin.New(cfg)
	require.NoError(t, err)
	return p
}

func TestProviderPluginProduce(t *testing.T) {
	pp := NewProviderPlugin(newEchoPlugin(t), "render", 10, false, false, nil)
	assert.Equal(t, "echo", pp.Name())
	assert.Equal(t, 10, pp.Position())

	msg := Message{Observation: environment.Observation{Instruction: "click Submit"}}
	result, err := pp.Produce(context.Background(), nil, msg, nil)
	require.NoError(t, err)
	assert.Equal(t, "click Submit", result.Text)

	require.NoError(t, pp.Shutdown(context.Background()))
}
