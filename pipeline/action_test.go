package pipeline

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentbench/harness/schema"
)

func noopHandler(ctx context.Context, rt *Runtime, msg Message, state *ComposeState, opts ActionOptions, cb Callback) (ActionResult, error) {
	return ActionResult{Success: true}, nil
}

func TestActionRegistryResolveCaseInsensitive(t *testing.T) {
	r := NewActionRegistry()
	r.Register(ActionDef{Name: "CLICK", Handler: noopHandler})

	def, ok := r.Resolve("click")
	require.True(t, ok)
	assert.Equal(t, "CLICK", def.Name)
}

func TestActionRegistryHasSafeDefault(t *testing.T) {
	r := NewActionRegistry()
	assert.False(t, r.HasSafeDefault())

	r.Register(ActionDef{Name: "CLICK", Handler: noopHandler})
	assert.False(t, r.HasSafeDefault())

	r.Register(ActionDef{Name: Reply, Handler: noopHandler})
	assert.True(t, r.HasSafeDefault())

	name, ok := r.SafeDefault()
	assert.True(t, ok)
	assert.Equal(t, Reply, name)
}

func TestActionRegistryNamesPreservesOrder(t *testing.T) {
	r := NewActionRegistry()
	r.Register(ActionDef{Name: "B", Handler: noopHandler})
	r.Register(ActionDef{Name: "A", Handler: noopHandler})
	assert.Equal(t, []string{"B", "A"}, r.Names())
}

func TestCoerceParametersDropsUnknownKeepsRequired(t *testing.T) {
	def := ActionDef{
		Name: "CLICK",
		Schema: schema.Object(map[string]schema.JSON{
			"x": schema.Int(),
			"y": schema.Int(),
		}, "x", "y"),
	}
	coerced, ok := CoerceParameters(def, map[string]any{"x": 1, "y": 2, "extra": "drop-me"})
	require.True(t, ok)
	assert.Equal(t, map[string]any{"x": 1, "y": 2}, coerced)
}

func TestCoerceParametersMissingRequiredDegrades(t *testing.T) {
	def := ActionDef{
		Name: "CLICK",
		Schema: schema.Object(map[string]schema.JSON{
			"x": schema.Int(),
			"y": schema.Int(),
		}, "x", "y"),
	}
	_, ok := CoerceParameters(def, map[string]any{"x": 1})
	assert.False(t, ok)
}
