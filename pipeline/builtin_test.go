package pipeline

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecActionRunsCommand(t *testing.T) {
	def := NewExecAction()
	assert.Equal(t, "EXEC", def.Name)

	result, err := def.Handler(context.Background(), nil, Message{}, nil,
		ActionOptions{Parameters: map[string]any{"command": "echo", "args": []any{"hello"}}},
		func(ActionResult) {})
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Contains(t, result.Text, "hello")
}

func TestExecActionMissingCommand(t *testing.T) {
	def := NewExecAction()
	result, err := def.Handler(context.Background(), nil, Message{}, nil, ActionOptions{}, func(ActionResult) {})
	require.NoError(t, err)
	assert.False(t, result.Success)
}

func TestExecActionUnknownBinary(t *testing.T) {
	def := NewExecAction()
	result, err := def.Handler(context.Background(), nil, Message{}, nil,
		ActionOptions{Parameters: map[string]any{"command": "definitely-not-a-real-binary-xyz"}},
		func(ActionResult) {})
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "not found in PATH")
}

func TestExecActionNonZeroExit(t *testing.T) {
	def := NewExecAction()
	result, err := def.Handler(context.Background(), nil, Message{}, nil,
		ActionOptions{Parameters: map[string]any{"command": "false"}},
		func(ActionResult) {})
	require.NoError(t, err)
	assert.False(t, result.Success)
}

func TestHTTPActionGet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	def := NewHTTPAction()
	assert.Equal(t, "HTTP_REQUEST", def.Name)

	result, err := def.Handler(context.Background(), nil, Message{}, nil,
		ActionOptions{Parameters: map[string]any{"method": "GET", "url": srv.URL}},
		func(ActionResult) {})
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "ok", result.Text)
}

func TestHTTPActionMissingURL(t *testing.T) {
	def := NewHTTPAction()
	result, err := def.Handler(context.Background(), nil, Message{}, nil,
		ActionOptions{Parameters: map[string]any{"method": "GET"}},
		func(ActionResult) {})
	require.NoError(t, err)
	assert.False(t, result.Success)
}

func TestHTTPActionServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	def := NewHTTPAction()
	result, err := def.Handler(context.Background(), nil, Message{}, nil,
		ActionOptions{Parameters: map[string]any{"method": "GET", "url": srv.URL}},
		func(ActionResult) {})
	require.NoError(t, err)
	assert.False(t, result.Success)
}
