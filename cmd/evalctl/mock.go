package main

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/agentbench/harness/llm"
)

// registerMockHandler wires a deterministic TEXT_LARGE handler that never
// calls a real provider: it selects WAIT when the last user message mentions
// "wait" and REPLY otherwise, with a fixed thought and no parameters. This is
// what --mock (and the absence of --provider) selects, so a
// scenario repository can be exercised end to end without credentials.
func registerMockHandler(reg *llm.Registry) {
	reg.Register(llm.TextLarge, "mock", mockHandler)
}

func mockHandler(ctx context.Context, rt llm.Runtime, req llm.CompletionRequest) (string, error) {
	var last string
	for _, m := range req.Messages {
		if m.Role == llm.RoleUser {
			last = m.Content
		}
	}
	decision := struct {
		Thought    string         `json:"thought"`
		Action     string         `json:"action"`
		Parameters map[string]any `json:"parameters"`
	}{
		Thought:    "mock handler: acknowledging without consulting a real model",
		Action:     "REPLY",
		Parameters: map[string]any{},
	}
	if strings.Contains(strings.ToLower(last), "wait") {
		decision.Action = "WAIT"
	}
	out, err := json.Marshal(decision)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
