package pipeline

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/agentbench/harness/exec"
	"github.com/agentbench/harness/health"
	"github.com/agentbench/harness/input"
	"github.com/agentbench/harness/schema"
)

// defaultActionTimeout is the per-action-execution ceiling (§5) used by the
// EXEC and HTTP_REQUEST built-in actions; no parameter overrides it.
const defaultActionTimeout = 30 * time.Second

// NewReplyAction builds the REPLY safe-default action (§9): it performs no
// environment mutation, simply surfacing the model's own response text.
func NewReplyAction() ActionDef {
	return ActionDef{
		Name:        Reply,
		Description: "Responds in free text without taking an environment action.",
		Handler: func(ctx context.Context, rt *Runtime, msg Message, state *ComposeState, opts ActionOptions, cb Callback) (ActionResult, error) {
			return ActionResult{Success: true}, nil
		},
	}
}

// NewWaitAction builds the WAIT safe-default action (§9): a deliberate
// no-op used when the pipeline degrades after missing required parameters
// or exhausting model-call retries.
func NewWaitAction() ActionDef {
	return ActionDef{
		Name:        Wait,
		Description: "Takes no action this turn and waits for the next observation.",
		Handler: func(ctx context.Context, rt *Runtime, msg Message, state *ComposeState, opts ActionOptions, cb Callback) (ActionResult, error) {
			return ActionResult{Success: true}, nil
		},
	}
}

// NewNoopAction builds the NOOP safe-default action (§9), functionally
// identical to WAIT but named for benchmarks whose scenarios expect a
// distinct "no operation" symbol in their action catalog.
func NewNoopAction() ActionDef {
	return ActionDef{
		Name:        Noop,
		Description: "Explicitly takes no action.",
		Handler: func(ctx context.Context, rt *Runtime, msg Message, state *ComposeState, opts ActionOptions, cb Callback) (ActionResult, error) {
			return ActionResult{Success: true}, nil
		},
	}
}

// NewExecAction builds the EXEC built-in action: it runs command with args
// against the host shell with a bounded timeout, demonstrating the Action
// Dispatch contract end-to-end (grounded in exec.Run).
func NewExecAction() ActionDef {
	return ActionDef{
		Name:        "EXEC",
		Description: "Runs a shell command and captures its stdout/stderr.",
		Schema: schema.Object(map[string]schema.JSON{
			"command": schema.String(),
			"args":    schema.Array(schema.String()),
			"stdin":   schema.String(),
		}, "command"),
		Handler: execHandler,
	}
}

func execHandler(ctx context.Context, rt *Runtime, msg Message, state *ComposeState, opts ActionOptions, cb Callback) (ActionResult, error) {
	command := input.GetString(opts.Parameters, "command", "")
	if command == "" {
		return ActionResult{Success: false, Error: "missing required parameter: command"}, nil
	}

	args := input.GetStringSlice(opts.Parameters, "args")
	stdin := input.GetString(opts.Parameters, "stdin", "")

	if status := health.BinaryCheck(command); status.IsUnhealthy() {
		return ActionResult{Success: false, Error: status.Message}, nil
	}

	result, err := exec.Run(ctx, exec.Config{
		Command:   command,
		Args:      args,
		Timeout:   defaultActionTimeout,
		StdinData: []byte(stdin),
	})
	if err != nil {
		return ActionResult{Success: false, Error: err.Error()}, nil
	}

	cb(ActionResult{Success: result.ExitCode == 0, Text: string(result.Stdout)})

	return ActionResult{
		Success: result.ExitCode == 0,
		Text:    string(result.Stdout),
		Error:   string(result.Stderr),
		Values: map[string]any{
			"raw_code":  command,
			"exit_code": result.ExitCode,
		},
	}, nil
}

// NewHTTPAction builds the HTTP_REQUEST built-in action: a bounded HTTP
// call, the second reference implementation of the Action Dispatch
// contract (alongside EXEC).
func NewHTTPAction() ActionDef {
	return ActionDef{
		Name:        "HTTP_REQUEST",
		Description: "Issues an HTTP request and captures the response body.",
		Schema: schema.Object(map[string]schema.JSON{
			"method": schema.String(),
			"url":    schema.String(),
			"body":   schema.String(),
		}, "method", "url"),
		Handler: httpHandler,
	}
}

func httpHandler(ctx context.Context, rt *Runtime, msg Message, state *ComposeState, opts ActionOptions, cb Callback) (ActionResult, error) {
	method := strings.ToUpper(input.GetString(opts.Parameters, "method", "GET"))
	url := input.GetString(opts.Parameters, "url", "")
	if url == "" {
		return ActionResult{Success: false, Error: "missing required parameter: url"}, nil
	}
	body := input.GetString(opts.Parameters, "body", "")

	reqCtx, cancel := context.WithTimeout(ctx, defaultActionTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, method, url, strings.NewReader(body))
	if err != nil {
		return ActionResult{Success: false, Error: fmt.Sprintf("build request: %s", err)}, nil
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return ActionResult{Success: false, Error: err.Error()}, nil
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return ActionResult{Success: false, Error: fmt.Sprintf("read response: %s", err)}, nil
	}

	result := ActionResult{
		Success: resp.StatusCode < 400,
		Text:    string(data),
		Values:  map[string]any{"raw_code": method + " " + url, "status_code": resp.StatusCode},
	}
	cb(result)
	return result, nil
}
