// Package llm provides types and interfaces for working with Large Language Models
// in the the harness.
//
// This package defines the core abstractions for LLM interactions, including:
//   - Message types for conversations (system, user, assistant)
//   - Completion requests and responses
//   - A model-handler Registry, keyed by (ModelType, provider)
//   - LLM slot definitions and requirements
//   - Token usage tracking
//
// # Message Types
//
// The Message type represents a single message in a conversation with an LLM.
// A HandlerFunc takes plain text in and returns plain text out: there is no
// structured tool-calling surface here, since the pipeline's grammar asks
// the model for a {thought, action, parameters} JSON/XML object and parses
// the chosen action out of the response text itself (see pipeline.ParseDecision).
//
//	msg := llm.Message{
//	    Role:    llm.RoleUser,
//	    Content: "What is the weather in San Francisco?",
//	}
//
// # Completion Requests
//
// CompletionRequest represents a request to an LLM for text generation.
// Use functional options to configure the request:
//
//	req := llm.NewCompletionRequest(messages,
//	    llm.WithTemperature(0.7),
//	    llm.WithMaxTokens(1000),
//	)
//
// # Model Handler Registry
//
// Registry resolves a HandlerFunc for a (ModelType, provider) pair; the
// pipeline consults it once per turn via Resolve, falling back to the
// first-registered handler for a ModelType when no provider override is
// given:
//
//	reg := llm.NewRegistry()
//	reg.Register(llm.TextLarge, "mock", mockHandler)
//	handler, err := reg.Resolve(llm.TextLarge, "")
//
// # Slot Definitions
//
// Slots represent different LLM capabilities needed by an agent under evaluation.
// SlotDefinition specifies requirements like context window size and required features:
//
//	slot := llm.SlotDefinition{
//	    Name:             "primary",
//	    Description:      "Main conversational LLM",
//	    Required:         true,
//	    MinContextWindow: 32000,
//	    RequiredFeatures: []string{"function_calling", "streaming"},
//	    PreferredModels:  []string{"gpt-4-turbo", "claude-3-opus"},
//	}
//
// # Token Tracking
//
// Track token usage across different LLM slots with TokenTracker:
//
//	tracker := llm.NewTokenTracker()
//	tracker.Add("primary", response.Usage)
//	total := tracker.Total()
//	fmt.Printf("Total tokens used: %d\n", total.TotalTokens)
package llm
