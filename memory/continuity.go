package memory

import (
	"errors"
	"fmt"
	"time"
)

// MemoryContinuityMode defines how memory state is handled across multiple
// agent execution runs within a mission.
//
// Memory continuity controls whether runs can access or share memory state
// from previous runs, enabling different collaboration and isolation patterns:
//
//   - MemoryIsolated: Each run has completely isolated memory (default)
//   - MemoryInherit: New runs see and write the memory of prior runs (handled like MemoryShared)
//   - MemoryShared: All runs share the same memory namespace with full read/write access
//
// The default mode is MemoryIsolated to ensure backwards compatibility and
// prevent unintended state sharing between runs.
//
// Example usage (cmd/evalctl's --memory-continuity flag):
//
//	mode := MemoryContinuityMode(*memContinuity)
//	if err := mode.Validate(); err != nil {
//	    return err
//	}
//	storeFor := memoryStoreFactory(mode)
//	rn := runner.New(driver, p, runner.WithMemoryStore(storeFor(scenarioID)))
type MemoryContinuityMode string

const (
	// MemoryIsolated indicates that each run has completely isolated memory.
	// This is the default mode and provides the strongest isolation guarantees.
	//
	// Use cases:
	//   - Independent parallel runs that should not interfere with each other
	//   - Testing scenarios where clean state is required
	//   - Security-sensitive operations requiring strict isolation
	//
	// Behavior:
	//   - Each run starts with empty memory state
	//   - Changes made during a run are not visible to other runs
	//   - Previous run memory is not accessible
	MemoryIsolated MemoryContinuityMode = "isolated"

	// MemoryInherit indicates that new runs see the memory left by prior runs.
	// cmd/evalctl handles it exactly like MemoryShared: every run of a
	// scenario gets the same store.
	//
	// Use cases:
	//   - Sequential runs building on previous results
	//   - Progressive refinement workflows
	//   - Learning from historical run data
	//
	// Behavior:
	//   - New runs start with the memory written by earlier runs
	//   - Writes go directly into that same store and are visible to later runs
	//   - There is no copy-on-write, no read-only view of earlier runs and no
	//     per-run namespace
	MemoryInherit MemoryContinuityMode = "inherit"

	// MemoryShared indicates that all runs share the same memory namespace
	// with full read and write access.
	//
	// Use cases:
	//   - Collaborative multi-agent scenarios
	//   - Shared state accumulation across runs
	//   - Real-time coordination between concurrent runs
	//
	// Behavior:
	//   - All runs read and write to the same memory namespace
	//   - Changes made by one run are immediately visible to all other runs
	//   - No isolation between runs
	//   - Concurrent access requires coordination to avoid race conditions
	MemoryShared MemoryContinuityMode = "shared"
)

// DefaultMemoryContinuity is the default memory continuity mode.
// It is set to MemoryIsolated to ensure backwards compatibility and
// prevent unintended state sharing between runs.
const DefaultMemoryContinuity = MemoryIsolated

// Common errors returned by continuity operations.
var (
	// ErrInvalidMode is returned when a MemoryContinuityMode value is not recognized.
	ErrInvalidMode = errors.New("memory: invalid continuity mode")
)

// String returns the string representation of the MemoryContinuityMode.
// This implements the fmt.Stringer interface.
func (m MemoryContinuityMode) String() string {
	return string(m)
}

// IsValid returns true if the MemoryContinuityMode is one of the defined constants.
// This method is useful for validation in configuration parsing and API handlers.
//
// Example:
//
//	mode := MemoryContinuityMode("isolated")
//	if !mode.IsValid() {
//	    return fmt.Errorf("invalid mode: %s", mode)
//	}
func (m MemoryContinuityMode) IsValid() bool {
	switch m {
	case MemoryIsolated, MemoryInherit, MemoryShared:
		return true
	default:
		return false
	}
}

// Validate returns an error if the MemoryContinuityMode is not valid.
// This is a convenience method that wraps IsValid() with a descriptive error.
//
// Example:
//
//	mode := MemoryContinuityMode(userInput)
//	if err := mode.Validate(); err != nil {
//	    return fmt.Errorf("invalid continuity mode: %w", err)
//	}
func (m MemoryContinuityMode) Validate() error {
	if !m.IsValid() {
		return fmt.Errorf("%w: %q (must be one of: isolated, inherit, shared)", ErrInvalidMode, m)
	}
	return nil
}

// HistoricalValue represents a value from a previous run's memory, with
// metadata about when and where it was stored. No store in this package
// returns it; MissionMemory.History returns Items.
type HistoricalValue struct {
	// Value is the actual data stored in memory.
	// The type depends on what was originally stored and may require
	// type assertion to use.
	Value any `json:"value"`

	// RunNumber is the sequential run number within the mission where
	// this value was stored (1-based indexing).
	// This helps track the temporal sequence of memory changes.
	RunNumber int `json:"run_number"`

	// MissionID is the unique identifier of the mission this value belongs to.
	// This ensures values are not confused across different missions.
	MissionID string `json:"mission_id"`

	// StoredAt is the timestamp when this value was stored.
	// This provides precise temporal information beyond run numbers.
	StoredAt time.Time `json:"stored_at"`
}
