package main

import (
	"fmt"

	"github.com/agentbench/harness/scenario"
)

// filters is the common scenario-selection surface shared by run, list and
// baselines (§6 CLI flags --levels/--tags/--ids).
type filters struct {
	dir    string
	levels []int
	tags   []string
	ids    []string
}

// loadFiltered loads the repository at f.dir and applies every configured
// filter, in the order levels → tags → ids, each order-preserving.
func loadFiltered(f filters) ([]scenario.Scenario, error) {
	if f.dir == "" {
		return nil, fmt.Errorf("--scenarios is required")
	}
	repo, err := scenario.LoadRepository(f.dir)
	if err != nil {
		return nil, fmt.Errorf("load scenarios: %w", err)
	}
	if len(f.levels) > 0 {
		repo = repo.ByLevels(f.levels)
	}
	if len(f.tags) > 0 {
		repo = repo.ByTags(f.tags)
	}
	if len(f.ids) > 0 {
		repo = repo.ByIDs(f.ids)
	}
	return repo.All(), nil
}
