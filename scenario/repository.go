package scenario

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Repository is an immutable, order-preserving collection of Scenarios,
// read-only after LoadRepository returns.
type Repository struct {
	scenarios []Scenario
}

// NewRepository builds a Repository directly from an in-memory slice,
// preserving the given order. Useful for tests and embedded scenario sets.
func NewRepository(scenarios []Scenario) *Repository {
	cp := make([]Scenario, len(scenarios))
	copy(cp, scenarios)
	return &Repository{scenarios: cp}
}

// LoadRepository reads every .json, .yaml and .yml file directly under dir
// (format dispatched by extension, mirroring the teacher's LoadEvalSet) and
// returns a Repository preserving lexical filename order.
func LoadRepository(dir string) (*Repository, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("scenario: read dir %s: %w", dir, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if ext == ".json" || ext == ".yaml" || ext == ".yml" {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	var scenarios []Scenario
	for _, name := range names {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("scenario: read %s: %w", path, err)
		}

		var loaded []Scenario
		switch strings.ToLower(filepath.Ext(name)) {
		case ".json":
			// A file may hold either a single scenario object or an array.
			if err := json.Unmarshal(data, &loaded); err != nil {
				var single Scenario
				if err2 := json.Unmarshal(data, &single); err2 != nil {
					return nil, fmt.Errorf("scenario: parse %s: %w", path, err)
				}
				loaded = []Scenario{single}
			}
		default: // .yaml / .yml
			if err := yaml.Unmarshal(data, &loaded); err != nil {
				var single Scenario
				if err2 := yaml.Unmarshal(data, &single); err2 != nil {
					return nil, fmt.Errorf("scenario: parse %s: %w", path, err)
				}
				loaded = []Scenario{single}
			}
		}
		scenarios = append(scenarios, loaded...)
	}

	repo := NewRepository(scenarios)
	if err := repo.Validate(); err != nil {
		return nil, err
	}
	return repo, nil
}

// All returns every scenario in load order. The returned slice is a copy;
// mutating it does not affect the Repository.
func (r *Repository) All() []Scenario {
	cp := make([]Scenario, len(r.scenarios))
	copy(cp, r.scenarios)
	return cp
}

// Len reports the number of scenarios in the repository.
func (r *Repository) Len() int { return len(r.scenarios) }

// Validate checks the §3 invariants: every scenario has at least one turn,
// and scenario ids are unique within the repository.
func (r *Repository) Validate() error {
	seen := make(map[string]struct{}, len(r.scenarios))
	for _, s := range r.scenarios {
		if len(s.Turns) == 0 {
			return fmt.Errorf("scenario: %q has no turns", s.ID)
		}
		if s.ID == "" {
			return fmt.Errorf("scenario: scenario with name %q has empty id", s.Name)
		}
		if _, dup := seen[s.ID]; dup {
			return fmt.Errorf("scenario: duplicate scenario id %q", s.ID)
		}
		seen[s.ID] = struct{}{}
	}
	return nil
}

// ByLevels returns, in original order, scenarios whose Level is in levels.
func (r *Repository) ByLevels(levels []int) *Repository {
	want := make(map[int]struct{}, len(levels))
	for _, l := range levels {
		want[l] = struct{}{}
	}
	var out []Scenario
	for _, s := range r.scenarios {
		if _, ok := want[s.Level]; ok {
			out = append(out, s)
		}
	}
	return NewRepository(out)
}

// ByTags returns, in original order, scenarios carrying every tag in tags
// (tag-set intersection, not union).
func (r *Repository) ByTags(tags []string) *Repository {
	if len(tags) == 0 {
		return NewRepository(r.scenarios)
	}
	var out []Scenario
	for _, s := range r.scenarios {
		if s.hasAllTags(tags) {
			out = append(out, s)
		}
	}
	return NewRepository(out)
}

// ByIDs returns, in original order, scenarios whose id is in ids.
func (r *Repository) ByIDs(ids []string) *Repository {
	want := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}
	var out []Scenario
	for _, s := range r.scenarios {
		if _, ok := want[s.ID]; ok {
			out = append(out, s)
		}
	}
	return NewRepository(out)
}
