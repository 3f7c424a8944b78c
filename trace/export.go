package trace

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// WriteJSONL writes every step of t to path, one JSON object per line, per
// the persisted layout `traces/<run_id>/<scenario_id>.jsonl`. Parent
// directories are created as needed.
func (t *Trace) WriteJSONL(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("trace: mkdir %s: %w", filepath.Dir(path), err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("trace: create %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	enc := json.NewEncoder(w)
	for _, step := range t.Steps() {
		if err := enc.Encode(step); err != nil {
			return fmt.Errorf("trace: encode step: %w", err)
		}
	}
	return w.Flush()
}

// TracesPath builds the canonical path for a scenario's trace file under an
// output directory: <outputDir>/traces/<run_id>/<scenario_id>.jsonl
func TracesPath(outputDir, runID, scenarioID string) string {
	return filepath.Join(outputDir, "traces", runID, scenarioID+".jsonl")
}

// ReadJSONL reads a trace file written by WriteJSONL back into a slice of
// Steps, for report rendering or debugging. It does not reconstruct a
// Trace's internal clock/seq state.
func ReadJSONL(path string) ([]Step, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("trace: open %s: %w", path, err)
	}
	defer f.Close()

	var steps []Step
	dec := json.NewDecoder(f)
	for dec.More() {
		var s Step
		if err := dec.Decode(&s); err != nil {
			return nil, fmt.Errorf("trace: decode step: %w", err)
		}
		steps = append(steps, s)
	}
	return steps, nil
}
