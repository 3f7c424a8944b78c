package pipeline

import (
	"encoding/xml"
	"strings"

	"github.com/agentbench/harness/parser"
)

// Decision is the model's structured turn output: exactly one action per
// §4.D step 2's grammar, as either the JSON or XML shape.
type Decision struct {
	Thought    string         `json:"thought"`
	Action     string         `json:"action"`
	Parameters map[string]any `json:"parameters"`
}

type xmlParam struct {
	Name  string `xml:"name,attr"`
	Value string `xml:",chardata"`
}

type xmlDecision struct {
	XMLName    xml.Name   `xml:"decision"`
	Thought    string     `xml:"thought"`
	Action     string     `xml:"action"`
	Parameters []xmlParam `xml:"parameters>param"`
}

// ParseDecision extracts a Decision from raw model output, trying JSON
// first, then an XML block, and finally falling back to treating the whole
// output as freeform prose (action REPLY, the trimmed prose kept as the
// thought). Empty output yields REPLY with an empty thought.
func ParseDecision(raw string) Decision {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Decision{Action: Reply}
	}

	if strings.HasPrefix(trimmed, "{") {
		if d, err := parser.ParseJSON[Decision]([]byte(trimmed)); err == nil && d.Action != "" {
			return *d
		}
	}

	if strings.HasPrefix(trimmed, "<") {
		if d, err := parser.ParseXML[xmlDecision]([]byte(trimmed)); err == nil && d.Action != "" {
			params := make(map[string]any, len(d.Parameters))
			for _, p := range d.Parameters {
				params[p.Name] = p.Value
			}
			return Decision{Thought: d.Thought, Action: d.Action, Parameters: params}
		}
	}

	// Freeform prose: no recognizable action marker, fall back to REPLY
	// with the raw text preserved as the response.
	return Decision{Action: Reply, Thought: trimmed}
}
