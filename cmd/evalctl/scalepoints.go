package main

import "github.com/agentbench/harness/scenario"

// defaultScalePoints is the built-in catalog a run selects from via
// --scale: the four points small, medium, large and xlarge. evalctl has no
// way to supply other scale points.
var defaultScalePoints = []scenario.ScalePoint{
	{Label: "small", ActionCount: 5, ProviderCount: 1, ConversationPrefill: 0},
	{Label: "medium", ActionCount: 20, ProviderCount: 3, ConversationPrefill: 10},
	{Label: "large", ActionCount: 50, ProviderCount: 5, ConversationPrefill: 40},
	{Label: "xlarge", ActionCount: 100, ProviderCount: 8, ConversationPrefill: 100},
}

// scalePointsByLabel returns the ScalePoints in defaultScalePoints named by
// labels, in catalog order. An empty labels list selects the whole catalog.
func scalePointsByLabel(labels []string) []scenario.ScalePoint {
	if len(labels) == 0 {
		return defaultScalePoints
	}
	want := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		want[l] = struct{}{}
	}
	var out []scenario.ScalePoint
	for _, sp := range defaultScalePoints {
		if _, ok := want[sp.Label]; ok {
			out = append(out, sp)
		}
	}
	return out
}
