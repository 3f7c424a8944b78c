package pipeline

import (
	"github.com/agentbench/harness/environment"
	"github.com/agentbench/harness/llm"
	"github.com/agentbench/harness/planning"
)

// Message is what the pipeline is asked to decide on: the environment's
// current Observation plus the conversation history accumulated so far.
// OnlyInclude, when non-empty, restricts Compose State to providers named
// in the list (a turn's only_include filter). Plan is non-nil only for
// scenarios flagged RequiresPlanning; the "planning" Provider renders it
// into the composed state.
type Message struct {
	Observation environment.Observation
	History     []llm.Message
	OnlyInclude []string
	Plan        planning.PlanningContext
}

// includesProvider reports whether name should run for this message: every
// provider runs unless OnlyInclude is set and name is absent from it.
func (m Message) includesProvider(name string) bool {
	if len(m.OnlyInclude) == 0 {
		return true
	}
	for _, n := range m.OnlyInclude {
		if n == name {
			return true
		}
	}
	return false
}
