// Package scenario holds the typed, immutable representation of a benchmark
// task: the scenario itself, its ordered turns, the outcomes expected of each
// turn, and the scale points a scenario can be stressed at.
package scenario

// OutcomeKind selects which evaluator checks an ExpectedOutcome.
type OutcomeKind string

const (
	ActionMatch         OutcomeKind = "ACTION_MATCH"
	ActionNotMatch      OutcomeKind = "ACTION_NOT_MATCH"
	TextContains        OutcomeKind = "TEXT_CONTAINS"
	TextNotContains     OutcomeKind = "TEXT_NOT_CONTAINS"
	ParamMatch          OutcomeKind = "PARAM_MATCH"
	ProvidersRequested  OutcomeKind = "PROVIDERS_REQUESTED"
	MemoryRecalled      OutcomeKind = "MEMORY_RECALLED"
	Custom              OutcomeKind = "CUSTOM"
)

// Actor identifies who produced a Turn's text.
type Actor string

const (
	ActorUser      Actor = "user"
	ActorSystem    Actor = "system"
	ActorAssistant Actor = "assistant"
)

// ExpectedOutcome is an immutable rule an Evaluator applies to a TurnResult.
// Value's concrete type depends on Kind: string or []string for the
// ACTION/TEXT kinds, map[string]string for PARAM_MATCH, []string for
// PROVIDERS_REQUESTED, and a predicate id string for CUSTOM.
type ExpectedOutcome struct {
	Kind   OutcomeKind `json:"kind" yaml:"kind"`
	Value  any         `json:"value" yaml:"value"`
	Weight float64     `json:"weight" yaml:"weight"`
}

// EffectiveWeight returns Weight, defaulting to 1.0 when unset (zero value).
func (o ExpectedOutcome) EffectiveWeight() float64 {
	if o.Weight == 0 {
		return 1.0
	}
	return o.Weight
}

// Turn is one exchange within a Scenario.
type Turn struct {
	Actor             Actor             `json:"actor" yaml:"actor"`
	Text              string            `json:"text" yaml:"text"`
	ExpectedOutcomes  []ExpectedOutcome `json:"expected_outcomes,omitempty" yaml:"expected_outcomes,omitempty"`
	ForbiddenOutcomes []ExpectedOutcome `json:"forbidden_outcomes,omitempty" yaml:"forbidden_outcomes,omitempty"`
	NewSession        bool              `json:"new_session,omitempty" yaml:"new_session,omitempty"`
	DelaySeconds      float64           `json:"delay_seconds,omitempty" yaml:"delay_seconds,omitempty"`
	OnlyInclude       []string          `json:"only_include,omitempty" yaml:"only_include,omitempty"`
}

// ScalePoint configures the context load a scenario is stressed at.
type ScalePoint struct {
	Label               string `json:"label" yaml:"label"`
	ActionCount         int    `json:"action_count" yaml:"action_count"`
	ProviderCount       int    `json:"provider_count" yaml:"provider_count"`
	ConversationPrefill int    `json:"conversation_prefill" yaml:"conversation_prefill"`
}

// Scenario is an immutable, declarative test case: an ordered sequence of
// turns plus the metadata needed to select and provision it.
type Scenario struct {
	ID                   string   `json:"id" yaml:"id"`
	Name                 string   `json:"name" yaml:"name"`
	Description          string   `json:"description,omitempty" yaml:"description,omitempty"`
	Level                int      `json:"level" yaml:"level"`
	Category             string   `json:"category" yaml:"category"`
	Tags                 []string `json:"tags,omitempty" yaml:"tags,omitempty"`
	Turns                []Turn   `json:"turns" yaml:"turns"`
	RequiredCapabilities []string `json:"required_capabilities,omitempty" yaml:"required_capabilities,omitempty"`
	RequiresMemory       bool     `json:"requires_memory,omitempty" yaml:"requires_memory,omitempty"`
	RequiresPlanning     bool     `json:"requires_planning,omitempty" yaml:"requires_planning,omitempty"`
	DistractorCount      int      `json:"distractor_count,omitempty" yaml:"distractor_count,omitempty"`
}

// hasAllTags reports whether s carries every tag in want, mirroring the
// teacher's eval.EvalSet tag-set intersection semantics.
func (s Scenario) hasAllTags(want []string) bool {
	have := make(map[string]struct{}, len(s.Tags))
	for _, t := range s.Tags {
		have[t] = struct{}{}
	}
	for _, w := range want {
		if _, ok := have[w]; !ok {
			return false
		}
	}
	return true
}
