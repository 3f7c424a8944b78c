package llm

// Role represents the role of a message sender in a conversation.
type Role string

const (
	// RoleSystem represents system-level instructions or context.
	RoleSystem Role = "system"

	// RoleUser represents messages from the user.
	RoleUser Role = "user"

	// RoleAssistant represents messages from the AI assistant.
	RoleAssistant Role = "assistant"
)

// Message represents a single message in a conversation. The harness's
// model contract is plain text in, plain text out: a handler never sees or
// returns structured tool calls, so Message carries no tool-call fields.
// The agent's chosen action is instead parsed out of the assistant's text
// by the pipeline's decoder against the {thought, action, parameters}
// grammar (see pipeline.ParseDecision).
type Message struct {
	// Role indicates who sent the message (system, user, or assistant).
	Role Role

	// Content is the text content of the message.
	Content string
}

// IsValid validates that the message has appropriate fields set for its role.
func (m Message) IsValid() bool {
	switch m.Role {
	case RoleSystem, RoleUser, RoleAssistant:
		return m.Content != ""
	default:
		return false
	}
}

// String returns a string representation of the role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the role is one of the defined constants.
func (r Role) IsValid() bool {
	switch r {
	case RoleSystem, RoleUser, RoleAssistant:
		return true
	default:
		return false
	}
}
