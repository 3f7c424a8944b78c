package pipeline

import (
	"fmt"
	"strings"
)

// SystemPrompt builds the structured system prompt for step 2 of the
// pipeline: it enumerates every registered action name and states the
// strict output grammar (a JSON object or an XML block, exactly one
// action).
func SystemPrompt(actionNames []string) string {
	var b strings.Builder
	b.WriteString("You are an autonomous agent driving a single action per turn.\n")
	b.WriteString("Available actions: ")
	b.WriteString(strings.Join(actionNames, ", "))
	b.WriteString("\n\n")
	b.WriteString("Respond with EXACTLY ONE action, either as a JSON object:\n")
	b.WriteString(`{"thought": "...", "action": "ACTION_NAME", "parameters": {...}}` + "\n")
	b.WriteString("or as an XML block with the same fields:\n")
	b.WriteString("<decision><thought>...</thought><action>ACTION_NAME</action>" +
		`<parameters><param name="key">value</param></parameters></decision>` + "\n")
	b.WriteString(fmt.Sprintf("If none of the above actions apply, respond with %q.\n", Reply))
	return b.String()
}
