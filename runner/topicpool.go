package runner

// Topic is one synthetic user/assistant exchange used to pad conversation
// history before a scenario's real turns begin.
type Topic struct {
	User      string
	Assistant string
}

// TopicPool cycles through a fixed set of Topics to build
// conversation_prefill history (§4.E step 2). Prefill never triggers the
// pipeline; it exists only to load context the scale point is stressing.
type TopicPool struct {
	topics []Topic
}

// NewTopicPool builds a pool from topics. An empty list falls back to
// DefaultTopics so a Runner is never left without prefill material.
func NewTopicPool(topics ...Topic) *TopicPool {
	if len(topics) == 0 {
		topics = DefaultTopics
	}
	return &TopicPool{topics: topics}
}

// At returns the i-th topic, cycling through the pool.
func (p *TopicPool) At(i int) Topic {
	return p.topics[i%len(p.topics)]
}

// DefaultTopics is the built-in prefill material used when a benchmark does
// not configure its own topic pool.
var DefaultTopics = []Topic{
	{User: "What's the weather usually like this time of year?", Assistant: "It varies by region, but generally mild with occasional rain."},
	{User: "Can you summarize the last quarterly report?", Assistant: "Revenue grew modestly while operating costs stayed flat."},
	{User: "What's a good way to organize a small team's backlog?", Assistant: "A simple kanban board with weekly triage works well for small teams."},
	{User: "Do you have any book recommendations?", Assistant: "Depends on the genre, but a well-reviewed recent nonfiction title is usually a safe bet."},
	{User: "How should I prioritize these competing deadlines?", Assistant: "Rank by business impact first, then by how reversible a delay would be."},
}
