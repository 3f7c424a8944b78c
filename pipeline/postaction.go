package pipeline

import "context"

// PostActionEvaluator inspects the result of an Action Dispatch and may
// synthesize a follow-up Message fed back into step 1 (Compose State)
// within the same turn, up to the Pipeline's configured chain depth. This
// is how an agent completes a multi-step subtask without waiting for the
// scenario's next turn (§4.D step 5).
type PostActionEvaluator interface {
	// Evaluate returns (followUp, true) to continue the chain with
	// followUp as the next Message, or (zero, false) to stop.
	Evaluate(ctx context.Context, result ActionResult, msg Message) (Message, bool)
}

// PostActionEvaluatorFunc adapts a plain function to PostActionEvaluator.
type PostActionEvaluatorFunc func(ctx context.Context, result ActionResult, msg Message) (Message, bool)

// Evaluate implements PostActionEvaluator.
func (f PostActionEvaluatorFunc) Evaluate(ctx context.Context, result ActionResult, msg Message) (Message, bool) {
	return f(ctx, result, msg)
}

const (
	// DefaultChainDepth is the default number of PostActionEvaluator hops
	// allowed within one turn.
	DefaultChainDepth = 1
	// MaxChainDepth is the hard ceiling on chain hops, regardless of
	// configuration.
	MaxChainDepth = 5
)
