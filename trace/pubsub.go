package trace

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Mirror publishes every appended Step to a Redis pub/sub channel so a
// dashboard can watch progress live, independent of the durable JSONL
// export. evalctl does not wire one.
type Mirror struct {
	rdb *redis.Client
}

// NewMirror wraps an existing Redis client. A nil rdb is valid and makes
// every Publish call a no-op, so wiring a Mirror is optional.
func NewMirror(rdb *redis.Client) *Mirror {
	return &Mirror{rdb: rdb}
}

// Channel builds the canonical pub/sub channel name for a scenario's trace.
func Channel(runID, scenarioID string) string {
	return fmt.Sprintf("harness:trace:%s:%s", runID, scenarioID)
}

// Publish mirrors step to the scenario's channel. Errors are returned to
// the caller (typically logged and ignored — pub/sub mirroring is best
// effort and must never block scenario execution).
func (m *Mirror) Publish(ctx context.Context, runID, scenarioID string, step Step) error {
	if m == nil || m.rdb == nil {
		return nil
	}
	payload, err := json.Marshal(step)
	if err != nil {
		return fmt.Errorf("trace: marshal step: %w", err)
	}
	return m.rdb.Publish(ctx, Channel(runID, scenarioID), payload).Err()
}

// Subscribe opens a subscription to a scenario's trace channel, decoding
// each message back into a Step. The returned channel closes when ctx is
// cancelled or the subscription is closed.
func Subscribe(ctx context.Context, rdb *redis.Client, runID, scenarioID string) (<-chan Step, error) {
	sub := rdb.Subscribe(ctx, Channel(runID, scenarioID))
	raw := sub.Channel()

	out := make(chan Step)
	go func() {
		defer close(out)
		defer sub.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-raw:
				if !ok {
					return
				}
				var step Step
				if err := json.Unmarshal([]byte(msg.Payload), &step); err != nil {
					continue
				}
				select {
				case out <- step:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}
