package analytics

import (
	"encoding/json"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

// Tracker is the fire-and-forget analytics sink the orchestrators call.
// Implementations must never block the caller or surface errors into core
// control flow; a lost event is acceptable, a stalled intent is not.
type Tracker interface {
	Track(event string, payload map[string]interface{})
}

// TrackedEvent is the wire shape placed on the analytics topic.
type TrackedEvent struct {
	Event      string                 `json:"event"`
	Payload    map[string]interface{} `json:"payload"`
	OccurredAt time.Time              `json:"occurredAt"`
}

// BusTracker publishes events onto an in-process watermill topic. A consumer
// drains the topic on its own goroutine, keeping analytics I/O fully
// decoupled from the intents that produce it.
type BusTracker struct {
	publisher message.Publisher
	topic     string
}

func NewBusTracker(publisher message.Publisher, topic string) *BusTracker {
	return &BusTracker{
		publisher: publisher,
		topic:     topic,
	}
}

func (t *BusTracker) Track(event string, payload map[string]interface{}) {
	if payload == nil {
		payload = map[string]interface{}{}
	}
	data, err := json.Marshal(TrackedEvent{
		Event:      event,
		Payload:    payload,
		OccurredAt: time.Now(),
	})
	if err != nil {
		return
	}
	// Publish errors are swallowed on purpose: analytics never affects the
	// operation that emitted the event.
	_ = t.publisher.Publish(t.topic, message.NewMessage(watermill.NewUUID(), data))
}

// NopTracker discards everything. Used in tests.
type NopTracker struct{}

func (NopTracker) Track(string, map[string]interface{}) {}
