package service

import (
	"context"
	"encoding/json"

	"ai-artpoet-be/internal/pkg/logger"
	"ai-artpoet-be/pkg/analytics"
	"ai-artpoet-be/pkg/events"
	natspub "ai-artpoet-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill/message"
)

// AnalyticsConsumer drains the in-process analytics topic, writes each event
// to the isolated analytics log and forwards it to NATS when a publisher is
// configured. It runs on its own goroutine for the lifetime of the process.
type AnalyticsConsumer struct {
	subscriber message.Subscriber
	topic      string
	log        logger.ILogger
	nats       *natspub.Publisher
}

func NewAnalyticsConsumer(
	subscriber message.Subscriber,
	topic string,
	log logger.ILogger,
	nats *natspub.Publisher,
) *AnalyticsConsumer {
	return &AnalyticsConsumer{
		subscriber: subscriber,
		topic:      topic,
		log:        log,
		nats:       nats,
	}
}

// Start subscribes and consumes until ctx is cancelled.
func (c *AnalyticsConsumer) Start(ctx context.Context) error {
	messages, err := c.subscriber.Subscribe(ctx, c.topic)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			c.handle(ctx, msg)
			msg.Ack()
		}
	}()
	return nil
}

func (c *AnalyticsConsumer) handle(ctx context.Context, msg *message.Message) {
	var tracked analytics.TrackedEvent
	if err := json.Unmarshal(msg.Payload, &tracked); err != nil {
		c.log.Warn("analytics", "dropping malformed analytics event", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	c.log.Info("analytics", tracked.Event, tracked.Payload)

	if c.nats != nil {
		err := c.nats.Publish(ctx, events.BaseEvent{
			Type:       tracked.Event,
			Data:       tracked.Payload,
			OccurredAt: tracked.OccurredAt,
		})
		if err != nil {
			c.log.Warn("analytics", "failed to forward event to NATS", map[string]interface{}{
				"event": tracked.Event,
				"error": err.Error(),
			})
		}
	}
}
