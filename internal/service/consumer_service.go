// FILE: internal/service/consumer_service.go
package service

import (
	"context"
	"encoding/json"
	"strings"

	"feature-prioritizer/internal/entity"
	"feature-prioritizer/internal/pkg/logger"
	"feature-prioritizer/internal/pkg/metrics"
	"feature-prioritizer/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
)

const consumerModule = "consumer"

// EventForwarder relays events outside the process. *nats.Publisher satisfies it.
type EventForwarder interface {
	Publish(ctx context.Context, event events.Event) error
}

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	subscriber message.Subscriber
	topicName  string
	forwarder  EventForwarder
	log        logger.ILogger
	metrics    *metrics.Metrics
}

// NewConsumerService wires the bus subscriber. forwarder may be nil.
func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	forwarder EventForwarder,
	log logger.ILogger,
	m *metrics.Metrics,
) IConsumerService {
	return &consumerService{
		subscriber: subscriber,
		topicName:  topicName,
		forwarder:  forwarder,
		log:        log,
		metrics:    m,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	// Malformed messages are acked; redelivery cannot fix them.
	defer msg.Ack()

	var event events.BaseEvent
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		cs.log.Error(consumerModule, "Failed to unmarshal event", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err.Error(),
		})
		return
	}

	cs.log.Info(consumerModule, "Feature collection changed", event.Data)

	if event.Type == events.TypeFeaturesChanged {
		for _, fw := range []entity.Framework{entity.FrameworkRice, entity.FrameworkMoscow} {
			cs.metrics.SetFeatureCount(string(fw), countOf(event.Data, "count_"+string(fw)))
		}
	}

	if cs.forwarder != nil {
		if err := cs.forwarder.Publish(ctx, event); err != nil {
			cs.log.Warn(consumerModule, "Failed to forward event", map[string]interface{}{
				"type":  strings.ToLower(event.Type),
				"error": err.Error(),
			})
		}
	}
}

// countOf reads a count that went through JSON, where numbers decode as float64.
func countOf(data map[string]interface{}, key string) int {
	switch v := data[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return 0
}
