// FILE: internal/service/publisher_service.go
package service

import (
	"context"
	"encoding/json"

	"feature-prioritizer/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

// FeatureEventsTopic carries collection change events on the in-process bus.
const FeatureEventsTopic = "feature_events"

type IPublisherService interface {
	Publish(ctx context.Context, event events.Event) error
}

type publisherService struct {
	publisher message.Publisher
	topicName string
}

func NewPublisherService(publisher message.Publisher, topicName string) IPublisherService {
	return &publisherService{
		publisher: publisher,
		topicName: topicName,
	}
}

func (p *publisherService) Publish(ctx context.Context, event events.Event) error {
	payload, err := json.Marshal(events.BaseEvent{
		Type:       event.EventType(),
		Data:       event.Payload(),
		OccurredAt: event.Timestamp(),
	})
	if err != nil {
		return err
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.SetContext(ctx)
	return p.publisher.Publish(p.topicName, msg)
}

type noopPublisherService struct{}

// NewNoopPublisherService drops every event. The CLI uses it.
func NewNoopPublisherService() IPublisherService {
	return noopPublisherService{}
}

func (noopPublisherService) Publish(context.Context, events.Event) error { return nil }
