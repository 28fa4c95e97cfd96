package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "FEATURES_CHANGED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is the one concrete Event; it is also the wire shape on the
// in-process bus.
type BaseEvent struct {
	Type       string                 `json:"type"`
	Data       map[string]interface{} `json:"data"`
	OccurredAt time.Time              `json:"occurred_at"`
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

const TypeFeaturesChanged = "FEATURES_CHANGED"

// NewFeaturesChanged describes a mutation of the feature collection.
// counts maps framework tag to the number of features after the mutation.
func NewFeaturesChanged(kind string, counts map[string]int, at time.Time) BaseEvent {
	total := 0
	data := map[string]interface{}{"kind": kind}
	for framework, n := range counts {
		data["count_"+framework] = n
		total += n
	}
	data["total"] = total
	return BaseEvent{
		Type:       TypeFeaturesChanged,
		Data:       data,
		OccurredAt: at,
	}
}
