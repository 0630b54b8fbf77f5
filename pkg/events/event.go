package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// DomainEvent is the interface all domain events must implement.
type DomainEvent interface {
	EventID() uuid.UUID
	EventType() string
	AggregateID() string
	AggregateType() string
	OccurredAt() time.Time
	Payload() []byte
}

// Publisher publishes domain events to a message broker topic.
type Publisher interface {
	Publish(ctx context.Context, topic string, events ...DomainEvent) error
}

// BaseEvent provides a default implementation of DomainEvent.
type BaseEvent struct {
	occurredAt    time.Time
	eventType     string
	aggregateID   string
	aggregateType string
	payload       []byte
	id            uuid.UUID
}

// NewBaseEvent creates a BaseEvent with a generated id stamped at the current UTC time.
func NewBaseEvent(eventType, aggregateID, aggregateType string, payload []byte) BaseEvent {
	return BaseEvent{
		id:            uuid.New(),
		eventType:     eventType,
		aggregateID:   aggregateID,
		aggregateType: aggregateType,
		occurredAt:    time.Now().UTC(),
		payload:       payload,
	}
}

func (e BaseEvent) EventID() uuid.UUID    { return e.id }
func (e BaseEvent) EventType() string     { return e.eventType }
func (e BaseEvent) AggregateID() string   { return e.aggregateID }
func (e BaseEvent) AggregateType() string { return e.aggregateType }
func (e BaseEvent) OccurredAt() time.Time { return e.occurredAt }

// Payload returns the serialized event payload.
func (e BaseEvent) Payload() []byte { return e.payload }

// RestoreBaseEvent rebuilds a stored event with its original id and time.
func RestoreBaseEvent(id uuid.UUID, eventType, aggregateID, aggregateType string, occurredAt time.Time, payload []byte) BaseEvent {
	return BaseEvent{
		id:            id,
		eventType:     eventType,
		aggregateID:   aggregateID,
		aggregateType: aggregateType,
		occurredAt:    occurredAt,
		payload:       payload,
	}
}
