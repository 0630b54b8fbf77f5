package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// OutboxEntry is a domain event queued in the same transaction as the state
// change that raised it, waiting for a relay to publish it.
type OutboxEntry struct {
	ID            uuid.UUID
	Topic         string
	AggregateID   string
	AggregateType string
	EventType     string
	Payload       []byte
	CreatedAt     time.Time
	PublishedAt   *time.Time
}

// NewOutboxEntry queues event for topic. The payload is the event's own
// serialized payload.
func NewOutboxEntry(topic string, event DomainEvent) OutboxEntry {
	return OutboxEntry{
		ID:            event.EventID(),
		Topic:         topic,
		AggregateID:   event.AggregateID(),
		AggregateType: event.AggregateType(),
		EventType:     event.EventType(),
		Payload:       event.Payload(),
		CreatedAt:     event.OccurredAt(),
	}
}

// Event rebuilds the queued event for publishing.
func (e OutboxEntry) Event() DomainEvent {
	return RestoreBaseEvent(e.ID, e.EventType, e.AggregateID, e.AggregateType, e.CreatedAt, e.Payload)
}

// OutboxRepository reads and acknowledges queued entries.
type OutboxRepository interface {
	// FetchUnpublished returns up to limit entries, oldest first.
	FetchUnpublished(ctx context.Context, limit int) ([]OutboxEntry, error)
	MarkPublished(ctx context.Context, ids []uuid.UUID) error
}
