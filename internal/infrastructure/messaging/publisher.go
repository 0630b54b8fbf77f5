// Package messaging publishes domain events to Kafka.
package messaging

import (
	"context"
	"fmt"
	"time"

	"github.com/bibbank/leapneo/internal/domain/port"
	"github.com/bibbank/leapneo/pkg/events"
	pkgkafka "github.com/bibbank/leapneo/pkg/kafka"
)

var _ port.EventPublisher = (*Publisher)(nil)

// Producer is the subset of *pkgkafka.Producer the publisher needs.
type Producer interface {
	Publish(ctx context.Context, topic string, messages ...pkgkafka.Message) error
}

// Publisher implements EventPublisher using Kafka. Messages are keyed by
// aggregate ID so every outcome for one transaction lands on one partition.
type Publisher struct {
	producer Producer
}

func NewPublisher(producer Producer) *Publisher {
	return &Publisher{producer: producer}
}

func (p *Publisher) Publish(ctx context.Context, topic string, domainEvents ...events.DomainEvent) error {
	if len(domainEvents) == 0 {
		return nil
	}

	messages := make([]pkgkafka.Message, 0, len(domainEvents))
	for _, evt := range domainEvents {
		if len(evt.Payload()) == 0 {
			return fmt.Errorf("event %s has no payload", evt.EventType())
		}
		messages = append(messages, pkgkafka.Message{
			Key:   []byte(evt.AggregateID()),
			Value: evt.Payload(),
			Headers: map[string]string{
				"event_type":     evt.EventType(),
				"aggregate_type": evt.AggregateType(),
				"event_id":       evt.EventID().String(),
				"occurred_at":    evt.OccurredAt().Format(time.RFC3339Nano),
			},
		})
	}
	if err := p.producer.Publish(ctx, topic, messages...); err != nil {
		return fmt.Errorf("kafka publish: %w", err)
	}
	return nil
}
