package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/leapneo/internal/domain/event"
	"github.com/bibbank/leapneo/internal/domain/model"
	"github.com/bibbank/leapneo/internal/domain/valueobject"
	"github.com/bibbank/leapneo/pkg/events"
	pkgkafka "github.com/bibbank/leapneo/pkg/kafka"
)

type publishCall struct {
	topic    string
	messages []pkgkafka.Message
}

type mockProducer struct {
	publishFunc func(ctx context.Context, topic string, messages ...pkgkafka.Message) error
	calls       []publishCall
}

func (m *mockProducer) Publish(ctx context.Context, topic string, messages ...pkgkafka.Message) error {
	m.calls = append(m.calls, publishCall{topic: topic, messages: messages})
	if m.publishFunc != nil {
		return m.publishFunc(ctx, topic, messages...)
	}
	return nil
}

func recordedEvent() event.TransactionRecorded {
	return event.NewTransactionRecorded(model.TransactionRecord{
		RecordedAt:    time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC),
		TransactionID: "100000000",
		BankID:        "SBI",
		Operation:     valueobject.OperationBookLoan,
		Outcome:       valueobject.ResultFailure,
		ErrorCode:     "131",
	})
}

func TestPublisher_Publish(t *testing.T) {
	producer := &mockProducer{}
	pub := NewPublisher(producer)
	evt := recordedEvent()

	err := pub.Publish(context.Background(), event.TopicTransactions, evt)
	require.NoError(t, err)

	require.Len(t, producer.calls, 1)
	call := producer.calls[0]
	assert.Equal(t, "leapneo.transactions", call.topic)
	require.Len(t, call.messages, 1)

	msg := call.messages[0]
	assert.Equal(t, "100000000:BOOK_LOAN", string(msg.Key))
	assert.Equal(t, "leapneo.transaction.recorded", msg.Headers["event_type"])
	assert.Equal(t, event.AggregateTypeTransaction, msg.Headers["aggregate_type"])
	assert.Equal(t, evt.EventID().String(), msg.Headers["event_id"])
	assert.NotEmpty(t, msg.Headers["occurred_at"])

	var body map[string]any
	require.NoError(t, json.Unmarshal(msg.Value, &body))
	assert.Equal(t, "131", body["error_code"])
	assert.Equal(t, "FAILURE", body["outcome"])
}

func TestPublisher_NoEvents(t *testing.T) {
	producer := &mockProducer{}

	require.NoError(t, NewPublisher(producer).Publish(context.Background(), event.TopicTransactions))
	assert.Empty(t, producer.calls)
}

func TestPublisher_EmptyPayload(t *testing.T) {
	producer := &mockProducer{}
	evt := events.NewBaseEvent("leapneo.transaction.recorded", "1:ELIGIBILITY", event.AggregateTypeTransaction, nil)

	err := NewPublisher(producer).Publish(context.Background(), event.TopicTransactions, evt)
	assert.Error(t, err)
	assert.Empty(t, producer.calls)
}

func TestPublisher_ProducerError(t *testing.T) {
	brokerDown := errors.New("dial tcp kafka:9092: connection refused")
	producer := &mockProducer{
		publishFunc: func(context.Context, string, ...pkgkafka.Message) error { return brokerDown },
	}

	err := NewPublisher(producer).Publish(context.Background(), event.TopicTransactions, recordedEvent())
	assert.ErrorIs(t, err, brokerDown)
}
