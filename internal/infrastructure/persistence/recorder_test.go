package persistence

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/leapneo/internal/domain/event"
	"github.com/bibbank/leapneo/internal/domain/model"
	"github.com/bibbank/leapneo/internal/domain/valueobject"
	"github.com/bibbank/leapneo/pkg/events"
)

type mockStore struct {
	saveOutcomeFunc func(ctx context.Context, rec model.TransactionRecord, entries ...events.OutboxEntry) error
	saved           []model.TransactionRecord
	queued          []events.OutboxEntry
}

func (m *mockStore) SaveOutcome(ctx context.Context, rec model.TransactionRecord, entries ...events.OutboxEntry) error {
	m.saved = append(m.saved, rec)
	m.queued = append(m.queued, entries...)
	if m.saveOutcomeFunc != nil {
		return m.saveOutcomeFunc(ctx, rec, entries...)
	}
	return nil
}

type mockCache struct {
	putFunc func(ctx context.Context, rec model.TransactionRecord) error
	puts    []model.TransactionRecord
}

func (m *mockCache) Put(ctx context.Context, rec model.TransactionRecord) error {
	m.puts = append(m.puts, rec)
	if m.putFunc != nil {
		return m.putFunc(ctx, rec)
	}
	return nil
}

func (m *mockCache) Get(context.Context, string, valueobject.Operation) (model.TransactionRecord, error) {
	return model.TransactionRecord{}, errors.New("not used")
}

func testRecord() model.TransactionRecord {
	return model.TransactionRecord{
		RecordedAt:    time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC),
		TransactionID: "100000000",
		BankID:        "HL5",
		Operation:     valueobject.OperationEligibility,
		Outcome:       valueobject.ResultSuccess,
		ErrorCode:     "000",
	}
}

func discard() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func TestRecorder_PersistQueuesEvent(t *testing.T) {
	store, cache := &mockStore{}, &mockCache{}
	rec := testRecord()

	err := NewRecorder(store, cache, true, discard()).Persist(context.Background(), rec)
	require.NoError(t, err)

	require.Len(t, store.saved, 1)
	require.Len(t, cache.puts, 1)
	assert.Equal(t, rec, cache.puts[0])

	require.Len(t, store.queued, 1)
	entry := store.queued[0]
	assert.Equal(t, event.TopicTransactions, entry.Topic)
	assert.Equal(t, "100000000:ELIGIBILITY", entry.AggregateID)
	assert.Equal(t, event.AggregateTypeTransaction, entry.AggregateType)
	assert.Contains(t, string(entry.Payload), `"transaction_id":"100000000"`)
}

func TestRecorder_EventsDisabled(t *testing.T) {
	store := &mockStore{}

	err := NewRecorder(store, nil, false, discard()).Persist(context.Background(), testRecord())
	require.NoError(t, err)
	assert.Len(t, store.saved, 1)
	assert.Empty(t, store.queued)
}

func TestRecorder_StoreFailureStops(t *testing.T) {
	dbDown := errors.New("connection reset")
	store := &mockStore{saveOutcomeFunc: func(context.Context, model.TransactionRecord, ...events.OutboxEntry) error { return dbDown }}
	cache := &mockCache{}

	err := NewRecorder(store, cache, true, discard()).Persist(context.Background(), testRecord())
	assert.ErrorIs(t, err, dbDown)
	assert.Empty(t, cache.puts)
}

func TestRecorder_CacheFailureAfterSave(t *testing.T) {
	cacheErr := errors.New("redis timeout")
	store := &mockStore{}
	cache := &mockCache{putFunc: func(context.Context, model.TransactionRecord) error { return cacheErr }}

	err := NewRecorder(store, cache, true, discard()).Persist(context.Background(), testRecord())
	assert.ErrorIs(t, err, cacheErr)
	assert.Len(t, store.saved, 1)
	assert.Len(t, store.queued, 1)
}
