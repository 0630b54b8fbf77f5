// Package persistence records terminal transaction outcomes.
package persistence

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bibbank/leapneo/internal/domain/event"
	"github.com/bibbank/leapneo/internal/domain/model"
	"github.com/bibbank/leapneo/internal/domain/port"
	"github.com/bibbank/leapneo/pkg/events"
)

var _ port.OutcomePersister = (*Recorder)(nil)

// Recorder writes an outcome to the store and warms the lookup cache. When
// emitEvents is set, a TransactionRecorded event is queued in the store's
// outbox in the same transaction; a relay publishes it later.
type Recorder struct {
	store      port.OutcomeStore
	cache      port.TransactionRecordCache
	emitEvents bool
	logger     *slog.Logger
}

func NewRecorder(store port.OutcomeStore, cache port.TransactionRecordCache, emitEvents bool, logger *slog.Logger) *Recorder {
	return &Recorder{
		store:      store,
		cache:      cache,
		emitEvents: emitEvents,
		logger:     logger,
	}
}

// Persist stops at a store failure. A cache failure is returned after the
// record is durable.
func (r *Recorder) Persist(ctx context.Context, rec model.TransactionRecord) error {
	var entries []events.OutboxEntry
	if r.emitEvents {
		entries = append(entries, events.NewOutboxEntry(event.TopicTransactions, event.NewTransactionRecorded(rec)))
	}
	if err := r.store.SaveOutcome(ctx, rec, entries...); err != nil {
		return fmt.Errorf("save transaction record %s: %w", rec.Key(), err)
	}

	r.logger.Debug("transaction recorded",
		"transaction_id", rec.TransactionID,
		"operation", rec.Operation,
		"bankid", rec.BankID,
		"outcome", rec.Outcome,
		"queued_events", len(entries),
	)

	if r.cache != nil {
		if err := r.cache.Put(ctx, rec); err != nil {
			return fmt.Errorf("cache transaction record %s: %w", rec.Key(), err)
		}
	}
	return nil
}
