package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/bibbank/leapneo/pkg/events"
	pgpkg "github.com/bibbank/leapneo/pkg/postgres"
)

var _ events.OutboxRepository = (*OutboxRepo)(nil)

// OutboxRepo reads the outbox table for the relay. Entries are written by
// TransactionRecordRepo.SaveOutcome.
type OutboxRepo struct {
	db pgpkg.Querier
}

func NewOutboxRepo(db pgpkg.Querier) *OutboxRepo {
	return &OutboxRepo{db: db}
}

func insertOutboxEntry(ctx context.Context, db pgpkg.Querier, e events.OutboxEntry) error {
	_, err := db.Exec(ctx, `
		INSERT INTO outbox (id, topic, aggregate_id, aggregate_type, event_type, payload, created_at)
		VALUES ($1::uuid, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO NOTHING
	`, e.ID.String(), e.Topic, e.AggregateID, e.AggregateType, e.EventType, e.Payload, e.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert outbox entry %s: %w", e.ID, err)
	}
	return nil
}

// FetchUnpublished returns pending entries in insertion order.
func (r *OutboxRepo) FetchUnpublished(ctx context.Context, limit int) ([]events.OutboxEntry, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id::text, topic, aggregate_id, aggregate_type, event_type, payload, created_at
		FROM outbox
		WHERE published_at IS NULL
		ORDER BY seq
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query outbox: %w", err)
	}
	defer rows.Close()

	var entries []events.OutboxEntry
	for rows.Next() {
		var (
			e  events.OutboxEntry
			id string
		)
		if err := rows.Scan(&id, &e.Topic, &e.AggregateID, &e.AggregateType, &e.EventType, &e.Payload, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan outbox entry: %w", err)
		}
		if e.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("outbox entry id %q: %w", id, err)
		}
		e.CreatedAt = e.CreatedAt.UTC()
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate outbox: %w", err)
	}
	return entries, nil
}

func (r *OutboxRepo) MarkPublished(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = id.String()
	}
	if _, err := r.db.Exec(ctx, `
		UPDATE outbox SET published_at = NOW()
		WHERE id = ANY($1::uuid[]) AND published_at IS NULL
	`, keys); err != nil {
		return fmt.Errorf("mark outbox published: %w", err)
	}
	return nil
}
