package messaging

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/bibbank/leapneo/internal/domain/port"
	"github.com/bibbank/leapneo/pkg/events"
)

// RelayConfig tunes the outbox poll loop.
type RelayConfig struct {
	Interval  time.Duration
	BatchSize int
}

// Relay moves queued outbox entries to the broker. Delivery is at least once:
// an entry published but not yet marked is sent again on the next pass.
type Relay struct {
	outbox    events.OutboxRepository
	publisher port.EventPublisher
	cfg       RelayConfig
	logger    *slog.Logger
}

func NewRelay(outbox events.OutboxRepository, publisher port.EventPublisher, cfg RelayConfig, logger *slog.Logger) *Relay {
	if cfg.Interval <= 0 {
		cfg.Interval = time.Second
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 100
	}
	return &Relay{outbox: outbox, publisher: publisher, cfg: cfg, logger: logger}
}

// Run drains the outbox every interval until ctx is done. A full batch is
// followed immediately by the next one.
func (r *Relay) Run(ctx context.Context) {
	ticker := time.NewTicker(r.cfg.Interval)
	defer ticker.Stop()

	for {
		for {
			n, err := r.Flush(ctx)
			if err != nil && !errors.Is(err, context.Canceled) {
				r.logger.Warn("outbox relay pass failed", "published", n, "error", err)
			}
			if err != nil || n < r.cfg.BatchSize {
				break
			}
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// Flush publishes one batch in order and marks what was sent. It stops at the
// first publish failure so later entries never overtake an earlier one.
func (r *Relay) Flush(ctx context.Context) (int, error) {
	entries, err := r.outbox.FetchUnpublished(ctx, r.cfg.BatchSize)
	if err != nil {
		return 0, fmt.Errorf("fetch outbox: %w", err)
	}

	sent := make([]uuid.UUID, 0, len(entries))
	var pubErr error
	for _, e := range entries {
		if err := r.publisher.Publish(ctx, e.Topic, e.Event()); err != nil {
			pubErr = fmt.Errorf("publish outbox entry %s: %w", e.ID, err)
			break
		}
		sent = append(sent, e.ID)
	}

	if err := r.outbox.MarkPublished(ctx, sent); err != nil {
		return len(sent), errors.Join(pubErr, fmt.Errorf("mark outbox published: %w", err))
	}
	return len(sent), pubErr
}
