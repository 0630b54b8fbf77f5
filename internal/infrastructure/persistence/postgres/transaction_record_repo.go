package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/bibbank/leapneo/internal/domain/model"
	"github.com/bibbank/leapneo/internal/domain/port"
	"github.com/bibbank/leapneo/internal/domain/valueobject"
	"github.com/bibbank/leapneo/pkg/events"
	pgpkg "github.com/bibbank/leapneo/pkg/postgres"
)

// Compile-time interface checks.
var (
	_ port.TransactionRecordRepository = (*TransactionRecordRepo)(nil)
	_ port.OutcomeStore                = (*TransactionRecordRepo)(nil)
)

// TransactionRecordRepo stores terminal outcomes in transaction_records.
type TransactionRecordRepo struct {
	db pgpkg.TxBeginner
}

// NewTransactionRecordRepo accepts a pool or a transaction.
func NewTransactionRecordRepo(db pgpkg.TxBeginner) *TransactionRecordRepo {
	return &TransactionRecordRepo{db: db}
}

// Save inserts the record. The first outcome recorded for a transaction and
// operation wins.
func (r *TransactionRecordRepo) Save(ctx context.Context, rec model.TransactionRecord) error {
	_, err := insertRecord(ctx, r.db, rec)
	return err
}

// SaveOutcome inserts the record and queues entries in one transaction. When
// the record already exists nothing is queued.
func (r *TransactionRecordRepo) SaveOutcome(ctx context.Context, rec model.TransactionRecord, entries ...events.OutboxEntry) error {
	if len(entries) == 0 {
		return r.Save(ctx, rec)
	}
	return pgpkg.InTx(ctx, r.db, func(tx pgx.Tx) error {
		inserted, err := insertRecord(ctx, tx, rec)
		if err != nil || !inserted {
			return err
		}
		for _, e := range entries {
			if err := insertOutboxEntry(ctx, tx, e); err != nil {
				return err
			}
		}
		return nil
	})
}

func insertRecord(ctx context.Context, db pgpkg.Querier, rec model.TransactionRecord) (bool, error) {
	tag, err := db.Exec(ctx, `
		INSERT INTO transaction_records (
			transaction_id, operation, bank_id, outcome, error_code,
			request_snapshot, response_snapshot, recorded_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (transaction_id, operation) DO NOTHING
	`, rec.TransactionID, string(rec.Operation), rec.BankID, string(rec.Outcome), rec.ErrorCode,
		snapshot(rec.RequestSnapshot), snapshot(rec.ResponseSnapshot), rec.RecordedAt)
	if err != nil {
		return false, fmt.Errorf("insert transaction record: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *TransactionRecordRepo) Find(ctx context.Context, transactionID string, op valueobject.Operation) (model.TransactionRecord, error) {
	var (
		rec        model.TransactionRecord
		operation  string
		outcome    string
		request    []byte
		response   []byte
		recordedAt time.Time
	)
	err := r.db.QueryRow(ctx, `
		SELECT transaction_id, operation, bank_id, outcome, error_code,
			request_snapshot, response_snapshot, recorded_at
		FROM transaction_records
		WHERE transaction_id = $1 AND operation = $2
	`, transactionID, string(op)).Scan(
		&rec.TransactionID, &operation, &rec.BankID, &outcome, &rec.ErrorCode,
		&request, &response, &recordedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.TransactionRecord{}, port.ErrRecordNotFound
	}
	if err != nil {
		return model.TransactionRecord{}, fmt.Errorf("query transaction record: %w", err)
	}

	rec.Operation = valueobject.Operation(operation)
	rec.Outcome = valueobject.Result(outcome)
	rec.RequestSnapshot = json.RawMessage(request)
	rec.ResponseSnapshot = json.RawMessage(response)
	rec.RecordedAt = recordedAt.UTC()
	return rec, nil
}

func snapshot(raw json.RawMessage) []byte {
	if len(raw) == 0 {
		return []byte("{}")
	}
	return raw
}
