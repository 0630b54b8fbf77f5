package redis

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/leapneo/internal/domain/model"
	"github.com/bibbank/leapneo/internal/domain/port"
	"github.com/bibbank/leapneo/internal/domain/valueobject"
)

func sampleRecord() model.TransactionRecord {
	return model.TransactionRecord{
		RecordedAt:       time.Date(2026, 5, 4, 12, 30, 0, 0, time.UTC),
		TransactionID:    "100000000",
		BankID:           "ICE",
		Operation:        valueobject.OperationEligibility,
		Outcome:          valueobject.ResultSuccess,
		ErrorCode:        "000",
		RequestSnapshot:  json.RawMessage(`{"amount":"15000.00"}`),
		ResponseSnapshot: json.RawMessage(`{"status":"SUCCESS"}`),
	}
}

func TestCacheKey(t *testing.T) {
	assert.Equal(t, "leapneo:txn:100000000:BOOK_LOAN", cacheKey("100000000", valueobject.OperationBookLoan))
}

func TestRecordCache_Put(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		cache := NewRecordCache(db, 10*time.Minute)
		rec := sampleRecord()
		payload, _ := json.Marshal(rec)

		mock.ExpectSet("leapneo:txn:100000000:ELIGIBILITY", payload, 10*time.Minute).SetVal("OK")

		assert.NoError(t, cache.Put(context.Background(), rec))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Error", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		cache := NewRecordCache(db, time.Minute)
		rec := sampleRecord()
		payload, _ := json.Marshal(rec)

		mock.ExpectSet("leapneo:txn:100000000:ELIGIBILITY", payload, time.Minute).SetErr(errors.New("READONLY"))

		assert.Error(t, cache.Put(context.Background(), rec))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRecordCache_Get(t *testing.T) {
	t.Run("Hit", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		cache := NewRecordCache(db, time.Minute)
		payload, _ := json.Marshal(sampleRecord())

		mock.ExpectGet("leapneo:txn:100000000:ELIGIBILITY").SetVal(string(payload))

		got, err := cache.Get(context.Background(), "100000000", valueobject.OperationEligibility)
		require.NoError(t, err)
		assert.Equal(t, "ICE", got.BankID)
		assert.Equal(t, valueobject.ResultSuccess, got.Outcome)
		assert.JSONEq(t, `{"status":"SUCCESS"}`, string(got.ResponseSnapshot))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Miss", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		cache := NewRecordCache(db, time.Minute)

		mock.ExpectGet("leapneo:txn:404:BOOK_LOAN").RedisNil()

		_, err := cache.Get(context.Background(), "404", valueobject.OperationBookLoan)
		assert.ErrorIs(t, err, port.ErrRecordNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Corrupt", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		cache := NewRecordCache(db, time.Minute)

		mock.ExpectGet("leapneo:txn:1:BOOK_LOAN").SetVal("{not json")

		_, err := cache.Get(context.Background(), "1", valueobject.OperationBookLoan)
		assert.Error(t, err)
		assert.NotErrorIs(t, err, port.ErrRecordNotFound)
	})
}

func TestRecordCache_Ping(t *testing.T) {
	db, mock := redismock.NewClientMock()
	mock.ExpectPing().SetVal("PONG")

	assert.NoError(t, NewRecordCache(db, time.Minute).Ping(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
