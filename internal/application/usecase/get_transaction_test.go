package usecase_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/leapneo/internal/application/dto"
	"github.com/bibbank/leapneo/internal/application/usecase"
	"github.com/bibbank/leapneo/internal/domain/apperror"
	"github.com/bibbank/leapneo/internal/domain/model"
	"github.com/bibbank/leapneo/internal/domain/valueobject"
)

func storedRecord() model.TransactionRecord {
	return model.TransactionRecord{
		RecordedAt:       time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		TransactionID:    "100000000",
		BankID:           "HL5",
		Operation:        valueobject.OperationEligibility,
		Outcome:          valueobject.ResultSuccess,
		ErrorCode:        "000",
		RequestSnapshot:  json.RawMessage(`{"amount":"15000.00"}`),
		ResponseSnapshot: json.RawMessage(`{"status":"SUCCESS"}`),
	}
}

func TestGetTransaction_CacheHit(t *testing.T) {
	repo := &mockRepository{}
	cache := &mockCache{
		getFunc: func(context.Context, string, valueobject.Operation) (model.TransactionRecord, error) {
			return storedRecord(), nil
		},
	}
	uc := usecase.NewGetTransaction(repo, cache, apperror.MustDefaultRegistry(), discardLogger())

	resp, err := uc.Execute(context.Background(), dto.GetTransactionRequest{TransactionID: "100000000", Operation: "ELIGIBILITY"})
	require.NoError(t, err)
	assert.Equal(t, "HL5", resp.BankID)
	assert.Equal(t, "SUCCESS", resp.Outcome)
	assert.Equal(t, 0, repo.findCalls)
	assert.Empty(t, cache.puts)
}

func TestGetTransaction_CacheMissFillsCache(t *testing.T) {
	repo := &mockRepository{
		findFunc: func(_ context.Context, txnID string, op valueobject.Operation) (model.TransactionRecord, error) {
			assert.Equal(t, "100000000", txnID)
			assert.Equal(t, valueobject.OperationEligibility, op)
			return storedRecord(), nil
		},
	}
	cache := &mockCache{}
	uc := usecase.NewGetTransaction(repo, cache, apperror.MustDefaultRegistry(), discardLogger())

	resp, err := uc.Execute(context.Background(), dto.GetTransactionRequest{TransactionID: "100000000", Operation: "ELIGIBILITY"})
	require.NoError(t, err)
	assert.Equal(t, "000", resp.ErrorCode)
	assert.JSONEq(t, `{"status":"SUCCESS"}`, string(resp.Response))
	assert.Equal(t, 1, repo.findCalls)
	require.Len(t, cache.puts, 1)
}

func TestGetTransaction_CacheErrorFallsBackToRepository(t *testing.T) {
	repo := &mockRepository{
		findFunc: func(context.Context, string, valueobject.Operation) (model.TransactionRecord, error) {
			return storedRecord(), nil
		},
	}
	cache := &mockCache{
		getFunc: func(context.Context, string, valueobject.Operation) (model.TransactionRecord, error) {
			return model.TransactionRecord{}, errBoom
		},
		putFunc: func(context.Context, model.TransactionRecord) error { return errBoom },
	}
	uc := usecase.NewGetTransaction(repo, cache, apperror.MustDefaultRegistry(), discardLogger())

	_, err := uc.Execute(context.Background(), dto.GetTransactionRequest{TransactionID: "100000000", Operation: "ELIGIBILITY"})
	require.NoError(t, err)
	assert.Equal(t, 1, repo.findCalls)
}

func TestGetTransaction_NotFound(t *testing.T) {
	uc := usecase.NewGetTransaction(&mockRepository{}, &mockCache{}, apperror.MustDefaultRegistry(), discardLogger())

	_, err := uc.Execute(context.Background(), dto.GetTransactionRequest{TransactionID: "404", Operation: "BOOK_LOAN"})
	assert.True(t, apperror.IsKind(err, apperror.KindTransactionNotFound))
}

func TestGetTransaction_InvalidOperation(t *testing.T) {
	repo := &mockRepository{}
	uc := usecase.NewGetTransaction(repo, nil, apperror.MustDefaultRegistry(), discardLogger())

	_, err := uc.Execute(context.Background(), dto.GetTransactionRequest{TransactionID: "100000000", Operation: "REFUND"})
	appErr, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, apperror.KindInternalServerError, appErr.Kind())
	assert.Equal(t, apperror.ClassValidation, appErr.Class)
	assert.Equal(t, 0, repo.findCalls)
}
