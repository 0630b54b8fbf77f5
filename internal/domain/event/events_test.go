package event_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/leapneo/internal/domain/event"
	"github.com/bibbank/leapneo/internal/domain/model"
	"github.com/bibbank/leapneo/internal/domain/valueobject"
)

func TestNewTransactionRecorded(t *testing.T) {
	recordedAt := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	rec := model.TransactionRecord{
		TransactionID: "100000000",
		BankID:        "ICE",
		Operation:     valueobject.OperationBookLoan,
		Outcome:       valueobject.ResultFailure,
		ErrorCode:     "202",
		RecordedAt:    recordedAt,
	}

	evt := event.NewTransactionRecorded(rec)
	assert.Equal(t, "leapneo.transaction.recorded", evt.EventType())
	assert.Equal(t, "100000000:BOOK_LOAN", evt.AggregateID())
	assert.Equal(t, event.AggregateTypeTransaction, evt.AggregateType())
	assert.Equal(t, "FAILURE", evt.Outcome)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(evt.Payload(), &payload))
	assert.Equal(t, "100000000", payload["transaction_id"])
	assert.Equal(t, "ICE", payload["bankid"])
	assert.Equal(t, "202", payload["error_code"])
	assert.Equal(t, "2026-03-01T10:00:00Z", payload["recorded_at"])
}
