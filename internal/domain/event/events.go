package event

import (
	"encoding/json"
	"time"

	"github.com/bibbank/leapneo/internal/domain/model"
	"github.com/bibbank/leapneo/pkg/events"
)

const (
	AggregateTypeTransaction = "Transaction"

	// TopicTransactions carries every recorded transaction outcome.
	TopicTransactions = "leapneo.transactions"
)

// TransactionRecorded is emitted after a terminal outcome has been persisted.
type TransactionRecorded struct {
	events.BaseEvent
	RecordedAt    time.Time `json:"recorded_at"`
	TransactionID string    `json:"transaction_id"`
	BankID        string    `json:"bankid"`
	Operation     string    `json:"operation"`
	Outcome       string    `json:"outcome"`
	ErrorCode     string    `json:"error_code"`
}

func NewTransactionRecorded(rec model.TransactionRecord) TransactionRecorded {
	payload, _ := json.Marshal(struct {
		TransactionID string    `json:"transaction_id"`
		BankID        string    `json:"bankid"`
		Operation     string    `json:"operation"`
		Outcome       string    `json:"outcome"`
		ErrorCode     string    `json:"error_code"`
		RecordedAt    time.Time `json:"recorded_at"`
	}{rec.TransactionID, rec.BankID, rec.Operation.String(), rec.Outcome.String(), rec.ErrorCode, rec.RecordedAt})

	return TransactionRecorded{
		BaseEvent:     events.NewBaseEvent("leapneo.transaction.recorded", rec.Key(), AggregateTypeTransaction, payload),
		RecordedAt:    rec.RecordedAt,
		TransactionID: rec.TransactionID,
		BankID:        rec.BankID,
		Operation:     rec.Operation.String(),
		Outcome:       rec.Outcome.String(),
		ErrorCode:     rec.ErrorCode,
	}
}
