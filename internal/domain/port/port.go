package port

import (
	"context"
	"errors"

	"github.com/bibbank/leapneo/pkg/events"

	"github.com/bibbank/leapneo/internal/domain/model"
	"github.com/bibbank/leapneo/internal/domain/valueobject"
)

// ErrRecordNotFound is returned by record stores when no record exists.
var ErrRecordNotFound = errors.New("transaction record not found")

// EligibilityAdapter checks EMI eligibility with one partner bank.
type EligibilityAdapter interface {
	CheckEligibility(ctx context.Context, req model.EligibilityRequest) (model.EligibilityResponse, error)
}

// BookLoanAdapter books an EMI plan with one partner bank.
type BookLoanAdapter interface {
	BookLoan(ctx context.Context, req model.BookLoanRequest) (model.BookLoanResponse, error)
}

// BankAdapter is the capability pair every partner integration provides.
// Errors returned by an adapter are always *apperror.Error.
type BankAdapter interface {
	EligibilityAdapter
	BookLoanAdapter
}

// FieldEncryptor protects a single sensitive field before it leaves the process.
type FieldEncryptor interface {
	Encrypt(plaintext string) (string, error)
}

// OutcomePersister records a terminal outcome. Failures never change the
// response already produced.
type OutcomePersister interface {
	Persist(ctx context.Context, record model.TransactionRecord) error
}

// TransactionRecordRepository stores records durably.
type TransactionRecordRepository interface {
	// Save inserts the record. An existing record for the same transaction
	// and operation is left untouched.
	Save(ctx context.Context, record model.TransactionRecord) error
	// Find returns ErrRecordNotFound when no record exists.
	Find(ctx context.Context, transactionID string, op valueobject.Operation) (model.TransactionRecord, error)
}

// OutcomeStore saves a record and, in the same transaction, queues the
// outbox entries it raises. Entries are queued only when the record is new.
type OutcomeStore interface {
	SaveOutcome(ctx context.Context, record model.TransactionRecord, entries ...events.OutboxEntry) error
}

// TransactionRecordCache is a read-through cache in front of the repository.
type TransactionRecordCache interface {
	Put(ctx context.Context, record model.TransactionRecord) error
	// Get returns ErrRecordNotFound on a cache miss.
	Get(ctx context.Context, transactionID string, op valueobject.Operation) (model.TransactionRecord, error)
}

// EventPublisher publishes domain events to a message broker.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, events ...events.DomainEvent) error
}
