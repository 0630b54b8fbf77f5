package usecase_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"

	"github.com/bibbank/leapneo/internal/domain/model"
	"github.com/bibbank/leapneo/internal/domain/port"
	"github.com/bibbank/leapneo/internal/domain/service"
	"github.com/bibbank/leapneo/internal/domain/valueobject"
)

// mockBankAdapter is a hand-written mock of port.BankAdapter.
type mockBankAdapter struct {
	checkEligibilityFunc func(ctx context.Context, req model.EligibilityRequest) (model.EligibilityResponse, error)
	bookLoanFunc         func(ctx context.Context, req model.BookLoanRequest) (model.BookLoanResponse, error)

	mu               sync.Mutex
	eligibilityCalls []model.EligibilityRequest
	bookLoanCalls    []model.BookLoanRequest
}

func (m *mockBankAdapter) CheckEligibility(ctx context.Context, req model.EligibilityRequest) (model.EligibilityResponse, error) {
	m.mu.Lock()
	m.eligibilityCalls = append(m.eligibilityCalls, req)
	m.mu.Unlock()
	if m.checkEligibilityFunc != nil {
		return m.checkEligibilityFunc(ctx, req)
	}
	return model.NewEligibilityResponse(req, valueobject.ResultSuccess, "ref"), nil
}

func (m *mockBankAdapter) BookLoan(ctx context.Context, req model.BookLoanRequest) (model.BookLoanResponse, error) {
	m.mu.Lock()
	m.bookLoanCalls = append(m.bookLoanCalls, req)
	m.mu.Unlock()
	if m.bookLoanFunc != nil {
		return m.bookLoanFunc(ctx, req)
	}
	return model.NewBookLoanResponse(req, valueobject.ResultSuccess, "ref", "", model.EMITerms{}), nil
}

// mockPersister is a hand-written mock of port.OutcomePersister.
type mockPersister struct {
	persistFunc func(ctx context.Context, rec model.TransactionRecord) error

	mu      sync.Mutex
	records []model.TransactionRecord
}

func (m *mockPersister) Persist(ctx context.Context, rec model.TransactionRecord) error {
	m.mu.Lock()
	m.records = append(m.records, rec)
	m.mu.Unlock()
	if m.persistFunc != nil {
		return m.persistFunc(ctx, rec)
	}
	return nil
}

// mockRepository is a hand-written mock of port.TransactionRecordRepository.
type mockRepository struct {
	findFunc func(ctx context.Context, txnID string, op valueobject.Operation) (model.TransactionRecord, error)

	findCalls int
}

func (m *mockRepository) Save(context.Context, model.TransactionRecord) error { return nil }

func (m *mockRepository) Find(ctx context.Context, txnID string, op valueobject.Operation) (model.TransactionRecord, error) {
	m.findCalls++
	if m.findFunc != nil {
		return m.findFunc(ctx, txnID, op)
	}
	return model.TransactionRecord{}, port.ErrRecordNotFound
}

// mockCache is a hand-written mock of port.TransactionRecordCache.
type mockCache struct {
	getFunc func(ctx context.Context, txnID string, op valueobject.Operation) (model.TransactionRecord, error)
	putFunc func(ctx context.Context, rec model.TransactionRecord) error

	puts []model.TransactionRecord
}

func (m *mockCache) Put(ctx context.Context, rec model.TransactionRecord) error {
	m.puts = append(m.puts, rec)
	if m.putFunc != nil {
		return m.putFunc(ctx, rec)
	}
	return nil
}

func (m *mockCache) Get(ctx context.Context, txnID string, op valueobject.Operation) (model.TransactionRecord, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, txnID, op)
	}
	return model.TransactionRecord{}, port.ErrRecordNotFound
}

var errBoom = errors.New("boom")

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// banksWith registers adapter for every bank.
func banksWith(adapter port.BankAdapter) *service.BankRegistry {
	var regs []service.Registration
	for _, bank := range valueobject.AllBanks() {
		regs = append(regs, service.Register(bank, adapter))
	}
	reg, err := service.NewBankRegistry(regs...)
	if err != nil {
		panic(err)
	}
	return reg
}
