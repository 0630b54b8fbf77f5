package service

import (
	"errors"
	"fmt"

	"github.com/bibbank/leapneo/internal/domain/port"
	"github.com/bibbank/leapneo/internal/domain/valueobject"
)

// ErrUnknownBank is returned when a bank code has no registered adapter.
var ErrUnknownBank = errors.New("no adapter registered for bank")

// Registration binds one bank to its eligibility and book-loan adapters.
type Registration struct {
	Bank        valueobject.BankID
	Eligibility port.EligibilityAdapter
	BookLoan    port.BookLoanAdapter
}

// Register binds a bank to an adapter that serves both operations.
func Register(bank valueobject.BankID, adapter port.BankAdapter) Registration {
	return Registration{Bank: bank, Eligibility: adapter, BookLoan: adapter}
}

// BankRegistry dispatches requests to partner adapters by bank code. It is
// read-only after construction and safe for concurrent use.
type BankRegistry struct {
	eligibility map[string]port.EligibilityAdapter
	bookLoan    map[string]port.BookLoanAdapter
}

// NewBankRegistry validates the registrations and builds the dispatch table.
// Every member of valueobject.AllBanks must be registered exactly once.
func NewBankRegistry(regs ...Registration) (*BankRegistry, error) {
	r := &BankRegistry{
		eligibility: make(map[string]port.EligibilityAdapter, len(regs)),
		bookLoan:    make(map[string]port.BookLoanAdapter, len(regs)),
	}

	for _, reg := range regs {
		if reg.Bank.IsZero() {
			return nil, fmt.Errorf("bank registry: registration without a bank")
		}
		if _, err := valueobject.NewBankID(reg.Bank.String()); err != nil {
			return nil, fmt.Errorf("bank registry: %w", err)
		}
		code := reg.Bank.String()
		if _, dup := r.eligibility[code]; dup {
			return nil, fmt.Errorf("bank registry: duplicate registration for %s", code)
		}
		if reg.Eligibility == nil || reg.BookLoan == nil {
			return nil, fmt.Errorf("bank registry: %s is missing an adapter", code)
		}
		r.eligibility[code] = reg.Eligibility
		r.bookLoan[code] = reg.BookLoan
	}

	for _, bank := range valueobject.AllBanks() {
		if _, ok := r.eligibility[bank.String()]; !ok {
			return nil, fmt.Errorf("bank registry: no adapter registered for %s", bank)
		}
	}

	return r, nil
}

// ResolveEligibility returns the eligibility adapter for a bank code.
func (r *BankRegistry) ResolveEligibility(code string) (port.EligibilityAdapter, error) {
	a, ok := r.eligibility[code]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownBank, code)
	}
	return a, nil
}

// ResolveBookLoan returns the book-loan adapter for a bank code.
func (r *BankRegistry) ResolveBookLoan(code string) (port.BookLoanAdapter, error) {
	a, ok := r.bookLoan[code]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownBank, code)
	}
	return a, nil
}
