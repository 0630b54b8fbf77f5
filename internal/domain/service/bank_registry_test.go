package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/leapneo/internal/domain/model"
	"github.com/bibbank/leapneo/internal/domain/service"
	"github.com/bibbank/leapneo/internal/domain/valueobject"
)

type stubAdapter struct{ name string }

func (s *stubAdapter) CheckEligibility(_ context.Context, req model.EligibilityRequest) (model.EligibilityResponse, error) {
	return model.NewEligibilityResponse(req, valueobject.ResultSuccess, s.name), nil
}

func (s *stubAdapter) BookLoan(_ context.Context, req model.BookLoanRequest) (model.BookLoanResponse, error) {
	return model.NewBookLoanResponse(req, valueobject.ResultSuccess, s.name, "", model.EMITerms{}), nil
}

func allRegistrations() ([]service.Registration, map[string]*stubAdapter) {
	adapters := map[string]*stubAdapter{}
	var regs []service.Registration
	for _, bank := range valueobject.AllBanks() {
		a := &stubAdapter{name: bank.String()}
		adapters[bank.String()] = a
		regs = append(regs, service.Register(bank, a))
	}
	return regs, adapters
}

func TestBankRegistry_ResolvesEveryBank(t *testing.T) {
	regs, adapters := allRegistrations()
	reg, err := service.NewBankRegistry(regs...)
	require.NoError(t, err)

	for _, bank := range valueobject.AllBanks() {
		t.Run(bank.String(), func(t *testing.T) {
			elig, err := reg.ResolveEligibility(bank.String())
			require.NoError(t, err)
			assert.Same(t, adapters[bank.String()], elig)

			book, err := reg.ResolveBookLoan(bank.String())
			require.NoError(t, err)
			assert.Same(t, adapters[bank.String()], book)
		})
	}
}

func TestBankRegistry_UnknownBank(t *testing.T) {
	regs, _ := allRegistrations()
	reg, err := service.NewBankRegistry(regs...)
	require.NoError(t, err)

	for _, code := range []string{"", "HS", "hl5", "KOTAK"} {
		_, err := reg.ResolveEligibility(code)
		assert.ErrorIs(t, err, service.ErrUnknownBank, code)
		_, err = reg.ResolveBookLoan(code)
		assert.ErrorIs(t, err, service.ErrUnknownBank, code)
	}
}

func TestBankRegistry_SeparateAdaptersPerOperation(t *testing.T) {
	regs, _ := allRegistrations()
	elig := &stubAdapter{name: "elig"}
	book := &stubAdapter{name: "book"}
	regs[0] = service.Registration{Bank: valueobject.BankHDFC, Eligibility: elig, BookLoan: book}

	reg, err := service.NewBankRegistry(regs...)
	require.NoError(t, err)

	gotElig, _ := reg.ResolveEligibility("HL5")
	gotBook, _ := reg.ResolveBookLoan("HL5")
	assert.Same(t, elig, gotElig)
	assert.Same(t, book, gotBook)
}

func TestBankRegistry_BuildTimeChecks(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func([]service.Registration) []service.Registration
		wantErr string
	}{
		{
			name: "duplicate bank",
			mutate: func(r []service.Registration) []service.Registration {
				return append(r, service.Register(valueobject.BankSBI, &stubAdapter{}))
			},
			wantErr: "duplicate registration for SBI",
		},
		{
			name: "missing bank",
			mutate: func(r []service.Registration) []service.Registration {
				return r[:len(r)-1]
			},
			wantErr: "no adapter registered for SBI",
		},
		{
			name: "nil adapter",
			mutate: func(r []service.Registration) []service.Registration {
				r[1].BookLoan = nil
				return r
			},
			wantErr: "missing an adapter",
		},
		{
			name: "zero bank",
			mutate: func(r []service.Registration) []service.Registration {
				return append(r, service.Registration{Eligibility: &stubAdapter{}, BookLoan: &stubAdapter{}})
			},
			wantErr: "without a bank",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			regs, _ := allRegistrations()
			_, err := service.NewBankRegistry(tc.mutate(regs)...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}
