package partner

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/bibbank/leapneo/internal/domain/model"
	"github.com/bibbank/leapneo/pkg/money"
)

// ParseTerms builds EMI terms from the decimal strings a partner returns on
// book-loan success. An empty installment yields zero terms, leaving the
// computation to the caller.
func ParseTerms(req model.BookLoanRequest, installment, totalInterest, totalPayable string) (model.EMITerms, error) {
	if installment == "" {
		return model.EMITerms{}, nil
	}
	emi, err := money.NewFromString(installment)
	if err != nil {
		return model.EMITerms{}, fmt.Errorf("installment: %w", err)
	}
	return completeTerms(req, emi, totalInterest, totalPayable)
}

func completeTerms(req model.BookLoanRequest, emi money.Amount, totalInterest, totalPayable string) (model.EMITerms, error) {
	terms := model.EMITerms{
		Amount:             req.Amount(),
		InterestRate:       req.InterestRate(),
		Tenure:             req.TenureMonths(),
		MonthlyInstallment: emi,
	}

	if totalPayable != "" {
		payable, err := money.NewFromString(totalPayable)
		if err != nil {
			return model.EMITerms{}, fmt.Errorf("total payable: %w", err)
		}
		terms.TotalPayable = payable
	} else {
		terms.TotalPayable = money.New(emi.Decimal().Mul(decimal.NewFromInt(int64(req.TenureMonths()))))
	}

	if totalInterest != "" {
		interest, err := money.NewFromString(totalInterest)
		if err != nil {
			return model.EMITerms{}, fmt.Errorf("total interest: %w", err)
		}
		terms.TotalInterest = interest
	} else {
		terms.TotalInterest = money.New(terms.TotalPayable.Decimal().Sub(req.Amount().Decimal()))
	}
	return terms, nil
}

// ParsePaiseTerms is ParseTerms for partners that report minor units.
func ParsePaiseTerms(req model.BookLoanRequest, installment, totalInterest, totalPayable int64) model.EMITerms {
	if installment == 0 {
		return model.EMITerms{}
	}
	terms := model.EMITerms{
		Amount:             req.Amount(),
		InterestRate:       req.InterestRate(),
		Tenure:             req.TenureMonths(),
		MonthlyInstallment: money.NewFromPaise(installment),
		TotalInterest:      money.NewFromPaise(totalInterest),
		TotalPayable:       money.NewFromPaise(totalPayable),
	}
	if totalPayable == 0 {
		terms.TotalPayable = money.New(terms.MonthlyInstallment.Decimal().Mul(decimal.NewFromInt(int64(req.TenureMonths()))))
		terms.TotalInterest = money.New(terms.TotalPayable.Decimal().Sub(req.Amount().Decimal()))
	}
	return terms
}
