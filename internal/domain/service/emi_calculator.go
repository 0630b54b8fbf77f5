package service

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/bibbank/leapneo/internal/domain/model"
	"github.com/bibbank/leapneo/pkg/money"
)

var monthsTimesPercent = decimal.NewFromInt(1200)

// EMICalculator computes reducing-balance installment plans.
type EMICalculator struct{}

func NewEMICalculator() EMICalculator {
	return EMICalculator{}
}

// Calculate returns the plan for principal at an annual percentage rate over
// tenure months. Monetary results are rounded to two decimals.
func (EMICalculator) Calculate(principal money.Amount, annualRate decimal.Decimal, tenure int) (model.EMITerms, error) {
	if !principal.IsPositive() {
		return model.EMITerms{}, fmt.Errorf("principal must be positive, got: %s", principal)
	}
	if tenure <= 0 {
		return model.EMITerms{}, fmt.Errorf("tenure must be positive, got: %d", tenure)
	}
	if annualRate.IsNegative() {
		return model.EMITerms{}, fmt.Errorf("interest rate must not be negative, got: %s", annualRate)
	}

	p := principal.Decimal()
	n := decimal.NewFromInt(int64(tenure))

	if annualRate.IsZero() {
		return model.EMITerms{
			Amount:             principal,
			InterestRate:       annualRate,
			Tenure:             tenure,
			MonthlyInstallment: money.New(p.Div(n).Round(2)),
			TotalInterest:      money.New(decimal.Zero),
			TotalPayable:       money.New(p.Round(2)),
		}, nil
	}

	r := annualRate.Div(monthsTimesPercent)
	growth := decimal.NewFromInt(1).Add(r).Pow(n)
	installment := p.Mul(r).Mul(growth).Div(growth.Sub(decimal.NewFromInt(1))).Round(2)
	total := installment.Mul(n)

	return model.EMITerms{
		Amount:             principal,
		InterestRate:       annualRate,
		Tenure:             tenure,
		MonthlyInstallment: money.New(installment),
		TotalInterest:      money.New(total.Sub(p).Round(2)),
		TotalPayable:       money.New(total),
	}, nil
}
