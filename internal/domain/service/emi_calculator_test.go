package service_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/leapneo/internal/domain/service"
	"github.com/bibbank/leapneo/pkg/money"
)

func TestEMICalculator_Calculate(t *testing.T) {
	calc := service.NewEMICalculator()

	tests := []struct {
		name        string
		principal   string
		rate        string
		tenure      int
		installment string
		payable     string
		interest    string
	}{
		{"twelve percent six months", "15000", "12", 6, "2588.23", "15529.38", "529.38"},
		{"ten and a half percent a year", "100000", "10.5", 12, "8814.86", "105778.32", "5778.32"},
		{"zero rate", "50000", "0", 5, "10000.00", "50000.00", "0.00"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			terms, err := calc.Calculate(money.MustFromString(tc.principal), decimal.RequireFromString(tc.rate), tc.tenure)
			require.NoError(t, err)
			assert.Equal(t, tc.installment, terms.MonthlyInstallment.Fixed())
			assert.Equal(t, tc.payable, terms.TotalPayable.Fixed())
			assert.Equal(t, tc.interest, terms.TotalInterest.Fixed())
			assert.Equal(t, tc.tenure, terms.Tenure)
			assert.Equal(t, tc.principal, terms.Amount.String())
		})
	}
}

func TestEMICalculator_RejectsBadInput(t *testing.T) {
	calc := service.NewEMICalculator()

	_, err := calc.Calculate(money.MustFromString("0"), decimal.NewFromInt(12), 6)
	assert.ErrorContains(t, err, "principal")

	_, err = calc.Calculate(money.MustFromString("1000"), decimal.NewFromInt(12), 0)
	assert.ErrorContains(t, err, "tenure")

	_, err = calc.Calculate(money.MustFromString("1000"), decimal.NewFromInt(-1), 6)
	assert.ErrorContains(t, err, "interest rate")
}
