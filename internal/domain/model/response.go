package model

import (
	"github.com/shopspring/decimal"

	"github.com/bibbank/leapneo/internal/domain/valueobject"
	"github.com/bibbank/leapneo/pkg/money"
)

// EligibilityResponse is the canonical answer to an eligibility request. The
// echoed fields are always copied from the request.
type EligibilityResponse struct {
	bankID           valueobject.BankID
	merchantID       string
	pgRefNo          string
	amount           money.Amount
	result           valueobject.Result
	partnerReference string
}

// NewEligibilityResponse echoes req and attaches the partner outcome.
func NewEligibilityResponse(req EligibilityRequest, result valueobject.Result, partnerReference string) EligibilityResponse {
	return EligibilityResponse{
		bankID:           req.BankID(),
		merchantID:       req.MerchantID(),
		pgRefNo:          req.PGRefNo(),
		amount:           req.Amount(),
		result:           result,
		partnerReference: partnerReference,
	}
}

func (r EligibilityResponse) BankID() valueobject.BankID { return r.bankID }
func (r EligibilityResponse) MerchantID() string         { return r.merchantID }
func (r EligibilityResponse) PGRefNo() string            { return r.pgRefNo }
func (r EligibilityResponse) Amount() money.Amount       { return r.amount }
func (r EligibilityResponse) Result() valueobject.Result { return r.result }
func (r EligibilityResponse) PartnerReference() string   { return r.partnerReference }

// EMITerms describes the installment plan of a booked loan.
type EMITerms struct {
	Amount             money.Amount
	InterestRate       decimal.Decimal
	Tenure             int
	MonthlyInstallment money.Amount
	TotalInterest      money.Amount
	TotalPayable       money.Amount
}

// BookLoanResponse is the canonical answer to a book-loan request.
type BookLoanResponse struct {
	EligibilityResponse
	bankReferenceNo string
	terms           EMITerms
}

// NewBookLoanResponse echoes req and attaches the booking outcome.
func NewBookLoanResponse(req BookLoanRequest, result valueobject.Result, partnerReference, bankReferenceNo string, terms EMITerms) BookLoanResponse {
	if bankReferenceNo == "" {
		bankReferenceNo = req.BankReferenceNo()
	}
	return BookLoanResponse{
		EligibilityResponse: NewEligibilityResponse(req.EligibilityRequest, result, partnerReference),
		bankReferenceNo:     bankReferenceNo,
		terms:               terms,
	}
}

func (r BookLoanResponse) BankReferenceNo() string { return r.bankReferenceNo }
func (r BookLoanResponse) Terms() EMITerms         { return r.terms }
