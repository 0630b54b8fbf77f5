package model

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/bibbank/leapneo/internal/domain/valueobject"
	"github.com/bibbank/leapneo/pkg/money"
)

// EligibilityParams carries the already-validated fields of an eligibility request.
type EligibilityParams struct {
	TransactionID string
	BankID        valueobject.BankID
	MerchantID    string
	PGRefNo       string
	Amount        money.Amount
	TenureMonths  int
	ItemCode      string
	StoreID       string
	StoreName     string
	Identity      valueobject.Identity
}

// EligibilityRequest asks a partner bank whether a customer qualifies for an
// EMI offer on the given amount and tenure. It is immutable once built.
type EligibilityRequest struct {
	transactionID string
	bankID        valueobject.BankID
	merchantID    string
	pgRefNo       string
	amount        money.Amount
	tenureMonths  int
	itemCode      string
	storeID       string
	storeName     string
	identity      valueobject.Identity
}

// NewEligibilityRequest builds an eligibility request. Field formats are the
// validator's concern; this only guards the structural invariants.
func NewEligibilityRequest(p EligibilityParams) (EligibilityRequest, error) {
	if p.TransactionID == "" {
		return EligibilityRequest{}, fmt.Errorf("transaction ID is required")
	}
	if p.BankID.IsZero() {
		return EligibilityRequest{}, fmt.Errorf("bank ID is required")
	}
	if !p.Amount.IsPositive() {
		return EligibilityRequest{}, fmt.Errorf("amount must be positive, got: %s", p.Amount)
	}
	if p.TenureMonths <= 0 {
		return EligibilityRequest{}, fmt.Errorf("tenure must be positive, got: %d", p.TenureMonths)
	}
	if p.Identity.IsZero() {
		return EligibilityRequest{}, fmt.Errorf("identity is required")
	}

	return EligibilityRequest{
		transactionID: p.TransactionID,
		bankID:        p.BankID,
		merchantID:    p.MerchantID,
		pgRefNo:       p.PGRefNo,
		amount:        p.Amount,
		tenureMonths:  p.TenureMonths,
		itemCode:      p.ItemCode,
		storeID:       p.StoreID,
		storeName:     p.StoreName,
		identity:      p.Identity,
	}, nil
}

func (r EligibilityRequest) TransactionID() string          { return r.transactionID }
func (r EligibilityRequest) BankID() valueobject.BankID     { return r.bankID }
func (r EligibilityRequest) MerchantID() string             { return r.merchantID }
func (r EligibilityRequest) PGRefNo() string                { return r.pgRefNo }
func (r EligibilityRequest) Amount() money.Amount           { return r.amount }
func (r EligibilityRequest) TenureMonths() int              { return r.tenureMonths }
func (r EligibilityRequest) ItemCode() string               { return r.itemCode }
func (r EligibilityRequest) StoreID() string                { return r.storeID }
func (r EligibilityRequest) StoreName() string              { return r.storeName }
func (r EligibilityRequest) Identity() valueobject.Identity { return r.identity }

// BookLoanParams carries the already-validated fields of a book-loan request.
type BookLoanParams struct {
	EligibilityParams
	OTP             string
	InterestRate    decimal.Decimal
	InvoiceNumber   string
	BankReferenceNo string
}

// BookLoanRequest confirms a previously offered EMI plan with the customer's OTP.
type BookLoanRequest struct {
	EligibilityRequest
	otp             string
	interestRate    decimal.Decimal
	invoiceNumber   string
	bankReferenceNo string
}

// NewBookLoanRequest builds a book-loan request.
func NewBookLoanRequest(p BookLoanParams) (BookLoanRequest, error) {
	base, err := NewEligibilityRequest(p.EligibilityParams)
	if err != nil {
		return BookLoanRequest{}, err
	}
	if p.OTP == "" {
		return BookLoanRequest{}, fmt.Errorf("otp is required")
	}
	if p.InterestRate.IsNegative() {
		return BookLoanRequest{}, fmt.Errorf("interest rate must not be negative, got: %s", p.InterestRate)
	}
	if p.InvoiceNumber == "" {
		return BookLoanRequest{}, fmt.Errorf("invoice number is required")
	}

	return BookLoanRequest{
		EligibilityRequest: base,
		otp:                p.OTP,
		interestRate:       p.InterestRate,
		invoiceNumber:      p.InvoiceNumber,
		bankReferenceNo:    p.BankReferenceNo,
	}, nil
}

// OTP returns the plaintext OTP. Adapters must encrypt it before it leaves the process.
func (r BookLoanRequest) OTP() string                   { return r.otp }
func (r BookLoanRequest) InterestRate() decimal.Decimal { return r.interestRate }
func (r BookLoanRequest) InvoiceNumber() string         { return r.invoiceNumber }
func (r BookLoanRequest) BankReferenceNo() string       { return r.bankReferenceNo }
