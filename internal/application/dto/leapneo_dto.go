package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bibbank/leapneo/pkg/money"
)

// IdentityBlock is the customer identifier block. Callers send it under
// either "identity" or "cardless".
type IdentityBlock struct {
	MobileNumber string `json:"mobile_number,omitempty"`
	CardEnd      string `json:"card_end,omitempty"`
	PANNumber    string `json:"pan_number,omitempty"`
}

// EligibilityRequest is the inbound check-eligibility body.
type EligibilityRequest struct {
	Identity      *IdentityBlock `json:"identity,omitempty"`
	Cardless      *IdentityBlock `json:"cardless,omitempty"`
	BankID        string         `json:"bankid"`
	MerchantID    string         `json:"merc_id"`
	PGRefNo       string         `json:"pg_ref_no"`
	ItemCode      string         `json:"item_code,omitempty"`
	StoreID       string         `json:"store_id,omitempty"`
	StoreName     string         `json:"store_name,omitempty"`
	TransactionID string         `json:"transaction_id"`
	Amount        money.Amount   `json:"amount"`
	Tenure        int            `json:"tenure"`
}

// IdentityBlock returns whichever identity block was sent, preferring "identity".
func (r EligibilityRequest) IdentityBlock() IdentityBlock {
	switch {
	case r.Identity != nil:
		return *r.Identity
	case r.Cardless != nil:
		return *r.Cardless
	default:
		return IdentityBlock{}
	}
}

// BookLoanRequest is the inbound book-loan body.
type BookLoanRequest struct {
	EligibilityRequest
	OTP             FlexString      `json:"otp"`
	InvoiceNumber   string          `json:"invoice_number"`
	BankReferenceNo string          `json:"bank_reference_no,omitempty"`
	InterestRate    decimal.Decimal `json:"interest_rate"`
}

// FlexString decodes from either a JSON string or a JSON number, keeping the
// literal digits. Callers send OTPs both ways.
type FlexString string

func (s *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = FlexString(str)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return fmt.Errorf("expected string or number: %w", err)
	}
	*s = FlexString(num.String())
	return nil
}

func (s FlexString) String() string { return string(s) }

// EligibilityResponse is the success body of check-eligibility.
type EligibilityResponse struct {
	BankID     string       `json:"bankid"`
	MerchantID string       `json:"merc_id"`
	PGRefNo    string       `json:"pg_ref_no"`
	ErrorCode  string       `json:"error_code"`
	Status     string       `json:"status"`
	Amount     money.Amount `json:"amount"`
}

// EMIDetails is the installment plan attached to a booked loan.
type EMIDetails struct {
	InterestRate       json.Number  `json:"interest_rate"`
	Amount             money.Amount `json:"amount"`
	MonthlyInstallment money.Amount `json:"monthly_installment"`
	TotalInterest      money.Amount `json:"total_interest"`
	TotalPayable       money.Amount `json:"total_payable"`
	Tenure             int          `json:"tenure"`
}

// BookLoanResponse is the success body of book-loan.
type BookLoanResponse struct {
	EMIDetails *EMIDetails `json:"emi_details,omitempty"`
	EligibilityResponse
	BankReferenceNo string `json:"bank_reference_no,omitempty"`
}

// ErrorResponse is the body of every failed call.
type ErrorResponse struct {
	ErrorCode string `json:"error_code"`
	ErrorType string `json:"error_type"`
	Message   string `json:"message"`
	Status    string `json:"status"`
}

// GetTransactionRequest looks up the persisted outcome of one operation.
type GetTransactionRequest struct {
	TransactionID string
	Operation     string
}

// TransactionRecordResponse is the read model of a persisted outcome.
type TransactionRecordResponse struct {
	RecordedAt    time.Time       `json:"recorded_at"`
	TransactionID string          `json:"transaction_id"`
	BankID        string          `json:"bankid"`
	Operation     string          `json:"operation"`
	Outcome       string          `json:"outcome"`
	ErrorCode     string          `json:"error_code"`
	Request       json.RawMessage `json:"request,omitempty"`
	Response      json.RawMessage `json:"response,omitempty"`
}
