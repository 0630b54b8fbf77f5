package model

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/bibbank/leapneo/internal/domain/valueobject"
)

// TransactionRecord is the persisted projection of one terminal outcome. It is
// written once per transaction id and operation.
type TransactionRecord struct {
	RecordedAt       time.Time             `json:"recorded_at"`
	TransactionID    string                `json:"transaction_id"`
	BankID           string                `json:"bankid"`
	Operation        valueobject.Operation `json:"operation"`
	Outcome          valueobject.Result    `json:"outcome"`
	ErrorCode        string                `json:"error_code"`
	RequestSnapshot  json.RawMessage       `json:"request"`
	ResponseSnapshot json.RawMessage       `json:"response"`
}

// Key identifies the record in caches and message keys.
func (r TransactionRecord) Key() string {
	return RecordKey(r.TransactionID, r.Operation)
}

// RecordKey builds the key of the record for a transaction and operation.
func RecordKey(transactionID string, op valueobject.Operation) string {
	return transactionID + ":" + string(op)
}

type identitySnapshot struct {
	Kind         valueobject.IdentityKind `json:"kind"`
	MobileNumber string                   `json:"mobile_number,omitempty"`
	CardEnd      string                   `json:"card_end,omitempty"`
	PAN          string                   `json:"pan_number,omitempty"`
}

type requestSnapshot struct {
	TransactionID   string           `json:"transaction_id"`
	BankID          string           `json:"bankid"`
	MerchantID      string           `json:"merc_id"`
	PGRefNo         string           `json:"pg_ref_no"`
	Amount          string           `json:"amount"`
	Tenure          int              `json:"tenure"`
	ItemCode        string           `json:"item_code,omitempty"`
	StoreID         string           `json:"store_id,omitempty"`
	StoreName       string           `json:"store_name,omitempty"`
	Identity        identitySnapshot `json:"identity"`
	InterestRate    string           `json:"interest_rate,omitempty"`
	InvoiceNumber   string           `json:"invoice_number,omitempty"`
	BankReferenceNo string           `json:"bank_reference_no,omitempty"`
}

func snapshotOf(r EligibilityRequest) requestSnapshot {
	id := r.Identity()
	return requestSnapshot{
		TransactionID: r.TransactionID(),
		BankID:        r.BankID().String(),
		MerchantID:    r.MerchantID(),
		PGRefNo:       r.PGRefNo(),
		Amount:        r.Amount().Fixed(),
		Tenure:        r.TenureMonths(),
		ItemCode:      r.ItemCode(),
		StoreID:       r.StoreID(),
		StoreName:     r.StoreName(),
		Identity: identitySnapshot{
			Kind:         id.Kind(),
			MobileNumber: MaskMobile(id.MobileNumber()),
			CardEnd:      id.CardEnd(),
			PAN:          MaskPAN(id.PAN()),
		},
	}
}

// MaskedSnapshot renders the request for persistence with the identity masked.
func (r EligibilityRequest) MaskedSnapshot() json.RawMessage {
	b, _ := json.Marshal(snapshotOf(r))
	return b
}

// MaskedSnapshot renders the request for persistence. The OTP is never included.
func (r BookLoanRequest) MaskedSnapshot() json.RawMessage {
	s := snapshotOf(r.EligibilityRequest)
	s.InterestRate = r.InterestRate().StringFixed(2)
	s.InvoiceNumber = r.InvoiceNumber()
	s.BankReferenceNo = r.BankReferenceNo()
	b, _ := json.Marshal(s)
	return b
}

// MaskMobile keeps the last four digits of a mobile number.
func MaskMobile(mobile string) string {
	return maskTail(mobile, 4)
}

// MaskPAN keeps the last four characters of a PAN.
func MaskPAN(pan string) string {
	return maskTail(pan, 4)
}

func maskTail(s string, keep int) string {
	if s == "" {
		return ""
	}
	if len(s) <= keep {
		return strings.Repeat("*", len(s))
	}
	return strings.Repeat("*", len(s)-keep) + s[len(s)-keep:]
}
