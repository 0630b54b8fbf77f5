package axis

import (
	"fmt"

	"github.com/bibbank/leapneo/internal/domain/model"
	"github.com/bibbank/leapneo/internal/domain/port"
	"github.com/bibbank/leapneo/internal/domain/valueobject"
)

// Logic codes select the identifier AXIS resolves the customer by.
const (
	logicMobile = "M"
	logicCard   = "C"
	logicPAN    = "P"
)

type eligibilityRequest struct {
	MID           string `json:"mid"`
	URN           string `json:"urn"`
	PGRefNo       string `json:"pgRefNo"`
	AmountInPaise int64  `json:"amount"`
	Tenure        int    `json:"tenure"`
	LogicCode     string `json:"logicCode"`
	MobileNumber  string `json:"mobileNumber"`
	CardLastFour  string `json:"cardLastFour,omitempty"`
	PANNumber     string `json:"panNumber,omitempty"`
	ItemCode      string `json:"itemCode,omitempty"`
	StoreID       string `json:"storeId,omitempty"`
	StoreName     string `json:"storeName,omitempty"`
}

type bookLoanRequest struct {
	eligibilityRequest
	OTP           string `json:"otp"`
	InterestRate  string `json:"roi"`
	InvoiceNumber string `json:"invoiceNumber"`
	BankRefNo     string `json:"bankRefNo,omitempty"`
}

// Monetary reply fields are in paise.
type reply struct {
	Status        string `json:"status"`
	Code          string `json:"code"`
	Message       string `json:"message"`
	URN           string `json:"urn"`
	BankRefNo     string `json:"bankRefNo"`
	EMIAmount     int64  `json:"emiAmount"`
	TotalInterest int64  `json:"totalInterest"`
	TotalAmount   int64  `json:"totalAmount"`
}

func (r reply) accepted() bool {
	return r.Status == statusAccept && r.Code == successCode
}

func toEligibilityRequest(req model.EligibilityRequest, enc port.FieldEncryptor) (eligibilityRequest, error) {
	paise, err := req.Amount().Paise()
	if err != nil {
		return eligibilityRequest{}, err
	}
	out := eligibilityRequest{
		MID:           req.MerchantID(),
		URN:           req.TransactionID(),
		PGRefNo:       req.PGRefNo(),
		AmountInPaise: paise,
		Tenure:        req.TenureMonths(),
		ItemCode:      req.ItemCode(),
		StoreID:       req.StoreID(),
		StoreName:     req.StoreName(),
	}

	id := req.Identity()
	switch id.Kind() {
	case valueobject.IdentityPAN:
		out.LogicCode, out.PANNumber = logicPAN, id.PAN()
	case valueobject.IdentityCardSuffix:
		out.LogicCode, out.CardLastFour = logicCard, id.CardEnd()
	default:
		out.LogicCode = logicMobile
	}
	if id.MobileNumber() != "" {
		mobile, err := enc.Encrypt(id.MobileNumber())
		if err != nil {
			return eligibilityRequest{}, fmt.Errorf("encrypt mobile number: %w", err)
		}
		out.MobileNumber = mobile
	}
	return out, nil
}

func toBookLoanRequest(req model.BookLoanRequest, enc port.FieldEncryptor) (bookLoanRequest, error) {
	base, err := toEligibilityRequest(req.EligibilityRequest, enc)
	if err != nil {
		return bookLoanRequest{}, err
	}
	otp, err := enc.Encrypt(req.OTP())
	if err != nil {
		return bookLoanRequest{}, fmt.Errorf("encrypt otp: %w", err)
	}
	return bookLoanRequest{
		eligibilityRequest: base,
		OTP:                otp,
		InterestRate:       req.InterestRate().StringFixed(2),
		InvoiceNumber:      req.InvoiceNumber(),
		BankRefNo:          req.BankReferenceNo(),
	}, nil
}
