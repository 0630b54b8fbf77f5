package icici

import (
	"fmt"

	"github.com/bibbank/leapneo/internal/domain/model"
	"github.com/bibbank/leapneo/internal/domain/port"
	"github.com/bibbank/leapneo/internal/domain/valueobject"
)

type eligibilityRequest struct {
	MerchantID    string `json:"merchantId"`
	TransactionID string `json:"transactionId"`
	PGRefNo       string `json:"pgRefNo"`
	Amount        string `json:"amount"`
	TenureMonths  int    `json:"tenureMonths"`
	MobileNo      string `json:"mobileNo,omitempty"`
	PAN           string `json:"pan,omitempty"`
	CardLast4     string `json:"cardLast4Digits,omitempty"`
	ProductCode   string `json:"productCode,omitempty"`
	StoreID       string `json:"storeId,omitempty"`
	StoreName     string `json:"storeName,omitempty"`
}

type bookLoanRequest struct {
	eligibilityRequest
	OTP          string `json:"otp"`
	InterestRate string `json:"interestRate"`
	InvoiceNo    string `json:"invoiceNo"`
	BankRefNo    string `json:"bankRefNo,omitempty"`
}

type reply struct {
	ErrorCode     string `json:"errorCode"`
	ErrorMessage  string `json:"errorMessage"`
	OfferID       string `json:"offerId"`
	BankRefNo     string `json:"bankRefNo"`
	EMIAmount     string `json:"emiAmount"`
	TotalInterest string `json:"totalInterest"`
	TotalAmount   string `json:"totalAmount"`
}

func toEligibilityRequest(req model.EligibilityRequest, enc port.FieldEncryptor) (eligibilityRequest, error) {
	out := eligibilityRequest{
		MerchantID:    req.MerchantID(),
		TransactionID: req.TransactionID(),
		PGRefNo:       req.PGRefNo(),
		Amount:        req.Amount().Fixed(),
		TenureMonths:  req.TenureMonths(),
		ProductCode:   req.ItemCode(),
		StoreID:       req.StoreID(),
		StoreName:     req.StoreName(),
	}

	id := req.Identity()
	out.MobileNo = id.MobileNumber()
	switch id.Kind() {
	case valueobject.IdentityPAN:
		pan, err := enc.Encrypt(id.PAN())
		if err != nil {
			return eligibilityRequest{}, fmt.Errorf("encrypt pan: %w", err)
		}
		out.PAN = pan
	case valueobject.IdentityCardSuffix:
		out.CardLast4 = id.CardEnd()
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
		InvoiceNo:          req.InvoiceNumber(),
		BankRefNo:          req.BankReferenceNo(),
	}, nil
}
