package hdfc

import (
	"fmt"

	"github.com/bibbank/leapneo/internal/domain/model"
	"github.com/bibbank/leapneo/internal/domain/port"
	"github.com/bibbank/leapneo/internal/domain/valueobject"
)

const (
	identifierMobile = "MOBILE"
	identifierCard   = "CARD"
	identifierPAN    = "PAN"
)

type merchantCredentials struct {
	UserName    string `json:"merchantUserName"`
	Password    string `json:"merchantPassword"`
	ChannelType string `json:"channelType"`
	ChannelName string `json:"channelName"`
}

type eligibilityRequest struct {
	merchantCredentials
	MerchantID      string `json:"merchantId"`
	MCC             string `json:"mccCode"`
	TransactionID   string `json:"transactionId"`
	PGRefNo         string `json:"pgRefNo"`
	LoanAmount      string `json:"loanAmount"`
	Tenure          int    `json:"tenure"`
	IdentifierType  string `json:"identifierType"`
	IdentifierValue string `json:"identifierValue"`
	MobileNumber    string `json:"mobileNumber,omitempty"`
	ProductCode     string `json:"productCode,omitempty"`
	Quantity        int    `json:"quantity"`
	StoreID         string `json:"storeId,omitempty"`
	StoreName       string `json:"storeName,omitempty"`
}

type bookLoanRequest struct {
	eligibilityRequest
	OTP             string `json:"otp"`
	InterestRate    string `json:"interestRate"`
	InvoiceNumber   string `json:"invoiceNumber"`
	BankReferenceNo string `json:"bankReferenceNo,omitempty"`
}

type reply struct {
	StatusCode      string `json:"statusCode"`
	StatusMessage   string `json:"statusMessage"`
	ReferenceNo     string `json:"referenceNo"`
	BankReferenceNo string `json:"bankReferenceNo"`
	EMIAmount       string `json:"emiAmount"`
	TotalInterest   string `json:"totalInterest"`
	TotalAmount     string `json:"totalAmount"`
}

func toEligibilityRequest(cfg Config, req model.EligibilityRequest, enc port.FieldEncryptor) (eligibilityRequest, error) {
	out := eligibilityRequest{
		merchantCredentials: merchantCredentials{
			UserName:    cfg.MerchantUserName,
			Password:    cfg.MerchantPassword,
			ChannelType: cfg.ChannelType,
			ChannelName: cfg.ChannelName,
		},
		MerchantID:    req.MerchantID(),
		MCC:           cfg.MCC,
		TransactionID: req.TransactionID(),
		PGRefNo:       req.PGRefNo(),
		LoanAmount:    req.Amount().Fixed(),
		Tenure:        req.TenureMonths(),
		ProductCode:   req.ItemCode(),
		Quantity:      1,
		StoreID:       req.StoreID(),
		StoreName:     req.StoreName(),
	}

	id := req.Identity()
	out.MobileNumber = id.MobileNumber()
	switch id.Kind() {
	case valueobject.IdentityPAN:
		pan, err := enc.Encrypt(id.PAN())
		if err != nil {
			return eligibilityRequest{}, fmt.Errorf("encrypt pan: %w", err)
		}
		out.IdentifierType, out.IdentifierValue = identifierPAN, pan
	case valueobject.IdentityCardSuffix:
		out.IdentifierType, out.IdentifierValue = identifierCard, id.CardEnd()
	default:
		out.IdentifierType, out.IdentifierValue = identifierMobile, id.MobileNumber()
	}
	return out, nil
}

func toBookLoanRequest(cfg Config, req model.BookLoanRequest, enc port.FieldEncryptor) (bookLoanRequest, error) {
	base, err := toEligibilityRequest(cfg, req.EligibilityRequest, enc)
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
		BankReferenceNo:    req.BankReferenceNo(),
	}, nil
}
