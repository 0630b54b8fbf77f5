package sbi

import (
	"encoding/xml"
	"fmt"

	"github.com/bibbank/leapneo/internal/domain/model"
	"github.com/bibbank/leapneo/internal/domain/port"
)

type cardDetails struct {
	CardNumber string `xml:"CardNumber,omitempty"`
	OTPValue   string `xml:"OtpValue,omitempty"`
}

type apiRequest struct {
	MerchantID    string       `xml:"MerchantId"`
	TransactionID string       `xml:"TransactionId"`
	PGRefNo       string       `xml:"PgRefNo"`
	Amount        string       `xml:"Amount"`
	Tenure        int          `xml:"Tenure"`
	MobileNumber  string       `xml:"MobileNumber,omitempty"`
	PANNumber     string       `xml:"PanNumber,omitempty"`
	ItemCode      string       `xml:"ItemCode,omitempty"`
	StoreID       string       `xml:"StoreId,omitempty"`
	CardDetails   *cardDetails `xml:"CardDetails,omitempty"`
}

type blockAPIRequest struct {
	apiRequest
	InterestRate    string `xml:"InterestRate"`
	InvoiceNumber   string `xml:"InvoiceNumber"`
	BankReferenceNo string `xml:"BankReferenceNo,omitempty"`
}

type customerEligibilityRequest struct {
	XMLName xml.Name   `xml:"CustomerEligibilityRequest"`
	Request apiRequest `xml:"CustomerEligibilityApiRequest"`
}

type customerBlockRequest struct {
	XMLName xml.Name        `xml:"CustomerBlockRequest"`
	Request blockAPIRequest `xml:"CustomerBlockApiRequest"`
}

type apiResponse struct {
	ResponseCode    string `xml:"ResponseCode"`
	ResponseMessage string `xml:"ResponseMessage"`
	TransactionID   string `xml:"TransactionId"`
	BankReferenceNo string `xml:"BankReferenceNo"`
	EMIAmount       string `xml:"EmiAmount"`
	TotalInterest   string `xml:"TotalInterest"`
	TotalAmount     string `xml:"TotalAmount"`
}

type customerEligibilityResponse struct {
	XMLName  xml.Name    `xml:"CustomerEligibilityResponse"`
	Response apiResponse `xml:"CustomerEligibilityApiResponse"`
}

type customerBlockResponse struct {
	XMLName  xml.Name    `xml:"CustomerBlockResponse"`
	Response apiResponse `xml:"CustomerBlockApiResponse"`
}

func toAPIRequest(req model.EligibilityRequest, enc port.FieldEncryptor) (apiRequest, error) {
	id := req.Identity()
	out := apiRequest{
		MerchantID:    req.MerchantID(),
		TransactionID: req.TransactionID(),
		PGRefNo:       req.PGRefNo(),
		Amount:        req.Amount().Fixed(),
		Tenure:        req.TenureMonths(),
		MobileNumber:  id.MobileNumber(),
		PANNumber:     id.PAN(),
		ItemCode:      req.ItemCode(),
		StoreID:       req.StoreID(),
	}
	if id.CardEnd() != "" {
		card, err := enc.Encrypt(id.CardEnd())
		if err != nil {
			return apiRequest{}, fmt.Errorf("encrypt card number: %w", err)
		}
		out.CardDetails = &cardDetails{CardNumber: card}
	}
	return out, nil
}

func toEligibilityRequest(req model.EligibilityRequest, enc port.FieldEncryptor) (customerEligibilityRequest, error) {
	api, err := toAPIRequest(req, enc)
	if err != nil {
		return customerEligibilityRequest{}, err
	}
	return customerEligibilityRequest{Request: api}, nil
}

func toBlockRequest(req model.BookLoanRequest, enc port.FieldEncryptor) (customerBlockRequest, error) {
	api, err := toAPIRequest(req.EligibilityRequest, enc)
	if err != nil {
		return customerBlockRequest{}, err
	}
	otp, err := enc.Encrypt(req.OTP())
	if err != nil {
		return customerBlockRequest{}, fmt.Errorf("encrypt otp: %w", err)
	}
	if api.CardDetails == nil {
		api.CardDetails = &cardDetails{}
	}
	api.CardDetails.OTPValue = otp

	return customerBlockRequest{Request: blockAPIRequest{
		apiRequest:      api,
		InterestRate:    req.InterestRate().StringFixed(2),
		InvoiceNumber:   req.InvoiceNumber(),
		BankReferenceNo: req.BankReferenceNo(),
	}}, nil
}
