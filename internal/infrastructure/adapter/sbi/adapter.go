// Package sbi integrates the SBI EMI SOAP service. Card number and OTP are
// encrypted with the SBI public key before the envelope is built.
package sbi

import (
	"context"
	"log/slog"

	"github.com/bibbank/leapneo/internal/domain/apperror"
	"github.com/bibbank/leapneo/internal/domain/model"
	"github.com/bibbank/leapneo/internal/domain/port"
	"github.com/bibbank/leapneo/internal/domain/valueobject"
	"github.com/bibbank/leapneo/internal/infrastructure/adapter/partner"
)

var _ port.BankAdapter = (*Adapter)(nil)

const (
	DefaultEligibilityAction = "CustomerEligibility"
	DefaultBookLoanAction    = "CustomerBlock"
)

type Config struct {
	EligibilityURL    string
	BookLoanURL       string
	EligibilityAction string
	BookLoanAction    string
}

type Adapter struct {
	cfg    Config
	client partner.SOAPCaller
	enc    port.FieldEncryptor
	errs   *apperror.Registry
	logger *slog.Logger
}

func New(cfg Config, client partner.SOAPCaller, enc port.FieldEncryptor, errs *apperror.Registry, logger *slog.Logger) *Adapter {
	if cfg.EligibilityAction == "" {
		cfg.EligibilityAction = DefaultEligibilityAction
	}
	if cfg.BookLoanAction == "" {
		cfg.BookLoanAction = DefaultBookLoanAction
	}
	return &Adapter{cfg: cfg, client: client, enc: enc, errs: errs, logger: logger}
}

func (a *Adapter) CheckEligibility(ctx context.Context, req model.EligibilityRequest) (model.EligibilityResponse, error) {
	body, err := toEligibilityRequest(req, a.enc)
	if err != nil {
		a.logger.Error("SBI: failed to encrypt eligibility request", "transaction_id", req.TransactionID(), "error", err)
		return model.EligibilityResponse{}, partner.TranslationFailure(a.errs, err, fallbacks)
	}
	a.logger.Info("SBI: eligibility request", "transaction_id", req.TransactionID(), "identity_kind", req.Identity().Kind())

	var out customerEligibilityResponse
	if err := a.client.Call(ctx, a.cfg.EligibilityURL, a.cfg.EligibilityAction, body, &out); err != nil {
		appErr := partner.TransportFailure(a.errs, err, fallbacks)
		a.logger.Error("SBI: eligibility call failed", "transaction_id", req.TransactionID(), "kind", appErr.Kind(), "error", err)
		return model.EligibilityResponse{}, appErr
	}

	res := out.Response
	a.logger.Info("SBI: eligibility response", "transaction_id", req.TransactionID(), "response_code", res.ResponseCode)
	if res.ResponseCode != successCode {
		return model.EligibilityResponse{}, codes.Failure(a.errs, res.ResponseCode, res.ResponseMessage)
	}
	return model.NewEligibilityResponse(req, valueobject.ResultSuccess, res.TransactionID), nil
}

func (a *Adapter) BookLoan(ctx context.Context, req model.BookLoanRequest) (model.BookLoanResponse, error) {
	body, err := toBlockRequest(req, a.enc)
	if err != nil {
		a.logger.Error("SBI: failed to encrypt book-loan request", "transaction_id", req.TransactionID(), "error", err)
		return model.BookLoanResponse{}, partner.TranslationFailure(a.errs, err, fallbacks)
	}
	a.logger.Info("SBI: book-loan request", "transaction_id", req.TransactionID(), "tenure", req.TenureMonths())

	var out customerBlockResponse
	if err := a.client.Call(ctx, a.cfg.BookLoanURL, a.cfg.BookLoanAction, body, &out); err != nil {
		appErr := partner.TransportFailure(a.errs, err, fallbacks)
		a.logger.Error("SBI: book-loan call failed", "transaction_id", req.TransactionID(), "kind", appErr.Kind(), "error", err)
		return model.BookLoanResponse{}, appErr
	}

	res := out.Response
	a.logger.Info("SBI: book-loan response", "transaction_id", req.TransactionID(), "response_code", res.ResponseCode)
	if res.ResponseCode != successCode {
		return model.BookLoanResponse{}, codes.Failure(a.errs, res.ResponseCode, res.ResponseMessage)
	}

	terms, err := partner.ParseTerms(req, res.EMIAmount, res.TotalInterest, res.TotalAmount)
	if err != nil {
		return model.BookLoanResponse{}, partner.TranslationFailure(a.errs, err, fallbacks)
	}
	return model.NewBookLoanResponse(req, valueobject.ResultSuccess, res.TransactionID, res.BankReferenceNo, terms), nil
}
