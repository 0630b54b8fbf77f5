// Package hdfc integrates the HDFC consumer-durable EMI REST API.
package hdfc

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

// Config holds the HDFC endpoints and merchant credentials.
type Config struct {
	EligibilityURL   string
	BookLoanURL      string
	MerchantUserName string
	MerchantPassword string
	ChannelType      string
	ChannelName      string
	MCC              string
}

// Adapter translates canonical requests to HDFC calls.
type Adapter struct {
	cfg    Config
	client partner.JSONPoster
	enc    port.FieldEncryptor
	errs   *apperror.Registry
	logger *slog.Logger
}

func New(cfg Config, client partner.JSONPoster, enc port.FieldEncryptor, errs *apperror.Registry, logger *slog.Logger) *Adapter {
	return &Adapter{cfg: cfg, client: client, enc: enc, errs: errs, logger: logger}
}

func (a *Adapter) CheckEligibility(ctx context.Context, req model.EligibilityRequest) (model.EligibilityResponse, error) {
	body, err := toEligibilityRequest(a.cfg, req, a.enc)
	if err != nil {
		a.logger.Error("HDFC: failed to build eligibility request", "transaction_id", req.TransactionID(), "error", err)
		return model.EligibilityResponse{}, partner.TranslationFailure(a.errs, err, fallbacks)
	}
	a.logger.Info("HDFC: eligibility request",
		"transaction_id", req.TransactionID(),
		"identifier_type", body.IdentifierType,
		"amount", body.LoanAmount,
	)

	var out reply
	if err := a.client.PostJSON(ctx, "eligibility", a.cfg.EligibilityURL, body, &out); err != nil {
		appErr := partner.TransportFailure(a.errs, err, fallbacks)
		a.logger.Error("HDFC: eligibility call failed", "transaction_id", req.TransactionID(), "kind", appErr.Kind(), "error", err)
		return model.EligibilityResponse{}, appErr
	}

	a.logger.Info("HDFC: eligibility response", "transaction_id", req.TransactionID(), "status_code", out.StatusCode)
	if out.StatusCode != successCode {
		return model.EligibilityResponse{}, codes.Failure(a.errs, out.StatusCode, out.StatusMessage)
	}
	return model.NewEligibilityResponse(req, valueobject.ResultSuccess, out.ReferenceNo), nil
}

func (a *Adapter) BookLoan(ctx context.Context, req model.BookLoanRequest) (model.BookLoanResponse, error) {
	body, err := toBookLoanRequest(a.cfg, req, a.enc)
	if err != nil {
		a.logger.Error("HDFC: failed to build book-loan request", "transaction_id", req.TransactionID(), "error", err)
		return model.BookLoanResponse{}, partner.TranslationFailure(a.errs, err, fallbacks)
	}
	a.logger.Info("HDFC: book-loan request",
		"transaction_id", req.TransactionID(),
		"identifier_type", body.IdentifierType,
		"tenure", body.Tenure,
	)

	var out reply
	if err := a.client.PostJSON(ctx, "book_loan", a.cfg.BookLoanURL, body, &out); err != nil {
		appErr := partner.TransportFailure(a.errs, err, fallbacks)
		a.logger.Error("HDFC: book-loan call failed", "transaction_id", req.TransactionID(), "kind", appErr.Kind(), "error", err)
		return model.BookLoanResponse{}, appErr
	}

	a.logger.Info("HDFC: book-loan response", "transaction_id", req.TransactionID(), "status_code", out.StatusCode)
	if out.StatusCode != successCode {
		return model.BookLoanResponse{}, codes.Failure(a.errs, out.StatusCode, out.StatusMessage)
	}

	terms, err := partner.ParseTerms(req, out.EMIAmount, out.TotalInterest, out.TotalAmount)
	if err != nil {
		return model.BookLoanResponse{}, partner.TranslationFailure(a.errs, err, fallbacks)
	}
	return model.NewBookLoanResponse(req, valueobject.ResultSuccess, out.ReferenceNo, out.BankReferenceNo, terms), nil
}
