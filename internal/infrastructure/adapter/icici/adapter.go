// Package icici integrates the ICICI cardless EMI REST API. Calls carry an API
// key header and may go through the corporate proxy with a private trust store.
package icici

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

// Config holds the ICICI endpoints.
type Config struct {
	EligibilityURL string
	BookLoanURL    string
}

// Adapter translates canonical requests to ICICI calls.
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
	body, err := toEligibilityRequest(req, a.enc)
	if err != nil {
		a.logger.Error("ICICI: failed to build eligibility request", "transaction_id", req.TransactionID(), "error", err)
		return model.EligibilityResponse{}, partner.TranslationFailure(a.errs, err, fallbacks)
	}
	a.logger.Info("ICICI: eligibility request",
		"transaction_id", req.TransactionID(),
		"identity_kind", req.Identity().Kind(),
		"amount", body.Amount,
	)

	var out reply
	if err := a.client.PostJSON(ctx, "eligibility", a.cfg.EligibilityURL, body, &out); err != nil {
		appErr := partner.TransportFailure(a.errs, err, fallbacks)
		a.logger.Error("ICICI: eligibility call failed", "transaction_id", req.TransactionID(), "kind", appErr.Kind(), "error", err)
		return model.EligibilityResponse{}, appErr
	}

	a.logger.Info("ICICI: eligibility response", "transaction_id", req.TransactionID(), "error_code", out.ErrorCode)
	if out.ErrorCode != successCode {
		return model.EligibilityResponse{}, codes.Failure(a.errs, out.ErrorCode, out.ErrorMessage)
	}
	return model.NewEligibilityResponse(req, valueobject.ResultSuccess, out.OfferID), nil
}

func (a *Adapter) BookLoan(ctx context.Context, req model.BookLoanRequest) (model.BookLoanResponse, error) {
	body, err := toBookLoanRequest(req, a.enc)
	if err != nil {
		a.logger.Error("ICICI: failed to build book-loan request", "transaction_id", req.TransactionID(), "error", err)
		return model.BookLoanResponse{}, partner.TranslationFailure(a.errs, err, fallbacks)
	}
	a.logger.Info("ICICI: book-loan request",
		"transaction_id", req.TransactionID(),
		"identity_kind", req.Identity().Kind(),
		"tenure", body.TenureMonths,
	)

	var out reply
	if err := a.client.PostJSON(ctx, "book_loan", a.cfg.BookLoanURL, body, &out); err != nil {
		appErr := partner.TransportFailure(a.errs, err, fallbacks)
		a.logger.Error("ICICI: book-loan call failed", "transaction_id", req.TransactionID(), "kind", appErr.Kind(), "error", err)
		return model.BookLoanResponse{}, appErr
	}

	a.logger.Info("ICICI: book-loan response", "transaction_id", req.TransactionID(), "error_code", out.ErrorCode)
	if out.ErrorCode != successCode {
		return model.BookLoanResponse{}, codes.Failure(a.errs, out.ErrorCode, out.ErrorMessage)
	}

	terms, err := partner.ParseTerms(req, out.EMIAmount, out.TotalInterest, out.TotalAmount)
	if err != nil {
		return model.BookLoanResponse{}, partner.TranslationFailure(a.errs, err, fallbacks)
	}
	return model.NewBookLoanResponse(req, valueobject.ResultSuccess, out.OfferID, out.BankRefNo, terms), nil
}
