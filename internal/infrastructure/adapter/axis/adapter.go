// Package axis integrates the AXIS EMI REST API. Amounts travel in paise and
// success is reported as status ACCEPT.
package axis

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

type Config struct {
	EligibilityURL string
	BookLoanURL    string
}

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
		a.logger.Error("AXIS: failed to build eligibility request", "transaction_id", req.TransactionID(), "error", err)
		return model.EligibilityResponse{}, partner.TranslationFailure(a.errs, err, fallbacks)
	}
	a.logger.Info("AXIS: eligibility request",
		"transaction_id", req.TransactionID(),
		"logic_code", body.LogicCode,
		"amount_paise", body.AmountInPaise,
	)

	out, err := a.post(ctx, "eligibility", a.cfg.EligibilityURL, body)
	if err != nil {
		return model.EligibilityResponse{}, err
	}
	return model.NewEligibilityResponse(req, valueobject.ResultAccept, out.URN), nil
}

func (a *Adapter) BookLoan(ctx context.Context, req model.BookLoanRequest) (model.BookLoanResponse, error) {
	body, err := toBookLoanRequest(req, a.enc)
	if err != nil {
		a.logger.Error("AXIS: failed to build book-loan request", "transaction_id", req.TransactionID(), "error", err)
		return model.BookLoanResponse{}, partner.TranslationFailure(a.errs, err, fallbacks)
	}
	a.logger.Info("AXIS: book-loan request",
		"transaction_id", req.TransactionID(),
		"logic_code", body.LogicCode,
		"tenure", body.Tenure,
	)

	out, err := a.post(ctx, "book_loan", a.cfg.BookLoanURL, body)
	if err != nil {
		return model.BookLoanResponse{}, err
	}
	terms := partner.ParsePaiseTerms(req, out.EMIAmount, out.TotalInterest, out.TotalAmount)
	return model.NewBookLoanResponse(req, valueobject.ResultAccept, out.URN, out.BankRefNo, terms), nil
}

func (a *Adapter) post(ctx context.Context, op, url string, body any) (reply, error) {
	var out reply
	if err := a.client.PostJSON(ctx, op, url, body, &out); err != nil {
		appErr := partner.TransportFailure(a.errs, err, fallbacks)
		a.logger.Error("AXIS: call failed", "operation", op, "kind", appErr.Kind(), "error", err)
		return reply{}, appErr
	}
	a.logger.Info("AXIS: response", "operation", op, "status", out.Status, "code", out.Code)
	if !out.accepted() {
		return reply{}, codes.Failure(a.errs, out.Code, out.Message)
	}
	return out, nil
}
