package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/bibbank/leapneo/internal/application/dto"
	"github.com/bibbank/leapneo/internal/application/validation"
	"github.com/bibbank/leapneo/internal/domain/apperror"
	"github.com/bibbank/leapneo/internal/domain/port"
	"github.com/bibbank/leapneo/internal/domain/service"
	"github.com/bibbank/leapneo/internal/domain/valueobject"
)

// BookLoan validates a book-loan request, dispatches it to the bank's adapter,
// completes the EMI terms and records the outcome.
type BookLoan struct {
	validator *validation.Validator
	banks     *service.BankRegistry
	errs      *apperror.Registry
	calc      service.EMICalculator
	recorder  outcomeRecorder
	logger    *slog.Logger
}

func NewBookLoan(
	validator *validation.Validator,
	banks *service.BankRegistry,
	errs *apperror.Registry,
	persister port.OutcomePersister,
	logger *slog.Logger,
) *BookLoan {
	return &BookLoan{
		validator: validator,
		banks:     banks,
		errs:      errs,
		calc:      service.NewEMICalculator(),
		recorder:  outcomeRecorder{persister: persister, logger: logger, now: time.Now},
		logger:    logger,
	}
}

// Execute returns the success body or a *apperror.Error.
func (uc *BookLoan) Execute(ctx context.Context, in dto.BookLoanRequest) (dto.BookLoanResponse, error) {
	req, err := uc.validator.BookLoan(in)
	if err != nil {
		uc.logger.Warn("book-loan request rejected",
			"transaction_id", in.TransactionID,
			"bankid", in.BankID,
			"error", err,
		)
		return dto.BookLoanResponse{}, uc.errs.Internal(apperror.ClassValidation, err)
	}

	adapter, err := uc.banks.ResolveBookLoan(req.BankID().String())
	if err != nil {
		return dto.BookLoanResponse{}, uc.errs.Error(apperror.KindInternalServerError, apperror.ClassDispatch, err)
	}

	uc.logger.Info("booking loan",
		"transaction_id", req.TransactionID(),
		"bankid", req.BankID().String(),
		"tenure", req.TenureMonths(),
	)

	// Once dispatched, the partner call and the outcome record are bounded
	// only by the client's response timeout, never by the caller going away.
	ctx = context.WithoutCancel(ctx)
	resp, err := adapter.BookLoan(ctx, req)
	if err != nil {
		appErr := uc.errs.Internal(apperror.ClassTransport, err)
		uc.logger.Warn("book-loan failed",
			"transaction_id", req.TransactionID(),
			"bankid", req.BankID().String(),
			"error_kind", appErr.Kind(),
			"class", appErr.Class.String(),
			"error", err,
		)
		uc.recorder.failure(ctx, req.TransactionID(), req.BankID(), valueobject.OperationBookLoan, req.MaskedSnapshot(), appErr)
		return dto.BookLoanResponse{}, appErr
	}

	terms := resp.Terms()
	if terms.MonthlyInstallment.IsZero() {
		terms, err = uc.calc.Calculate(req.Amount(), req.InterestRate(), req.TenureMonths())
		if err != nil {
			// The loan is already booked with the partner; report it without a plan.
			uc.logger.Error("failed to compute emi terms",
				"transaction_id", req.TransactionID(),
				"error", err,
			)
		}
	}

	body := bookLoanBody(resp, terms, uc.errs.SuccessCode())
	if terms.MonthlyInstallment.IsZero() {
		body.EMIDetails = nil
	}
	uc.recorder.success(ctx, req.TransactionID(), req.BankID(), valueobject.OperationBookLoan, req.MaskedSnapshot(), body, body.ErrorCode)
	return body, nil
}
