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

// CheckEligibility validates an eligibility request, dispatches it to the
// bank's adapter and records the outcome.
type CheckEligibility struct {
	validator *validation.Validator
	banks     *service.BankRegistry
	errs      *apperror.Registry
	recorder  outcomeRecorder
	logger    *slog.Logger
}

func NewCheckEligibility(
	validator *validation.Validator,
	banks *service.BankRegistry,
	errs *apperror.Registry,
	persister port.OutcomePersister,
	logger *slog.Logger,
) *CheckEligibility {
	return &CheckEligibility{
		validator: validator,
		banks:     banks,
		errs:      errs,
		recorder:  outcomeRecorder{persister: persister, logger: logger, now: time.Now},
		logger:    logger,
	}
}

// Execute returns the success body or a *apperror.Error.
func (uc *CheckEligibility) Execute(ctx context.Context, in dto.EligibilityRequest) (dto.EligibilityResponse, error) {
	req, err := uc.validator.Eligibility(in)
	if err != nil {
		uc.logger.Warn("eligibility request rejected",
			"transaction_id", in.TransactionID,
			"bankid", in.BankID,
			"error", err,
		)
		return dto.EligibilityResponse{}, uc.errs.Internal(apperror.ClassValidation, err)
	}

	adapter, err := uc.banks.ResolveEligibility(req.BankID().String())
	if err != nil {
		return dto.EligibilityResponse{}, uc.errs.Error(apperror.KindInternalServerError, apperror.ClassDispatch, err)
	}

	uc.logger.Info("checking eligibility",
		"transaction_id", req.TransactionID(),
		"bankid", req.BankID().String(),
		"identity_kind", req.Identity().Kind(),
	)

	// Once dispatched, the partner call and the outcome record are bounded
	// only by the client's response timeout, never by the caller going away.
	ctx = context.WithoutCancel(ctx)
	resp, err := adapter.CheckEligibility(ctx, req)
	if err != nil {
		appErr := uc.errs.Internal(apperror.ClassTransport, err)
		uc.logger.Warn("eligibility check failed",
			"transaction_id", req.TransactionID(),
			"bankid", req.BankID().String(),
			"error_kind", appErr.Kind(),
			"class", appErr.Class.String(),
			"error", err,
		)
		uc.recorder.failure(ctx, req.TransactionID(), req.BankID(), valueobject.OperationEligibility, req.MaskedSnapshot(), appErr)
		return dto.EligibilityResponse{}, appErr
	}

	body := eligibilityBody(resp, uc.errs.SuccessCode())
	uc.recorder.success(ctx, req.TransactionID(), req.BankID(), valueobject.OperationEligibility, req.MaskedSnapshot(), body, body.ErrorCode)
	return body, nil
}
