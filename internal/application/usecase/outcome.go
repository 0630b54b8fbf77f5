package usecase

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/bibbank/leapneo/internal/application/dto"
	"github.com/bibbank/leapneo/internal/domain/apperror"
	"github.com/bibbank/leapneo/internal/domain/model"
	"github.com/bibbank/leapneo/internal/domain/port"
	"github.com/bibbank/leapneo/internal/domain/valueobject"
)

// outcomeRecorder persists terminal outcomes. Persistence failures are logged
// and never change the response.
type outcomeRecorder struct {
	persister port.OutcomePersister
	logger    *slog.Logger
	now       func() time.Time
}

func (r outcomeRecorder) success(ctx context.Context, txnID string, bank valueobject.BankID, op valueobject.Operation, request json.RawMessage, response any, code string) {
	body, _ := json.Marshal(response)
	r.persist(ctx, model.TransactionRecord{
		TransactionID:    txnID,
		BankID:           bank.String(),
		Operation:        op,
		Outcome:          valueobject.ResultSuccess,
		ErrorCode:        code,
		RequestSnapshot:  request,
		ResponseSnapshot: body,
	})
}

// failure records business rejections only. Validation, dispatch and
// transport failures are not terminal partner outcomes.
func (r outcomeRecorder) failure(ctx context.Context, txnID string, bank valueobject.BankID, op valueobject.Operation, request json.RawMessage, appErr *apperror.Error) {
	if appErr.Class != apperror.ClassBusiness {
		return
	}
	body, _ := json.Marshal(ErrorBody(appErr))
	r.persist(ctx, model.TransactionRecord{
		TransactionID:    txnID,
		BankID:           bank.String(),
		Operation:        op,
		Outcome:          valueobject.ResultFailure,
		ErrorCode:        appErr.Entry.Code,
		RequestSnapshot:  request,
		ResponseSnapshot: body,
	})
}

func (r outcomeRecorder) persist(ctx context.Context, rec model.TransactionRecord) {
	if r.persister == nil {
		return
	}
	rec.RecordedAt = r.now().UTC()
	if err := r.persister.Persist(ctx, rec); err != nil {
		r.logger.Error("failed to persist transaction outcome",
			"transaction_id", rec.TransactionID,
			"operation", rec.Operation,
			"error", err,
		)
	}
}

// ErrorBody renders a canonical error as the failure response body.
func ErrorBody(appErr *apperror.Error) dto.ErrorResponse {
	return dto.ErrorResponse{
		ErrorCode: appErr.Entry.Code,
		ErrorType: string(appErr.Entry.Category),
		Message:   appErr.Entry.Description,
		Status:    valueobject.ResultFailure.String(),
	}
}

func eligibilityBody(resp model.EligibilityResponse, successCode string) dto.EligibilityResponse {
	return dto.EligibilityResponse{
		BankID:     resp.BankID().String(),
		MerchantID: resp.MerchantID(),
		PGRefNo:    resp.PGRefNo(),
		Amount:     resp.Amount(),
		ErrorCode:  successCode,
		Status:     resp.Result().String(),
	}
}

func bookLoanBody(resp model.BookLoanResponse, terms model.EMITerms, successCode string) dto.BookLoanResponse {
	return dto.BookLoanResponse{
		EligibilityResponse: eligibilityBody(resp.EligibilityResponse, successCode),
		BankReferenceNo:     resp.BankReferenceNo(),
		EMIDetails: &dto.EMIDetails{
			Amount:             terms.Amount,
			InterestRate:       json.Number(terms.InterestRate.String()),
			Tenure:             terms.Tenure,
			MonthlyInstallment: terms.MonthlyInstallment,
			TotalInterest:      terms.TotalInterest,
			TotalPayable:       terms.TotalPayable,
		},
	}
}
