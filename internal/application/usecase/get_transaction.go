package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/bibbank/leapneo/internal/application/dto"
	"github.com/bibbank/leapneo/internal/domain/apperror"
	"github.com/bibbank/leapneo/internal/domain/model"
	"github.com/bibbank/leapneo/internal/domain/port"
	"github.com/bibbank/leapneo/internal/domain/valueobject"
)

// GetTransaction reads a persisted outcome, trying the cache before the repository.
type GetTransaction struct {
	repo   port.TransactionRecordRepository
	cache  port.TransactionRecordCache
	errs   *apperror.Registry
	logger *slog.Logger
}

func NewGetTransaction(
	repo port.TransactionRecordRepository,
	cache port.TransactionRecordCache,
	errs *apperror.Registry,
	logger *slog.Logger,
) *GetTransaction {
	return &GetTransaction{repo: repo, cache: cache, errs: errs, logger: logger}
}

func (uc *GetTransaction) Execute(ctx context.Context, req dto.GetTransactionRequest) (dto.TransactionRecordResponse, error) {
	op, ok := valueobject.ParseOperation(req.Operation)
	if !ok || req.TransactionID == "" {
		return dto.TransactionRecordResponse{}, uc.errs.Error(apperror.KindInternalServerError, apperror.ClassValidation,
			fmt.Errorf("invalid lookup %q/%q", req.TransactionID, req.Operation))
	}

	if uc.cache != nil {
		rec, err := uc.cache.Get(ctx, req.TransactionID, op)
		if err == nil {
			return toRecordResponse(rec), nil
		}
		if !errors.Is(err, port.ErrRecordNotFound) {
			uc.logger.Warn("transaction cache read failed", "transaction_id", req.TransactionID, "error", err)
		}
	}

	rec, err := uc.repo.Find(ctx, req.TransactionID, op)
	if errors.Is(err, port.ErrRecordNotFound) {
		return dto.TransactionRecordResponse{}, uc.errs.Error(apperror.KindTransactionNotFound, apperror.ClassBusiness, err)
	}
	if err != nil {
		return dto.TransactionRecordResponse{}, uc.errs.Error(apperror.KindInternalServerError, apperror.ClassTransport, err)
	}

	if uc.cache != nil {
		if err := uc.cache.Put(ctx, rec); err != nil {
			uc.logger.Warn("transaction cache fill failed", "transaction_id", req.TransactionID, "error", err)
		}
	}
	return toRecordResponse(rec), nil
}

func toRecordResponse(rec model.TransactionRecord) dto.TransactionRecordResponse {
	return dto.TransactionRecordResponse{
		TransactionID: rec.TransactionID,
		BankID:        rec.BankID,
		Operation:     rec.Operation.String(),
		Outcome:       rec.Outcome.String(),
		ErrorCode:     rec.ErrorCode,
		Request:       rec.RequestSnapshot,
		Response:      rec.ResponseSnapshot,
		RecordedAt:    rec.RecordedAt,
	}
}
