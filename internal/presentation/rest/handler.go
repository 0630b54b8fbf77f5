// Package rest exposes the LeapNeo orchestration API over HTTP.
package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/bibbank/leapneo/internal/application/dto"
	"github.com/bibbank/leapneo/internal/application/usecase"
	"github.com/bibbank/leapneo/internal/domain/apperror"
)

const maxBodyBytes = 1 << 20

type EligibilityChecker interface {
	Execute(ctx context.Context, in dto.EligibilityRequest) (dto.EligibilityResponse, error)
}

type LoanBooker interface {
	Execute(ctx context.Context, in dto.BookLoanRequest) (dto.BookLoanResponse, error)
}

type TransactionFinder interface {
	Execute(ctx context.Context, req dto.GetTransactionRequest) (dto.TransactionRecordResponse, error)
}

// Handler serves the LeapNeo endpoints.
type Handler struct {
	eligibility  EligibilityChecker
	bookLoan     LoanBooker
	transactions TransactionFinder
	errs         *apperror.Registry
	logger       *slog.Logger
}

func NewHandler(
	eligibility EligibilityChecker,
	bookLoan LoanBooker,
	transactions TransactionFinder,
	errs *apperror.Registry,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		eligibility:  eligibility,
		bookLoan:     bookLoan,
		transactions: transactions,
		errs:         errs,
		logger:       logger,
	}
}

// CheckEligibility handles POST /api/v1/leapneo/check-eligibility.
func (h *Handler) CheckEligibility(w http.ResponseWriter, r *http.Request) {
	var in dto.EligibilityRequest
	if !h.decode(w, r, &in) {
		return
	}

	resp, err := h.eligibility.Execute(r.Context(), in)
	if err != nil {
		h.writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// BookLoan handles POST /api/v1/leapneo/book-loan.
func (h *Handler) BookLoan(w http.ResponseWriter, r *http.Request) {
	var in dto.BookLoanRequest
	if !h.decode(w, r, &in) {
		return
	}

	resp, err := h.bookLoan.Execute(r.Context(), in)
	if err != nil {
		h.writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// GetTransaction handles GET /api/v1/leapneo/transactions/{transactionID}.
func (h *Handler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	req := dto.GetTransactionRequest{
		TransactionID: chi.URLParam(r, "transactionID"),
		Operation:     r.URL.Query().Get("operation"),
	}

	resp, err := h.transactions.Execute(r.Context(), req)
	if err != nil {
		h.writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(dst); err != nil {
		h.writeFailure(w, r, h.errs.Error(apperror.KindInternalServerError, apperror.ClassValidation,
			fmt.Errorf("decode request body: %w", err)))
		return false
	}
	return true
}

// writeFailure renders err as the canonical failure body with the entry's HTTP status.
func (h *Handler) writeFailure(w http.ResponseWriter, r *http.Request, err error) {
	appErr := h.errs.Internal(apperror.ClassTransport, err)
	if appErr.Entry.HTTPStatus >= http.StatusInternalServerError {
		h.logger.Warn("request failed",
			"path", r.URL.Path,
			"request_id", middleware.GetReqID(r.Context()),
			"error_code", appErr.Entry.Code,
			"class", appErr.Class.String(),
			"error", err,
		)
	}
	writeJSON(w, appErr.Entry.HTTPStatus, usecase.ErrorBody(appErr))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
