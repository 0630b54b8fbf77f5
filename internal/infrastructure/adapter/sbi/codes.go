package sbi

import (
	"github.com/bibbank/leapneo/internal/domain/apperror"
	"github.com/bibbank/leapneo/internal/infrastructure/adapter/partner"
)

const successCode = "0000"

var codes = partner.NewCodeTable("SBI", apperror.KindTechnicalError, map[string]apperror.Kind{
	"0001": apperror.KindCustomerNotEligible,
	"0002": apperror.KindInvalidOTP,
	"0003": apperror.KindDuplicateTransactionRequest,
	"0004": apperror.KindInvalidAmount,
	"0005": apperror.KindInvalidTenureMonths,
	"0006": apperror.KindCustomerDetailsNotFound,
	"0007": apperror.KindTransactionIDMismatch,
	"0008": apperror.KindBlockOfferFailed,
	"0009": apperror.KindTransactionTimeout,
})

var fallbacks = partner.Fallbacks{
	Transport:   apperror.KindInternalServerError,
	Translation: apperror.KindInternalServerError,
}
