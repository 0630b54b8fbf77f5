package axis

import (
	"github.com/bibbank/leapneo/internal/domain/apperror"
	"github.com/bibbank/leapneo/internal/infrastructure/adapter/partner"
)

const (
	statusAccept = "ACCEPT"
	successCode  = "000"
)

// Replies AXIS could not decrypt come back with codes outside this table, so
// the fallback is INTERNAL_SERVER_ERROR rather than TECHNICAL_ERROR.
var codes = partner.NewCodeTable("AXIS", apperror.KindInternalServerError, map[string]apperror.Kind{
	"002": apperror.KindOfferAlreadyBlocked,
	"003": apperror.KindOfferExpired,
	"004": apperror.KindAmountNotEligible,
	"005": apperror.KindCustomerNotEligibleForEMI,
	"006": apperror.KindInputValueMismatch,
	"008": apperror.KindInvalidLogicCode,
	"009": apperror.KindInvalidMobileNumber,
	"010": apperror.KindInvalidUniqueReference,
	"012": apperror.KindInvalidResponseFromBank,
})

var fallbacks = partner.Fallbacks{
	Transport:   apperror.KindGenericError,
	Translation: apperror.KindGenericError,
}
