package icici

import (
	"github.com/bibbank/leapneo/internal/domain/apperror"
	"github.com/bibbank/leapneo/internal/infrastructure/adapter/partner"
)

const successCode = "0"

var codes = partner.NewCodeTable("ICICI", apperror.KindTechnicalError, map[string]apperror.Kind{
	"1":  apperror.KindInvalidTenureMonths,
	"2":  apperror.KindCustomerDetailsNotFound,
	"3":  apperror.KindCustomerPANMismatch,
	"4":  apperror.KindDuplicateTransactionRequest,
	"5":  apperror.KindCustomerNotEligible,
	"6":  apperror.KindInvalidAmount,
	"7":  apperror.KindMerchantNotExist,
	"8":  apperror.KindTransactionIDMismatch,
	"9":  apperror.KindInvalidOTP,
	"10": apperror.KindPaymentProcessingFailed,
	"11": apperror.KindBlockOfferFailed,
	"12": apperror.KindTransactionTimeout,
	"13": apperror.KindEMITransactionTimeout,
	"14": apperror.KindInvalidEncryptedRequest,
	"15": apperror.KindInvalidJSON,
	"16": apperror.KindEmptyJSONRequest,
	"17": apperror.KindFormatMismatch,
	"18": apperror.KindMandatoryFieldMissing,
	"19": apperror.KindMandatoryFieldDataMissing,
	"20": apperror.KindFieldLengthExceeded,
	"99": apperror.KindTechnicalError,
})

var fallbacks = partner.Fallbacks{
	Transport:   apperror.KindGenericError,
	Translation: apperror.KindGenericError,
}
