package hdfc

import (
	"github.com/bibbank/leapneo/internal/domain/apperror"
	"github.com/bibbank/leapneo/internal/infrastructure/adapter/partner"
)

const successCode = "00"

var codes = partner.NewCodeTable("HDFC", apperror.KindTechnicalError, map[string]apperror.Kind{
	"01": apperror.KindCustomerNotEligible,
	"02": apperror.KindDuplicateTransactionRequest,
	"03": apperror.KindOTPMismatch,
	"04": apperror.KindInvalidOTPHDFC,
	"05": apperror.KindCustomerNotEligibleForAmount,
	"06": apperror.KindBankReferenceNoInvalid,
	"07": apperror.KindMobileNoUnavailable,
	"08": apperror.KindCustomerUnavailable,
	"09": apperror.KindInvalidLoanAmount,
	"10": apperror.KindAmountNotEligibleForEMI,
	"11": apperror.KindInvalidLoanAmountRange,
	"12": apperror.KindIdentifierTypeBlank,
	"13": apperror.KindIdentifierValueBlank,
	"14": apperror.KindInvalidMCCCode,
	"15": apperror.KindBlankQuantity,
	"16": apperror.KindInvalidQuantity,
	"17": apperror.KindChannelTypeBlank,
	"18": apperror.KindChannelNameBlank,
	"19": apperror.KindChannelTypeOnline,
	"20": apperror.KindInvalidCredentials,
	"21": apperror.KindMerchantUsernameBlank,
	"22": apperror.KindMerchantPasswordBlank,
	"23": apperror.KindMerchantNameInvalid,
	"24": apperror.KindMerchantPasswordInvalid,
	"25": apperror.KindInvalidRequest,
	"26": apperror.KindUnableToProcessRequest,
	"27": apperror.KindTransactionTimeout,
})

var fallbacks = partner.Fallbacks{
	Transport:   apperror.KindGenericError,
	Translation: apperror.KindGenericError,
}
