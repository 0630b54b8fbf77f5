package apperror

// Kind is the symbolic name of a canonical error. Adapters select entries by Kind
// and never carry raw canonical codes.
type Kind string

// Generic and technical kinds.
const (
	KindInternalServerError     Kind = "INTERNAL_SERVER_ERROR"
	KindGenericError            Kind = "GENERIC_ERROR"
	KindTechnicalError          Kind = "TECHNICAL_ERROR"
	KindUnableToProcessRequest  Kind = "UNABLE_TO_PROCESS_REQUEST"
	KindTransactionTimeout      Kind = "TRANSACTION_TIMEOUT"
	KindResponseTimeout         Kind = "RESPONSE_TIMEOUT"
	KindEMITransactionTimeout   Kind = "EMI_TRANSACTION_TIMEOUT"
	KindInvalidResponseFromBank Kind = "ETE_INVALID_RESPONSE_FROM_BANK"
	KindUnauthorized            Kind = "UNAUTHORIZED"
)

// Inbound validation kinds.
const (
	KindPGRefNoBlank           Kind = "PG_REF_NO_BLANK"
	KindPGRefNoInvalid         Kind = "PG_REF_NO_INVALID"
	KindTenureInvalid          Kind = "TENURE_INVALID"
	KindItemCodeInvalid        Kind = "ITEM_CODE_INVALID"
	KindStoreIDInvalid         Kind = "STORE_ID_INVALID"
	KindStoreNameInvalid       Kind = "STORE_NAME_INVALID"
	KindMobileNumberBlank      Kind = "MOBILE_NUMBER_BLANK"
	KindMobileNumberInvalid    Kind = "MOBILE_NUMBER_INVALID"
	KindCardEndInvalid         Kind = "CARD_END_INVALID"
	KindPANNumberInvalid       Kind = "PAN_NUMBER_INVALID"
	KindInterestRateInvalid    Kind = "INTEREST_RATE_INVALID"
	KindBankReferenceNoInvalid Kind = "BANK_REFERENCE_NO_INVALID"
)

// Partner-reported request problems.
const (
	KindIdentifierTypeBlank       Kind = "IDENTIFIER_TYPE_BLANK"
	KindIdentifierValueBlank      Kind = "INDENTIFIER_VALUE_BLANK"
	KindInvalidMCCCode            Kind = "INVALID_MCC_CODE"
	KindBlankQuantity             Kind = "BLANK_QUANTITY"
	KindInvalidQuantity           Kind = "INVALID_QUANTITY"
	KindChannelTypeBlank          Kind = "CHANNEL_TYPE_BLANK"
	KindChannelNameBlank          Kind = "CHANNEL_NAME_BLANK"
	KindChannelTypeOnline         Kind = "CHANNEL_TYPE_ONLINE"
	KindInvalidCredentials        Kind = "INVALID_CREDENTIALS"
	KindMerchantUsernameBlank     Kind = "MERCHANT_USERNAME_BLANK"
	KindMerchantPasswordBlank     Kind = "MERCHANT_PASSWORD_BLANK"
	KindMerchantNameInvalid       Kind = "MERCHANT_NAME_INVALID"
	KindMerchantPasswordInvalid   Kind = "MERCHANT_PASSWORD_INVALID"
	KindInvalidRequest            Kind = "INVALID_REQUEST"
	KindInvalidEncryptedRequest   Kind = "INVALID_ENCRYPTED_REQUEST"
	KindInvalidJSON               Kind = "INVALID_JSON"
	KindEmptyJSONRequest          Kind = "EMPTY_JSON_REQUEST"
	KindFormatMismatch            Kind = "FORMAT_MISMATCH"
	KindMandatoryFieldMissing     Kind = "MANDATORY_FIELD_MISSING"
	KindMandatoryFieldDataMissing Kind = "MANDATORY_FIELD_DATA_MISSING"
	KindFieldLengthExceeded       Kind = "FIELD_LENGTH_EXCEEDED"
	KindInvalidLogicCode          Kind = "IRE_INVALID_LOGIC_CODE"
	KindInvalidMobileNumber       Kind = "IRE_INVALID_MOBILE_NUMBER"
	KindInvalidUniqueReference    Kind = "IRE_INVALID_UNIQUE_REFERENCE_NUMBER"
	KindInputValueMismatch        Kind = "ETE_INPUT_VALUE_MISMATCH"
)

// Business outcomes reported by partners.
const (
	KindCustomerNotEligible          Kind = "CUSTOMER_NOT_ELIGIBLE"
	KindDuplicateTransactionRequest  Kind = "DUPLICATE_TRANSACTION_REQUEST"
	KindOTPMismatch                  Kind = "OTP_MISMATCH"
	KindInvalidOTPHDFC               Kind = "INVALID_OTP_HDFC"
	KindCustomerNotEligibleForAmount Kind = "OC_CUSTOMER_NOT_ELIGIBLE_FOR_AMOUNT"
	KindMobileNoUnavailable          Kind = "MOBILE_NO_UNAVAILABLE"
	KindCustomerUnavailable          Kind = "CUSTOMER_UNAVAILABLE"
	KindInvalidLoanAmount            Kind = "INVALID_LOAN_AMOUNT"
	KindAmountNotEligibleForEMI      Kind = "AMOUNT_NOT_ELIGIBLE_FOR_EMI"
	KindInvalidLoanAmountRange       Kind = "INVALID_LOAN_AMOUNT_RANGE"
	KindInvalidTenureMonths          Kind = "INVALID_TENURE_MONTHS"
	KindCustomerDetailsNotFound      Kind = "CUSTOMER_DETAILS_NOT_FOUND"
	KindCustomerPANMismatch          Kind = "CUSTOMER_PAN_MISMATCH"
	KindInvalidAmount                Kind = "INVALID_AMOUNT"
	KindMerchantNotExist             Kind = "MERCHANT_NOT_EXIST"
	KindTransactionIDMismatch        Kind = "TRANSACTION_ID_MISMATCH"
	KindInvalidOTP                   Kind = "INVALID_OTP"
	KindPaymentProcessingFailed      Kind = "PAYMENT_PROCESSING_FAILED"
	KindBlockOfferFailed             Kind = "BLOCK_OFFER_FAILED"
	KindOfferAlreadyBlocked          Kind = "EEE_OFFER_ALREADY_BLOCKED"
	KindOfferExpired                 Kind = "EEE_OFFER_EXPIRED"
	KindAmountNotEligible            Kind = "EEE_AMOUNT_NOT_ELIGIBLE"
	KindCustomerNotEligibleForEMI    Kind = "EEE_CUSTOMER_NOT_ELIGIBLE_FOR_EMI"
	KindTransactionNotFound          Kind = "TRANSACTION_NOT_FOUND"
)
