package apperror

import "net/http"

func validation(kind Kind, code, desc string) Entry {
	return Entry{Kind: kind, Code: code, Category: CategoryValidation, Description: desc, HTTPStatus: http.StatusInternalServerError}
}

func business(kind Kind, code, desc string) Entry {
	return Entry{Kind: kind, Code: code, Category: CategoryBusiness, Description: desc, HTTPStatus: http.StatusInternalServerError}
}

func technical(kind Kind, code, desc string) Entry {
	return Entry{Kind: kind, Code: code, Category: CategoryTechnical, Description: desc, HTTPStatus: http.StatusInternalServerError}
}

// DefaultEntries returns the canonical error table. Every entry is HTTP 500
// except UNAUTHORIZED, which only the auth middleware raises.
func DefaultEntries() []Entry {
	return []Entry{
		// 1xx: request validation
		validation(KindPGRefNoBlank, "101", "PG reference number is blank"),
		validation(KindPGRefNoInvalid, "102", "PG reference number is invalid"),
		validation(KindTenureInvalid, "103", "Tenure is invalid"),
		validation(KindItemCodeInvalid, "104", "Item code is invalid"),
		validation(KindStoreIDInvalid, "105", "Store id is invalid"),
		validation(KindStoreNameInvalid, "106", "Store name is invalid"),
		validation(KindMobileNumberBlank, "107", "Mobile number is blank"),
		validation(KindMobileNumberInvalid, "108", "Mobile number is invalid"),
		validation(KindCardEndInvalid, "109", "Card end is invalid"),
		validation(KindPANNumberInvalid, "110", "PAN number is invalid"),
		validation(KindInterestRateInvalid, "111", "Interest rate is invalid"),
		validation(KindBankReferenceNoInvalid, "112", "Bank reference number is invalid"),

		// 12x-15x: request problems reported by a partner
		validation(KindIdentifierTypeBlank, "120", "Identifier type is blank"),
		validation(KindIdentifierValueBlank, "121", "Identifier value is blank"),
		validation(KindInvalidMCCCode, "122", "Invalid MCC code"),
		validation(KindBlankQuantity, "123", "Quantity is blank"),
		validation(KindInvalidQuantity, "124", "Quantity is invalid"),
		validation(KindChannelTypeBlank, "125", "Channel type is blank"),
		validation(KindChannelNameBlank, "126", "Channel name is blank"),
		validation(KindChannelTypeOnline, "127", "Channel type must be online"),
		validation(KindInvalidCredentials, "128", "Invalid merchant credentials"),
		validation(KindMerchantUsernameBlank, "129", "Merchant username is blank"),
		validation(KindMerchantPasswordBlank, "130", "Merchant password is blank"),
		validation(KindMerchantNameInvalid, "131", "Merchant name is invalid"),
		validation(KindMerchantPasswordInvalid, "132", "Merchant password is invalid"),
		validation(KindInvalidRequest, "133", "Invalid request"),
		validation(KindInvalidEncryptedRequest, "134", "Invalid encrypted request"),
		validation(KindInvalidJSON, "135", "Invalid JSON"),
		validation(KindEmptyJSONRequest, "136", "Empty JSON request"),
		validation(KindFormatMismatch, "137", "Format mismatch"),
		validation(KindMandatoryFieldMissing, "138", "Mandatory field missing"),
		validation(KindMandatoryFieldDataMissing, "139", "Mandatory field data missing"),
		validation(KindFieldLengthExceeded, "140", "Field length exceeded"),
		validation(KindInvalidLogicCode, "141", "Invalid logic code"),
		validation(KindInvalidMobileNumber, "142", "Invalid mobile number"),
		validation(KindInvalidUniqueReference, "143", "Invalid unique reference number"),
		validation(KindInputValueMismatch, "144", "Input value mismatch"),

		// 2xx: business outcomes
		business(KindCustomerNotEligible, "201", "Customer is not eligible"),
		business(KindDuplicateTransactionRequest, "202", "Duplicate transaction request"),
		business(KindOTPMismatch, "203", "OTP mismatch"),
		business(KindInvalidOTPHDFC, "204", "Invalid OTP"),
		business(KindCustomerNotEligibleForAmount, "205", "Customer is not eligible for the amount"),
		business(KindMobileNoUnavailable, "206", "Mobile number is not registered with the bank"),
		business(KindCustomerUnavailable, "207", "Customer not found"),
		business(KindInvalidLoanAmount, "208", "Invalid loan amount"),
		business(KindAmountNotEligibleForEMI, "209", "Amount is not eligible for EMI"),
		business(KindInvalidLoanAmountRange, "210", "Loan amount is out of range"),
		business(KindInvalidTenureMonths, "211", "Invalid tenure months"),
		business(KindCustomerDetailsNotFound, "212", "Customer details not found"),
		business(KindCustomerPANMismatch, "213", "Customer PAN mismatch"),
		business(KindInvalidAmount, "214", "Invalid amount"),
		business(KindMerchantNotExist, "215", "Merchant does not exist"),
		business(KindTransactionIDMismatch, "216", "Transaction id mismatch"),
		business(KindInvalidOTP, "217", "Invalid OTP"),
		business(KindPaymentProcessingFailed, "218", "Payment processing failed"),
		business(KindBlockOfferFailed, "219", "Unable to block the offer"),
		business(KindOfferAlreadyBlocked, "220", "Offer is already blocked"),
		business(KindOfferExpired, "221", "Offer has expired"),
		business(KindAmountNotEligible, "222", "Amount is not eligible"),
		business(KindCustomerNotEligibleForEMI, "223", "Customer is not eligible for EMI"),
		business(KindTransactionNotFound, "224", "Transaction not found"),

		// 5xx: technical
		technical(KindInternalServerError, "500", "Internal server error"),
		technical(KindGenericError, "501", "Unable to communicate with the bank"),
		technical(KindTechnicalError, "502", "Technical error at the bank"),
		technical(KindUnableToProcessRequest, "503", "Unable to process the request"),
		technical(KindTransactionTimeout, "504", "Transaction timed out"),
		technical(KindResponseTimeout, "505", "Timed out waiting for the bank response"),
		technical(KindEMITransactionTimeout, "506", "EMI transaction timed out at the bank"),
		technical(KindInvalidResponseFromBank, "507", "Invalid response from the bank"),
		{Kind: KindUnauthorized, Code: "401", Category: CategoryValidation, Description: "Unauthorized", HTTPStatus: http.StatusUnauthorized},
	}
}

// MustDefaultRegistry builds the registry from DefaultEntries and panics if the
// table is inconsistent.
func MustDefaultRegistry() *Registry {
	r, err := NewRegistry(DefaultEntries())
	if err != nil {
		panic(err)
	}
	return r
}
