package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/bibbank/leapneo/internal/application/dto"
	"github.com/bibbank/leapneo/internal/domain/apperror"
	"github.com/bibbank/leapneo/internal/domain/model"
	"github.com/bibbank/leapneo/internal/domain/service"
	"github.com/bibbank/leapneo/internal/domain/valueobject"
	"github.com/bibbank/leapneo/pkg/money"
)

const (
	maxTenureMonths = 60
	maxItemCodeLen  = 20
	maxStoreIDLen   = 20
	maxStoreNameLen = 255
	maxBankRefLen   = 50
)

var (
	merchantIDPattern    = regexp.MustCompile(`^[A-Za-z0-9]{1,10}$`)
	transactionIDPattern = regexp.MustCompile(`^[A-Za-z0-9]{1,40}$`)
	pgRefNoPattern       = regexp.MustCompile(`^[A-Za-z0-9]{14,20}$`)
	itemCodePattern      = regexp.MustCompile(`^[A-Za-z0-9]{0,20}$`)
	mobilePattern        = regexp.MustCompile(`^[0-9]{10}$`)
	cardEndPattern       = regexp.MustCompile(`^[0-9]{4}$`)
	panPattern           = regexp.MustCompile(`^[A-Z]{5}[0-9]{4}[A-Z]$`)
	otpPattern           = regexp.MustCompile(`^[0-9]{4,8}$`)
	invoicePattern       = regexp.MustCompile(`^[A-Za-z0-9]{1,20}$`)

	hundred = decimal.NewFromInt(100)

	// Ten billion rupees less a paisa.
	maxAmount = money.MustFromString("9999999999.99")
)

// Validator turns inbound DTOs into domain requests. Rules run in a fixed
// order and the first failure wins.
type Validator struct {
	errs *apperror.Registry
}

func NewValidator(errs *apperror.Registry) *Validator {
	return &Validator{errs: errs}
}

// Eligibility validates a check-eligibility body.
func (v *Validator) Eligibility(in dto.EligibilityRequest) (model.EligibilityRequest, error) {
	params, err := v.eligibilityParams(in)
	if err != nil {
		return model.EligibilityRequest{}, err
	}
	req, err := model.NewEligibilityRequest(params)
	if err != nil {
		return model.EligibilityRequest{}, v.fail(apperror.KindInternalServerError, err)
	}
	return req, nil
}

// BookLoan validates a book-loan body.
func (v *Validator) BookLoan(in dto.BookLoanRequest) (model.BookLoanRequest, error) {
	params, err := v.eligibilityParams(in.EligibilityRequest)
	if err != nil {
		return model.BookLoanRequest{}, err
	}

	otp := strings.TrimSpace(in.OTP.String())
	if !otpPattern.MatchString(otp) {
		return model.BookLoanRequest{}, v.fail(apperror.KindInternalServerError, errors.New("otp must be 4 to 8 digits"))
	}
	rate := in.InterestRate
	if rate.IsNegative() || rate.GreaterThan(hundred) || !rate.Equal(rate.Truncate(2)) {
		return model.BookLoanRequest{}, v.fail(apperror.KindInterestRateInvalid, fmt.Errorf("interest rate %s out of range", rate))
	}
	if !invoicePattern.MatchString(in.InvoiceNumber) {
		return model.BookLoanRequest{}, v.fail(apperror.KindInternalServerError, errors.New("invoice number must be 1 to 20 alphanumerics"))
	}
	if utf8.RuneCountInString(in.BankReferenceNo) > maxBankRefLen {
		return model.BookLoanRequest{}, v.fail(apperror.KindBankReferenceNoInvalid, errors.New("bank reference number too long"))
	}

	req, err := model.NewBookLoanRequest(model.BookLoanParams{
		EligibilityParams: params,
		OTP:               otp,
		InterestRate:      rate,
		InvoiceNumber:     in.InvoiceNumber,
		BankReferenceNo:   in.BankReferenceNo,
	})
	if err != nil {
		return model.BookLoanRequest{}, v.fail(apperror.KindInternalServerError, err)
	}
	return req, nil
}

func (v *Validator) eligibilityParams(in dto.EligibilityRequest) (model.EligibilityParams, error) {
	code := strings.TrimSpace(in.BankID)
	if code == "" {
		return model.EligibilityParams{}, v.fail(apperror.KindInternalServerError, errors.New("bankid is blank"))
	}
	bank, err := valueobject.NewBankID(code)
	if err != nil {
		// The bank enumeration is closed, so an unknown code can never dispatch.
		return model.EligibilityParams{}, v.errs.Error(apperror.KindInternalServerError, apperror.ClassDispatch,
			fmt.Errorf("%w: %q", service.ErrUnknownBank, code))
	}
	if !merchantIDPattern.MatchString(in.MerchantID) {
		return model.EligibilityParams{}, v.fail(apperror.KindInternalServerError, errors.New("merc_id must be 1 to 10 alphanumerics"))
	}
	if !transactionIDPattern.MatchString(in.TransactionID) {
		return model.EligibilityParams{}, v.fail(apperror.KindInternalServerError, errors.New("transaction_id must be 1 to 40 alphanumerics"))
	}
	if strings.TrimSpace(in.PGRefNo) == "" {
		return model.EligibilityParams{}, v.fail(apperror.KindPGRefNoBlank, errors.New("pg_ref_no is blank"))
	}
	if !pgRefNoPattern.MatchString(in.PGRefNo) {
		return model.EligibilityParams{}, v.fail(apperror.KindPGRefNoInvalid, errors.New("pg_ref_no must be 14 to 20 alphanumerics"))
	}
	if !in.Amount.IsPositive() || !in.Amount.HasValidScale() || in.Amount.GreaterThan(maxAmount) {
		return model.EligibilityParams{}, v.fail(apperror.KindInternalServerError, fmt.Errorf("amount %s is not a positive rupee amount", in.Amount))
	}
	if in.Tenure < 1 || in.Tenure > maxTenureMonths {
		return model.EligibilityParams{}, v.fail(apperror.KindTenureInvalid, fmt.Errorf("tenure %d out of range", in.Tenure))
	}
	if len(in.ItemCode) > maxItemCodeLen || !itemCodePattern.MatchString(in.ItemCode) {
		return model.EligibilityParams{}, v.fail(apperror.KindItemCodeInvalid, errors.New("item_code must be up to 20 alphanumerics"))
	}
	if utf8.RuneCountInString(in.StoreID) > maxStoreIDLen {
		return model.EligibilityParams{}, v.fail(apperror.KindStoreIDInvalid, errors.New("store_id too long"))
	}
	if utf8.RuneCountInString(in.StoreName) > maxStoreNameLen {
		return model.EligibilityParams{}, v.fail(apperror.KindStoreNameInvalid, errors.New("store_name too long"))
	}

	identity, err := v.identity(in.IdentityBlock())
	if err != nil {
		return model.EligibilityParams{}, err
	}

	return model.EligibilityParams{
		TransactionID: in.TransactionID,
		BankID:        bank,
		MerchantID:    in.MerchantID,
		PGRefNo:       in.PGRefNo,
		Amount:        in.Amount,
		TenureMonths:  in.Tenure,
		ItemCode:      in.ItemCode,
		StoreID:       in.StoreID,
		StoreName:     in.StoreName,
		Identity:      identity,
	}, nil
}

// identity picks the identifier kind: PAN when present, then card suffix, then mobile.
func (v *Validator) identity(b dto.IdentityBlock) (valueobject.Identity, error) {
	mobile := strings.TrimSpace(b.MobileNumber)
	cardEnd := strings.TrimSpace(b.CardEnd)
	pan := strings.ToUpper(strings.TrimSpace(b.PANNumber))

	if pan == "" && mobile == "" {
		return valueobject.Identity{}, v.fail(apperror.KindMobileNumberBlank, errors.New("neither pan_number nor mobile_number is present"))
	}
	if mobile != "" && !mobilePattern.MatchString(mobile) {
		return valueobject.Identity{}, v.fail(apperror.KindMobileNumberInvalid, errors.New("mobile_number must be 10 digits"))
	}
	if cardEnd != "" && !cardEndPattern.MatchString(cardEnd) {
		return valueobject.Identity{}, v.fail(apperror.KindCardEndInvalid, errors.New("card_end must be 4 digits"))
	}
	if pan != "" && !panPattern.MatchString(pan) {
		return valueobject.Identity{}, v.fail(apperror.KindPANNumberInvalid, errors.New("pan_number is malformed"))
	}

	var (
		id  valueobject.Identity
		err error
	)
	switch {
	case pan != "":
		id, err = valueobject.NewPANIdentity(pan, mobile)
	case cardEnd != "":
		id, err = valueobject.NewCardSuffixIdentity(mobile, cardEnd)
	default:
		id, err = valueobject.NewMobileIdentity(mobile)
	}
	if err != nil {
		return valueobject.Identity{}, v.fail(apperror.KindMobileNumberBlank, err)
	}
	return id, nil
}

func (v *Validator) fail(kind apperror.Kind, cause error) error {
	return v.errs.Error(kind, apperror.ClassValidation, cause)
}
