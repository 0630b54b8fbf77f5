package usecase_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/leapneo/internal/application/dto"
	"github.com/bibbank/leapneo/internal/application/usecase"
	"github.com/bibbank/leapneo/internal/application/validation"
	"github.com/bibbank/leapneo/internal/domain/apperror"
	"github.com/bibbank/leapneo/internal/domain/model"
	"github.com/bibbank/leapneo/internal/domain/valueobject"
	"github.com/bibbank/leapneo/pkg/money"
)

func eligibilityDTO() dto.EligibilityRequest {
	return dto.EligibilityRequest{
		BankID:        "HL5",
		MerchantID:    "BDMERC01",
		PGRefNo:       "PG12345678901234",
		Amount:        money.MustFromString("15000"),
		Tenure:        6,
		ItemCode:      "ITEM01",
		StoreID:       "STORE-1",
		StoreName:     "Main Street",
		TransactionID: "100000000",
		Cardless:      &dto.IdentityBlock{MobileNumber: "9000000001"},
	}
}

func newCheckEligibility(adapter *mockBankAdapter, persister *mockPersister) *usecase.CheckEligibility {
	errs := apperror.MustDefaultRegistry()
	return usecase.NewCheckEligibility(
		validation.NewValidator(errs),
		banksWith(adapter),
		errs,
		persister,
		discardLogger(),
	)
}

func TestCheckEligibility_Success(t *testing.T) {
	adapter := &mockBankAdapter{}
	persister := &mockPersister{}
	uc := newCheckEligibility(adapter, persister)

	resp, err := uc.Execute(context.Background(), eligibilityDTO())
	require.NoError(t, err)

	assert.Equal(t, "SUCCESS", resp.Status)
	assert.Equal(t, "000", resp.ErrorCode)
	assert.Equal(t, "HL5", resp.BankID)
	assert.Equal(t, "BDMERC01", resp.MerchantID)
	assert.Equal(t, "PG12345678901234", resp.PGRefNo)
	assert.Equal(t, "15000.00", resp.Amount.Fixed())

	require.Len(t, adapter.eligibilityCalls, 1)
	assert.Equal(t, "100000000", adapter.eligibilityCalls[0].TransactionID())

	require.Len(t, persister.records, 1)
	rec := persister.records[0]
	assert.Equal(t, "100000000", rec.TransactionID)
	assert.Equal(t, "HL5", rec.BankID)
	assert.Equal(t, valueobject.OperationEligibility, rec.Operation)
	assert.Equal(t, valueobject.ResultSuccess, rec.Outcome)
	assert.Equal(t, "000", rec.ErrorCode)
	assert.False(t, rec.RecordedAt.IsZero())
	assert.NotContains(t, string(rec.RequestSnapshot), "9000000001")
}

func TestCheckEligibility_ValidationFailureSkipsAdapter(t *testing.T) {
	adapter := &mockBankAdapter{}
	persister := &mockPersister{}
	uc := newCheckEligibility(adapter, persister)

	in := eligibilityDTO()
	in.Tenure = 255

	_, err := uc.Execute(context.Background(), in)
	appErr, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, apperror.KindTenureInvalid, appErr.Kind())
	assert.Equal(t, apperror.ClassValidation, appErr.Class)
	assert.Empty(t, adapter.eligibilityCalls)
	assert.Empty(t, persister.records)
}

func TestCheckEligibility_UnknownBank(t *testing.T) {
	adapter := &mockBankAdapter{}
	persister := &mockPersister{}
	uc := newCheckEligibility(adapter, persister)

	in := eligibilityDTO()
	in.BankID = "KOTAK"

	_, err := uc.Execute(context.Background(), in)
	appErr, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, apperror.KindInternalServerError, appErr.Kind())
	assert.Equal(t, apperror.ClassDispatch, appErr.Class)
	assert.Empty(t, adapter.eligibilityCalls)
	assert.Empty(t, persister.records)
}

func TestCheckEligibility_BusinessErrorIsPersisted(t *testing.T) {
	errs := apperror.MustDefaultRegistry()
	adapter := &mockBankAdapter{
		checkEligibilityFunc: func(context.Context, model.EligibilityRequest) (model.EligibilityResponse, error) {
			return model.EligibilityResponse{}, errs.Error(apperror.KindCustomerNotEligible, apperror.ClassBusiness, nil)
		},
	}
	persister := &mockPersister{}
	uc := newCheckEligibility(adapter, persister)

	_, err := uc.Execute(context.Background(), eligibilityDTO())
	require.True(t, apperror.IsKind(err, apperror.KindCustomerNotEligible))

	require.Len(t, persister.records, 1)
	rec := persister.records[0]
	assert.Equal(t, valueobject.ResultFailure, rec.Outcome)
	entry, _ := errs.Lookup(apperror.KindCustomerNotEligible)
	assert.Equal(t, entry.Code, rec.ErrorCode)

	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.ResponseSnapshot, &body))
	assert.Equal(t, entry.Code, body.ErrorCode)
	assert.Equal(t, "FAILURE", body.Status)
}

func TestCheckEligibility_TransportErrorIsNotPersisted(t *testing.T) {
	errs := apperror.MustDefaultRegistry()
	adapter := &mockBankAdapter{
		checkEligibilityFunc: func(context.Context, model.EligibilityRequest) (model.EligibilityResponse, error) {
			return model.EligibilityResponse{}, errs.Error(apperror.KindResponseTimeout, apperror.ClassTransport, errBoom)
		},
	}
	persister := &mockPersister{}
	uc := newCheckEligibility(adapter, persister)

	_, err := uc.Execute(context.Background(), eligibilityDTO())
	require.True(t, apperror.IsKind(err, apperror.KindResponseTimeout))
	assert.Empty(t, persister.records)
}

func TestCheckEligibility_RawAdapterErrorBecomesInternal(t *testing.T) {
	adapter := &mockBankAdapter{
		checkEligibilityFunc: func(context.Context, model.EligibilityRequest) (model.EligibilityResponse, error) {
			return model.EligibilityResponse{}, errBoom
		},
	}
	uc := newCheckEligibility(adapter, &mockPersister{})

	_, err := uc.Execute(context.Background(), eligibilityDTO())
	appErr, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, apperror.KindInternalServerError, appErr.Kind())
	assert.ErrorIs(t, err, errBoom)
}

func TestCheckEligibility_PersistFailureDoesNotChangeResponse(t *testing.T) {
	persister := &mockPersister{
		persistFunc: func(context.Context, model.TransactionRecord) error { return errBoom },
	}
	uc := newCheckEligibility(&mockBankAdapter{}, persister)

	resp, err := uc.Execute(context.Background(), eligibilityDTO())
	require.NoError(t, err)
	assert.Equal(t, "SUCCESS", resp.Status)
	assert.Len(t, persister.records, 1)
}

func TestCheckEligibility_NilPersister(t *testing.T) {
	errs := apperror.MustDefaultRegistry()
	uc := usecase.NewCheckEligibility(validation.NewValidator(errs), banksWith(&mockBankAdapter{}), errs, nil, discardLogger())

	resp, err := uc.Execute(context.Background(), eligibilityDTO())
	require.NoError(t, err)
	assert.Equal(t, "000", resp.ErrorCode)
}

func TestCheckEligibility_CallerCancelDoesNotAbortPartnerCall(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	adapter := &mockBankAdapter{
		checkEligibilityFunc: func(ctx context.Context, req model.EligibilityRequest) (model.EligibilityResponse, error) {
			cancel()
			if err := ctx.Err(); err != nil {
				return model.EligibilityResponse{}, err
			}
			return model.NewEligibilityResponse(req, valueobject.ResultSuccess, "ref"), nil
		},
	}
	persister := &mockPersister{
		persistFunc: func(ctx context.Context, _ model.TransactionRecord) error { return ctx.Err() },
	}
	uc := newCheckEligibility(adapter, persister)

	resp, err := uc.Execute(ctx, eligibilityDTO())
	require.NoError(t, err)
	assert.Equal(t, "000", resp.ErrorCode)
	require.Len(t, persister.records, 1)
}
