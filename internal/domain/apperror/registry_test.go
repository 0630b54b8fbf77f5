package apperror_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/leapneo/internal/domain/apperror"
)

func TestDefaultRegistry_Consistent(t *testing.T) {
	reg, err := apperror.NewRegistry(apperror.DefaultEntries())
	require.NoError(t, err)
	assert.Equal(t, len(apperror.DefaultEntries()), reg.Len())
	assert.Equal(t, "000", reg.SuccessCode())
}

func TestDefaultRegistry_FlatStatus(t *testing.T) {
	reg := apperror.MustDefaultRegistry()
	for _, e := range apperror.DefaultEntries() {
		got, ok := reg.Lookup(e.Kind)
		require.True(t, ok, e.Kind)
		if e.Kind == apperror.KindUnauthorized {
			assert.Equal(t, http.StatusUnauthorized, got.HTTPStatus)
			continue
		}
		assert.Equal(t, http.StatusInternalServerError, got.HTTPStatus, "kind %s", e.Kind)
		assert.NotEmpty(t, got.Description, "kind %s", e.Kind)
	}
}

func TestNewRegistry_RejectsDuplicates(t *testing.T) {
	tests := []struct {
		name    string
		entries []apperror.Entry
		wantErr string
	}{
		{
			name: "duplicate kind",
			entries: []apperror.Entry{
				{Kind: apperror.KindInternalServerError, Code: "500"},
				{Kind: apperror.KindInternalServerError, Code: "501"},
			},
			wantErr: "duplicate kind",
		},
		{
			name: "duplicate code",
			entries: []apperror.Entry{
				{Kind: apperror.KindInternalServerError, Code: "500"},
				{Kind: apperror.KindGenericError, Code: "500"},
			},
			wantErr: "used by both",
		},
		{
			name: "success code reused",
			entries: []apperror.Entry{
				{Kind: apperror.KindInternalServerError, Code: "500"},
				{Kind: apperror.KindGenericError, Code: apperror.SuccessCode},
			},
			wantErr: "success code",
		},
		{
			name:    "missing fallback",
			entries: []apperror.Entry{{Kind: apperror.KindGenericError, Code: "501"}},
			wantErr: "no INTERNAL_SERVER_ERROR",
		},
		{
			name:    "empty code",
			entries: []apperror.Entry{{Kind: apperror.KindInternalServerError}},
			wantErr: "empty kind or code",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := apperror.NewRegistry(tc.entries)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestNewRegistry_DefaultsStatusTo500(t *testing.T) {
	reg, err := apperror.NewRegistry([]apperror.Entry{{Kind: apperror.KindInternalServerError, Code: "500"}})
	require.NoError(t, err)
	e, ok := reg.Lookup(apperror.KindInternalServerError)
	require.True(t, ok)
	assert.Equal(t, http.StatusInternalServerError, e.HTTPStatus)
}

func TestRegistry_Error(t *testing.T) {
	reg := apperror.MustDefaultRegistry()
	cause := errors.New("partner said 0003")

	err := reg.Error(apperror.KindDuplicateTransactionRequest, apperror.ClassBusiness, cause)
	assert.Equal(t, apperror.KindDuplicateTransactionRequest, err.Kind())
	assert.Equal(t, "202", err.Entry.Code)
	assert.Equal(t, apperror.CategoryBusiness, err.Entry.Category)
	assert.Equal(t, apperror.ClassBusiness, err.Class)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "DUPLICATE_TRANSACTION_REQUEST")
}

func TestRegistry_ErrorUnknownKindFallsBack(t *testing.T) {
	reg := apperror.MustDefaultRegistry()

	err := reg.Error(apperror.Kind("NOT_A_KIND"), apperror.ClassTranslation, nil)
	assert.Equal(t, apperror.KindInternalServerError, err.Kind())
	assert.Equal(t, apperror.ClassTranslation, err.Class)
}

func TestRegistry_Internal(t *testing.T) {
	reg := apperror.MustDefaultRegistry()

	existing := reg.Error(apperror.KindTenureInvalid, apperror.ClassValidation, nil)
	wrapped := fmt.Errorf("usecase: %w", existing)
	assert.Same(t, existing, reg.Internal(apperror.ClassDispatch, wrapped))

	plain := reg.Internal(apperror.ClassDispatch, errors.New("boom"))
	assert.Equal(t, apperror.KindInternalServerError, plain.Kind())
	assert.Equal(t, apperror.ClassDispatch, plain.Class)
}

func TestAsAndIsKind(t *testing.T) {
	reg := apperror.MustDefaultRegistry()
	err := fmt.Errorf("wrap: %w", reg.Error(apperror.KindInvalidOTP, apperror.ClassBusiness, nil))

	appErr, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, apperror.KindInvalidOTP, appErr.Kind())
	assert.True(t, apperror.IsKind(err, apperror.KindInvalidOTP))
	assert.False(t, apperror.IsKind(err, apperror.KindOTPMismatch))

	_, ok = apperror.As(errors.New("plain"))
	assert.False(t, ok)
}

func TestClassString(t *testing.T) {
	assert.Equal(t, "validation", apperror.ClassValidation.String())
	assert.Equal(t, "dispatch", apperror.ClassDispatch.String())
	assert.Equal(t, "transport", apperror.ClassTransport.String())
	assert.Equal(t, "translation", apperror.ClassTranslation.String())
	assert.Equal(t, "business", apperror.ClassBusiness.String())
	assert.Equal(t, "unknown", apperror.Class(0).String())
}
