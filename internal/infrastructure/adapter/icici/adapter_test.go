package icici_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/leapneo/internal/domain/apperror"
	"github.com/bibbank/leapneo/internal/domain/model"
	"github.com/bibbank/leapneo/internal/domain/valueobject"
	"github.com/bibbank/leapneo/internal/infrastructure/adapter/icici"
	"github.com/bibbank/leapneo/internal/infrastructure/client/httpclient"
	"github.com/bibbank/leapneo/internal/infrastructure/client/transport"
	"github.com/bibbank/leapneo/internal/infrastructure/crypto"
	"github.com/bibbank/leapneo/pkg/money"
)

const apiKey = "icici-test-key"

// stubPartner mimics the ICICI API: it checks the API key and answers
// errorCode 4 for a transaction id it has already seen.
type stubPartner struct {
	mu     sync.Mutex
	seen   map[string]bool
	bodies []map[string]any
}

func (s *stubPartner) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("apikey") != apiKey {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	var body map[string]any
	_ = json.NewDecoder(r.Body).Decode(&body)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.bodies = append(s.bodies, body)

	txn, _ := body["transactionId"].(string)
	if s.seen[txn] {
		_ = json.NewEncoder(w).Encode(map[string]string{"errorCode": "4", "errorMessage": "Duplicate transaction request"})
		return
	}
	s.seen[txn] = true
	_ = json.NewEncoder(w).Encode(map[string]string{
		"errorCode": "0",
		"offerId":   "OFR-" + txn,
		"bankRefNo": "ICBR-" + txn,
	})
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newAdapter(url string, cfg httpclient.Config) *icici.Adapter {
	cfg.Name = "ICICI"
	cfg.APIKeyHeader = "apikey"
	if cfg.APIKey == "" {
		cfg.APIKey = apiKey
	}
	client := httpclient.New(cfg, discardLogger(), nil)
	return icici.New(icici.Config{EligibilityURL: url + "/eligibility", BookLoanURL: url + "/block"},
		client, crypto.PassthroughEncryptor{}, apperror.MustDefaultRegistry(), discardLogger())
}

func eligibility(t *testing.T, txn string) model.EligibilityRequest {
	t.Helper()
	id, err := valueobject.NewCardSuffixIdentity("9000000001", "4321")
	require.NoError(t, err)
	req, err := model.NewEligibilityRequest(model.EligibilityParams{
		TransactionID: txn,
		BankID:        valueobject.BankICICI,
		MerchantID:    "BDMERC01",
		PGRefNo:       "PG12345678901234",
		Amount:        money.MustFromString("25000.50"),
		TenureMonths:  9,
		Identity:      id,
	})
	require.NoError(t, err)
	return req
}

func TestCheckEligibility_Success(t *testing.T) {
	stub := &stubPartner{seen: map[string]bool{}}
	srv := httptest.NewServer(stub)
	defer srv.Close()

	resp, err := newAdapter(srv.URL, httpclient.Config{}).CheckEligibility(context.Background(), eligibility(t, "200000000"))
	require.NoError(t, err)
	assert.Equal(t, "ICE", resp.BankID().String())
	assert.Equal(t, "25000.50", resp.Amount().Fixed())
	assert.Equal(t, "OFR-200000000", resp.PartnerReference())

	sent := stub.bodies[0]
	assert.Equal(t, "25000.50", sent["amount"])
	assert.Equal(t, "4321", sent["cardLast4Digits"])
	assert.Equal(t, "9000000001", sent["mobileNo"])
	assert.Nil(t, sent["pan"])
}

func TestDuplicateTransactionOnSecondCall(t *testing.T) {
	srv := httptest.NewServer(&stubPartner{seen: map[string]bool{}})
	defer srv.Close()
	adapter := newAdapter(srv.URL, httpclient.Config{})

	_, err := adapter.CheckEligibility(context.Background(), eligibility(t, "200000001"))
	require.NoError(t, err)

	_, err = adapter.CheckEligibility(context.Background(), eligibility(t, "200000001"))
	appErr, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, apperror.KindDuplicateTransactionRequest, appErr.Kind())
	assert.Equal(t, apperror.ClassBusiness, appErr.Class)
}

func TestCheckEligibility_WrongAPIKeyIsGeneric(t *testing.T) {
	srv := httptest.NewServer(&stubPartner{seen: map[string]bool{}})
	defer srv.Close()

	_, err := newAdapter(srv.URL, httpclient.Config{APIKey: "wrong"}).CheckEligibility(context.Background(), eligibility(t, "200000002"))
	assert.True(t, apperror.IsKind(err, apperror.KindGenericError), "got %v", err)
}

func TestCheckEligibility_BadTrustStoreIsGeneric(t *testing.T) {
	cfg := httpclient.Config{Security: transport.SecurityConfig{
		TrustStorePath:     filepath.Join(t.TempDir(), "icici.jks"),
		TrustStorePassword: "changeit",
	}}

	_, err := newAdapter("https://icici.invalid", cfg).CheckEligibility(context.Background(), eligibility(t, "200000003"))
	appErr, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, apperror.KindGenericError, appErr.Kind())
	assert.Equal(t, 500, appErr.Entry.HTTPStatus)
}

func TestCheckEligibility_SlowPartnerTimesOut(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(2 * time.Second):
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()

	_, err := newAdapter(srv.URL, httpclient.Config{ResponseTimeout: 50 * time.Millisecond}).
		CheckEligibility(context.Background(), eligibility(t, "200000004"))
	assert.True(t, apperror.IsKind(err, apperror.KindResponseTimeout), "got %v", err)
}

func TestCheckEligibility_PartnerCodes(t *testing.T) {
	tests := map[string]apperror.Kind{
		"3":   apperror.KindCustomerPANMismatch,
		"13":  apperror.KindEMITransactionTimeout,
		"17":  apperror.KindFormatMismatch,
		"777": apperror.KindTechnicalError,
	}
	for code, want := range tests {
		t.Run(code, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				_ = json.NewEncoder(w).Encode(map[string]string{"errorCode": code})
			}))
			defer srv.Close()

			_, err := newAdapter(srv.URL, httpclient.Config{}).CheckEligibility(context.Background(), eligibility(t, "200000005"))
			assert.True(t, apperror.IsKind(err, want), "got %v", err)
		})
	}
}

func TestBookLoan_Success(t *testing.T) {
	stub := &stubPartner{seen: map[string]bool{}}
	srv := httptest.NewServer(stub)
	defer srv.Close()

	req, err := model.NewBookLoanRequest(model.BookLoanParams{
		EligibilityParams: model.EligibilityParams{
			TransactionID: "200000006",
			BankID:        valueobject.BankICICI,
			MerchantID:    "BDMERC01",
			PGRefNo:       "PG12345678901234",
			Amount:        money.MustFromString("15000"),
			TenureMonths:  6,
			Identity:      eligibility(t, "x").Identity(),
		},
		OTP:           "5555",
		InterestRate:  decimal.RequireFromString("13.5"),
		InvoiceNumber: "INV9",
	})
	require.NoError(t, err)

	resp, err := newAdapter(srv.URL, httpclient.Config{}).BookLoan(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "ICBR-200000006", resp.BankReferenceNo())
	assert.True(t, resp.Terms().MonthlyInstallment.IsZero())
	assert.Equal(t, "13.50", stub.bodies[0]["interestRate"])
	assert.Equal(t, "5555", stub.bodies[0]["otp"])
}
