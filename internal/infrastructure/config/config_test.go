package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setBankURLs(t *testing.T) {
	t.Helper()
	for _, prefix := range []string{"HDFC", "ICICI", "AXIS", "SBI"} {
		t.Setenv(prefix+"_ELIGIBILITY_URL", "https://"+prefix+".partner.test/eligibility")
		t.Setenv(prefix+"_BOOK_LOAN_URL", "https://"+prefix+".partner.test/book")
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, "require", cfg.DB.SSLMode)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, time.Second, cfg.Kafka.OutboxInterval)
	assert.Equal(t, 100, cfg.Kafka.OutboxBatchSize)
	assert.Equal(t, 24*time.Hour, cfg.Redis.TTL)
	assert.Equal(t, "apikey", cfg.ICICI.APIKeyHeader)
	assert.Empty(t, cfg.AXIS.APIKeyHeader)
	assert.Equal(t, 30*time.Second, cfg.SBI.ResponseTimeout)
	assert.Equal(t, "CustomerEligibility", cfg.SBI.EligibilityAction)
	assert.Equal(t, "CustomerBlock", cfg.SBI.BookLoanAction)
	assert.False(t, cfg.Auth.Enabled())
	assert.Zero(t, cfg.RateLimitRPS)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("ICICI_RESPONSE_TIMEOUT", "5s")
	t.Setenv("AXIS_CONNECT_TIMEOUT", "3")
	t.Setenv("HDFC_USE_PROXY", "true")
	t.Setenv("PROXY_HOST", "proxy.internal")
	t.Setenv("PROXY_PORT", "3128")
	t.Setenv("AUTH_JWT_SECRET", "s3cret")
	t.Setenv("REDIS_ENABLED", "false")
	t.Setenv("KAFKA_OUTBOX_INTERVAL", "250ms")

	cfg := Load()

	assert.Equal(t, 9000, cfg.HTTPPort)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 5*time.Second, cfg.ICICI.ResponseTimeout)
	assert.Equal(t, 3*time.Second, cfg.AXIS.ConnectTimeout)
	assert.True(t, cfg.HDFC.UseProxy)
	assert.False(t, cfg.ICICI.UseProxy)
	assert.Equal(t, ProxyConfig{Host: "proxy.internal", Port: 3128}, cfg.Proxy)
	assert.True(t, cfg.Auth.Enabled())
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, 250*time.Millisecond, cfg.Kafka.OutboxInterval)
}

func TestLoad_MalformedValuesFallBack(t *testing.T) {
	t.Setenv("HTTP_PORT", "eighty")
	t.Setenv("SBI_RESPONSE_TIMEOUT", "soon")
	t.Setenv("KAFKA_ENABLED", "maybe")

	cfg := Load()

	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, 30*time.Second, cfg.SBI.ResponseTimeout)
	assert.True(t, cfg.Kafka.Enabled)
}

func TestValidate(t *testing.T) {
	t.Run("complete", func(t *testing.T) {
		setBankURLs(t)
		t.Setenv("DB_PASSWORD", "pw")

		require.NoError(t, Load().Validate())
	})

	t.Run("missing password and urls", func(t *testing.T) {
		err := Load().Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "DB_PASSWORD")
		assert.Contains(t, err.Error(), "HDFC_ELIGIBILITY_URL")
		assert.Contains(t, err.Error(), "SBI_BOOK_LOAN_URL")
	})

	t.Run("proxy flag without proxy", func(t *testing.T) {
		setBankURLs(t)
		t.Setenv("DB_PASSWORD", "pw")
		t.Setenv("SBI_USE_PROXY", "true")

		err := Load().Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "SBI_USE_PROXY")
	})
}
