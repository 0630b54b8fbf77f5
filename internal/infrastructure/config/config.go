package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all service configuration loaded from environment variables.
type Config struct {
	HTTPPort int
	// TLSCertFile and TLSKeyFile switch the listener to HTTPS when both are set.
	TLSCertFile string
	TLSKeyFile  string
	LogLevel    string
	LogFormat   string

	DB        DBConfig
	Redis     RedisConfig
	Kafka     KafkaConfig
	Telemetry TelemetryConfig
	Auth      AuthConfig
	Proxy     ProxyConfig

	// RateLimitRPS throttles the LeapNeo routes. Zero disables the limiter.
	RateLimitRPS   int
	RateLimitBurst int
	CORSOrigins    []string

	ShutdownTimeout time.Duration

	HDFC  HDFCConfig
	ICICI BankConfig
	AXIS  BankConfig
	SBI   SBIConfig
}

type DBConfig struct {
	Host           string
	Port           int
	User           string
	Password       string
	Name           string
	SSLMode        string
	MaxConns       int32
	MinConns       int32
	MigrationsPath string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
	Enabled  bool
}

type KafkaConfig struct {
	Brokers       []string
	SASLMechanism string
	SASLUsername  string
	SASLPassword  string
	WriteTimeout  time.Duration
	TLS           bool
	SASLEnabled   bool
	Enabled       bool

	// Outbox relay polling.
	OutboxInterval  time.Duration
	OutboxBatchSize int
}

type TelemetryConfig struct {
	OTLPEndpoint string
	ServiceName  string
	Insecure     bool
	Enabled      bool
}

// AuthConfig enables bearer-token auth when either key source is set.
type AuthConfig struct {
	JWTSecret        string
	JWTPublicKeyPath string
	Issuer           string
}

func (a AuthConfig) Enabled() bool { return a.JWTSecret != "" || a.JWTPublicKeyPath != "" }

// ProxyConfig is the corporate egress proxy shared by every bank that opts in.
type ProxyConfig struct {
	Host string
	Port int
}

// BankConfig is the connection block every partner has.
type BankConfig struct {
	EligibilityURL     string
	BookLoanURL        string
	APIKeyHeader       string
	APIKey             string
	TrustStorePath     string
	TrustStorePassword string
	EncryptionCertPath string
	ConnectTimeout     time.Duration
	ResponseTimeout    time.Duration
	UseProxy           bool
}

type HDFCConfig struct {
	BankConfig
	MerchantUserName string
	MerchantPassword string
	ChannelType      string
	ChannelName      string
	MCC              string
}

type SBIConfig struct {
	BankConfig
	EligibilityAction string
	BookLoanAction    string
}

// Load reads a .env file when present, then configuration from environment
// variables with defaults.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		HTTPPort:    getEnvInt("HTTP_PORT", 8080),
		TLSCertFile: getEnv("TLS_CERT_FILE", ""),
		TLSKeyFile:  getEnv("TLS_KEY_FILE", ""),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "json"),
		DB: DBConfig{
			Host:           getEnv("DB_HOST", "localhost"),
			Port:           getEnvInt("DB_PORT", 5432),
			User:           getEnv("DB_USER", "leapneo"),
			Password:       getEnv("DB_PASSWORD", ""),
			Name:           getEnv("DB_NAME", "leapneo"),
			SSLMode:        getEnv("DB_SSLMODE", "require"),
			MaxConns:       int32(getEnvInt("DB_MAX_CONNS", 20)),
			MinConns:       int32(getEnvInt("DB_MIN_CONNS", 2)),
			MigrationsPath: getEnv("DB_MIGRATIONS_PATH", "internal/infrastructure/persistence/postgres/migrations"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
			TTL:      getEnvDuration("REDIS_RECORD_TTL", 24*time.Hour),
			Enabled:  getEnvBool("REDIS_ENABLED", true),
		},
		Kafka: KafkaConfig{
			Brokers:       getEnvList("KAFKA_BROKERS", "localhost:9092"),
			SASLMechanism: getEnv("KAFKA_SASL_MECHANISM", "PLAIN"),
			SASLUsername:  getEnv("KAFKA_SASL_USERNAME", ""),
			SASLPassword:  getEnv("KAFKA_SASL_PASSWORD", ""),
			WriteTimeout:  getEnvDuration("KAFKA_WRITE_TIMEOUT", 10*time.Second),
			TLS:           getEnvBool("KAFKA_TLS", false),
			SASLEnabled:   getEnvBool("KAFKA_SASL_ENABLED", false),
			Enabled:       getEnvBool("KAFKA_ENABLED", true),

			OutboxInterval:  getEnvDuration("KAFKA_OUTBOX_INTERVAL", time.Second),
			OutboxBatchSize: getEnvInt("KAFKA_OUTBOX_BATCH_SIZE", 100),
		},
		Telemetry: TelemetryConfig{
			OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
			ServiceName:  getEnv("OTEL_SERVICE_NAME", "leapneo"),
			Insecure:     getEnvBool("OTEL_EXPORTER_OTLP_INSECURE", true),
			Enabled:      getEnvBool("OTEL_ENABLED", false),
		},
		Auth: AuthConfig{
			JWTSecret:        getEnv("AUTH_JWT_SECRET", ""),
			JWTPublicKeyPath: getEnv("AUTH_JWT_PUBLIC_KEY_PATH", ""),
			Issuer:           getEnv("AUTH_JWT_ISSUER", "leapneo"),
		},
		Proxy: ProxyConfig{
			Host: getEnv("PROXY_HOST", ""),
			Port: getEnvInt("PROXY_PORT", 0),
		},
		RateLimitRPS:    getEnvInt("RATE_LIMIT_RPS", 0),
		RateLimitBurst:  getEnvInt("RATE_LIMIT_BURST", 0),
		CORSOrigins:     getEnvList("CORS_ALLOWED_ORIGINS", ""),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 15*time.Second),
		HDFC: HDFCConfig{
			BankConfig:       loadBank("HDFC", ""),
			MerchantUserName: getEnv("HDFC_MERCHANT_USERNAME", ""),
			MerchantPassword: getEnv("HDFC_MERCHANT_PASSWORD", ""),
			ChannelType:      getEnv("HDFC_CHANNEL_TYPE", "OFFLINE"),
			ChannelName:      getEnv("HDFC_CHANNEL_NAME", "LEAPNEO"),
			MCC:              getEnv("HDFC_MCC", "5732"),
		},
		ICICI: loadBank("ICICI", "apikey"),
		AXIS:  loadBank("AXIS", ""),
		SBI: SBIConfig{
			BankConfig:        loadBank("SBI", ""),
			EligibilityAction: getEnv("SBI_ELIGIBILITY_ACTION", "CustomerEligibility"),
			BookLoanAction:    getEnv("SBI_BOOK_LOAN_ACTION", "CustomerBlock"),
		},
	}
}

func loadBank(prefix, apiKeyHeader string) BankConfig {
	return BankConfig{
		EligibilityURL:     getEnv(prefix+"_ELIGIBILITY_URL", ""),
		BookLoanURL:        getEnv(prefix+"_BOOK_LOAN_URL", ""),
		APIKeyHeader:       getEnv(prefix+"_API_KEY_HEADER", apiKeyHeader),
		APIKey:             getEnv(prefix+"_API_KEY", ""),
		TrustStorePath:     getEnv(prefix+"_TRUST_STORE_PATH", ""),
		TrustStorePassword: getEnv(prefix+"_TRUST_STORE_PASSWORD", ""),
		EncryptionCertPath: getEnv(prefix+"_ENCRYPTION_CERT_PATH", ""),
		ConnectTimeout:     getEnvDuration(prefix+"_CONNECT_TIMEOUT", 10*time.Second),
		ResponseTimeout:    getEnvDuration(prefix+"_RESPONSE_TIMEOUT", 30*time.Second),
		UseProxy:           getEnvBool(prefix+"_USE_PROXY", false),
	}
}

// Validate checks required configuration values and reports every problem found.
func (c Config) Validate() error {
	var errs []error
	if c.DB.Password == "" {
		errs = append(errs, errors.New("DB_PASSWORD environment variable is required"))
	}
	if (c.TLSCertFile == "") != (c.TLSKeyFile == "") {
		errs = append(errs, errors.New("TLS_CERT_FILE and TLS_KEY_FILE must be set together"))
	}
	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		errs = append(errs, errors.New("KAFKA_BROKERS is required when KAFKA_ENABLED is set"))
	}

	banks := map[string]BankConfig{
		"HDFC":  c.HDFC.BankConfig,
		"ICICI": c.ICICI,
		"AXIS":  c.AXIS,
		"SBI":   c.SBI.BankConfig,
	}
	for _, prefix := range []string{"HDFC", "ICICI", "AXIS", "SBI"} {
		b := banks[prefix]
		if b.EligibilityURL == "" {
			errs = append(errs, fmt.Errorf("%s_ELIGIBILITY_URL is required", prefix))
		}
		if b.BookLoanURL == "" {
			errs = append(errs, fmt.Errorf("%s_BOOK_LOAN_URL is required", prefix))
		}
		if b.UseProxy && (c.Proxy.Host == "" || c.Proxy.Port <= 0) {
			errs = append(errs, fmt.Errorf("%s_USE_PROXY requires PROXY_HOST and PROXY_PORT", prefix))
		}
	}
	return errors.Join(errs...)
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return defaultVal
}

// getEnvDuration accepts Go duration strings ("30s") or a bare number of seconds.
func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	if d, err := time.ParseDuration(val); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(val); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultVal
}

func getEnvList(key, defaultVal string) []string {
	var out []string
	for _, part := range strings.Split(getEnv(key, defaultVal), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
