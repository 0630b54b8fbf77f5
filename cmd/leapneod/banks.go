package main

import (
	"fmt"
	"log/slog"

	"github.com/bibbank/leapneo/internal/domain/apperror"
	"github.com/bibbank/leapneo/internal/domain/port"
	"github.com/bibbank/leapneo/internal/domain/service"
	"github.com/bibbank/leapneo/internal/domain/valueobject"
	"github.com/bibbank/leapneo/internal/infrastructure/adapter/axis"
	"github.com/bibbank/leapneo/internal/infrastructure/adapter/hdfc"
	"github.com/bibbank/leapneo/internal/infrastructure/adapter/icici"
	"github.com/bibbank/leapneo/internal/infrastructure/adapter/sbi"
	"github.com/bibbank/leapneo/internal/infrastructure/client/httpclient"
	"github.com/bibbank/leapneo/internal/infrastructure/client/soapclient"
	"github.com/bibbank/leapneo/internal/infrastructure/client/transport"
	"github.com/bibbank/leapneo/internal/infrastructure/config"
	"github.com/bibbank/leapneo/internal/infrastructure/crypto"
	"github.com/bibbank/leapneo/pkg/observability"
)

type initializer interface {
	Init() error
}

func security(cfg config.Config, bank config.BankConfig) transport.SecurityConfig {
	sec := transport.SecurityConfig{
		TrustStorePath:     bank.TrustStorePath,
		TrustStorePassword: bank.TrustStorePassword,
	}
	if bank.UseProxy {
		sec.ProxyHost = cfg.Proxy.Host
		sec.ProxyPort = cfg.Proxy.Port
	}
	return sec
}

func encryptor(name string, bank config.BankConfig, logger *slog.Logger) (port.FieldEncryptor, error) {
	if bank.EncryptionCertPath == "" {
		logger.Warn("no encryption certificate configured, sensitive fields are sent in clear", "bank", name)
		return crypto.PassthroughEncryptor{}, nil
	}
	enc, err := crypto.LoadRSAEncryptor(bank.EncryptionCertPath)
	if err != nil {
		return nil, fmt.Errorf("%s encryption certificate: %w", name, err)
	}
	return enc, nil
}

func jsonClient(cfg config.Config, name string, bank config.BankConfig, logger *slog.Logger, metrics *observability.PartnerMetrics) *httpclient.Client {
	return httpclient.New(httpclient.Config{
		Name:            name,
		APIKeyHeader:    bank.APIKeyHeader,
		APIKey:          bank.APIKey,
		Security:        security(cfg, bank),
		ConnectTimeout:  bank.ConnectTimeout,
		ResponseTimeout: bank.ResponseTimeout,
	}, logger, metrics)
}

// buildBanks constructs one adapter per partner and eagerly builds every
// transport so a bad trust store stops startup.
func buildBanks(cfg config.Config, errs *apperror.Registry, logger *slog.Logger, metrics *observability.PartnerMetrics) (*service.BankRegistry, error) {
	hdfcEnc, err := encryptor("hdfc", cfg.HDFC.BankConfig, logger)
	if err != nil {
		return nil, err
	}
	iciciEnc, err := encryptor("icici", cfg.ICICI, logger)
	if err != nil {
		return nil, err
	}
	axisEnc, err := encryptor("axis", cfg.AXIS, logger)
	if err != nil {
		return nil, err
	}
	sbiEnc, err := encryptor("sbi", cfg.SBI.BankConfig, logger)
	if err != nil {
		return nil, err
	}

	hdfcClient := jsonClient(cfg, "hdfc", cfg.HDFC.BankConfig, logger, metrics)
	iciciClient := jsonClient(cfg, "icici", cfg.ICICI, logger, metrics)
	axisClient := jsonClient(cfg, "axis", cfg.AXIS, logger, metrics)
	sbiClient := soapclient.New(soapclient.Config{
		Name:            "sbi",
		Security:        security(cfg, cfg.SBI.BankConfig),
		ConnectTimeout:  cfg.SBI.ConnectTimeout,
		ResponseTimeout: cfg.SBI.ResponseTimeout,
	}, logger, metrics)

	for _, c := range []initializer{hdfcClient, iciciClient, axisClient, sbiClient} {
		if err := c.Init(); err != nil {
			return nil, fmt.Errorf("partner client: %w", err)
		}
	}

	hdfcAdapter := hdfc.New(hdfc.Config{
		EligibilityURL:   cfg.HDFC.EligibilityURL,
		BookLoanURL:      cfg.HDFC.BookLoanURL,
		MerchantUserName: cfg.HDFC.MerchantUserName,
		MerchantPassword: cfg.HDFC.MerchantPassword,
		ChannelType:      cfg.HDFC.ChannelType,
		ChannelName:      cfg.HDFC.ChannelName,
		MCC:              cfg.HDFC.MCC,
	}, hdfcClient, hdfcEnc, errs, logger)
	iciciAdapter := icici.New(icici.Config{
		EligibilityURL: cfg.ICICI.EligibilityURL,
		BookLoanURL:    cfg.ICICI.BookLoanURL,
	}, iciciClient, iciciEnc, errs, logger)
	axisAdapter := axis.New(axis.Config{
		EligibilityURL: cfg.AXIS.EligibilityURL,
		BookLoanURL:    cfg.AXIS.BookLoanURL,
	}, axisClient, axisEnc, errs, logger)
	sbiAdapter := sbi.New(sbi.Config{
		EligibilityURL:    cfg.SBI.EligibilityURL,
		BookLoanURL:       cfg.SBI.BookLoanURL,
		EligibilityAction: cfg.SBI.EligibilityAction,
		BookLoanAction:    cfg.SBI.BookLoanAction,
	}, sbiClient, sbiEnc, errs, logger)

	return service.NewBankRegistry(
		service.Register(valueobject.BankHDFC, hdfcAdapter),
		service.Register(valueobject.BankICICI, iciciAdapter),
		service.Register(valueobject.BankAXIS, axisAdapter),
		service.Register(valueobject.BankSBI, sbiAdapter),
	)
}
