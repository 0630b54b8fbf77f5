package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bibbank/leapneo/internal/application/usecase"
	"github.com/bibbank/leapneo/internal/application/validation"
	"github.com/bibbank/leapneo/internal/domain/apperror"
	"github.com/bibbank/leapneo/internal/domain/port"
	rediscache "github.com/bibbank/leapneo/internal/infrastructure/cache/redis"
	"github.com/bibbank/leapneo/internal/infrastructure/config"
	"github.com/bibbank/leapneo/internal/infrastructure/messaging"
	"github.com/bibbank/leapneo/internal/infrastructure/persistence"
	infraPG "github.com/bibbank/leapneo/internal/infrastructure/persistence/postgres"
	"github.com/bibbank/leapneo/internal/presentation/rest"
	"github.com/bibbank/leapneo/pkg/auth"
	kafkapkg "github.com/bibbank/leapneo/pkg/kafka"
	"github.com/bibbank/leapneo/pkg/observability"
	pgpkg "github.com/bibbank/leapneo/pkg/postgres"
	"github.com/bibbank/leapneo/pkg/tlsutil"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg := config.Load()

	logger := observability.InitLogger(observability.LogConfig{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Service: cfg.Telemetry.ServiceName,
	})

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logger.Info("starting leapneod", "http_port", cfg.HTTPPort)

	if cfg.Telemetry.Enabled {
		shutdown, err := observability.InitTracer(ctx, observability.TracingConfig{
			ServiceName: cfg.Telemetry.ServiceName,
			Endpoint:    cfg.Telemetry.OTLPEndpoint,
			Insecure:    cfg.Telemetry.Insecure,
		})
		if err != nil {
			logger.Warn("failed to initialize tracer, continuing without tracing", "error", err)
		} else {
			defer shutdown(context.Background())
		}
	}

	meterProvider, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{ServiceName: cfg.Telemetry.ServiceName})
	if err != nil {
		logger.Error("failed to initialize metrics", "error", err)
		os.Exit(1)
	}
	defer meterProvider.Shutdown(context.Background())

	partnerMetrics, err := observability.NewPartnerMetrics()
	if err != nil {
		logger.Warn("partner metrics unavailable", "error", err)
	}

	pgCfg := pgpkg.Config{
		Host:            cfg.DB.Host,
		Port:            cfg.DB.Port,
		User:            cfg.DB.User,
		Password:        cfg.DB.Password,
		Database:        cfg.DB.Name,
		SSLMode:         cfg.DB.SSLMode,
		ApplicationName: "leapneod",
		MaxConns:        cfg.DB.MaxConns,
		MinConns:        cfg.DB.MinConns,
	}
	pool, err := pgpkg.NewPool(ctx, pgCfg)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := pgpkg.RunMigrations(pgCfg.DSN(), cfg.DB.MigrationsPath); err != nil {
		logger.Warn("migration warning", "error", err)
	}

	errs := apperror.MustDefaultRegistry()
	repo := infraPG.NewTransactionRecordRepo(pool)

	// Optional collaborators stay untyped nil when disabled.
	var (
		cache      port.TransactionRecordCache
		publisher  port.EventPublisher
		redisCheck rest.Pinger
	)
	if cfg.Redis.Enabled {
		client, err := rediscache.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			logger.Warn("redis unavailable, transaction lookups go straight to postgres", "error", err)
		} else {
			defer client.Close()
			recordCache := rediscache.NewRecordCache(client, cfg.Redis.TTL)
			cache, redisCheck = recordCache, recordCache
		}
	}
	if cfg.Kafka.Enabled {
		producer, err := kafkapkg.NewProducer(kafkapkg.Config{
			Brokers:       cfg.Kafka.Brokers,
			WriteTimeout:  cfg.Kafka.WriteTimeout,
			TLS:           cfg.Kafka.TLS,
			SASLEnabled:   cfg.Kafka.SASLEnabled,
			SASLMechanism: cfg.Kafka.SASLMechanism,
			SASLUsername:  cfg.Kafka.SASLUsername,
			SASLPassword:  cfg.Kafka.SASLPassword,
		})
		if err != nil {
			logger.Error("failed to create kafka producer", "error", err)
			os.Exit(1)
		}
		defer producer.Close()
		publisher = messaging.NewPublisher(producer)
	}

	recorder := persistence.NewRecorder(repo, cache, publisher != nil, logger)
	if publisher != nil {
		relay := messaging.NewRelay(infraPG.NewOutboxRepo(pool), publisher, messaging.RelayConfig{
			Interval:  cfg.Kafka.OutboxInterval,
			BatchSize: cfg.Kafka.OutboxBatchSize,
		}, logger)
		go relay.Run(ctx)
	}

	banks, err := buildBanks(cfg, errs, logger, partnerMetrics)
	if err != nil {
		logger.Error("failed to build partner adapters", "error", err)
		os.Exit(1)
	}

	validator := validation.NewValidator(errs)
	handler := rest.NewHandler(
		usecase.NewCheckEligibility(validator, banks, errs, recorder, logger),
		usecase.NewBookLoan(validator, banks, errs, recorder, logger),
		usecase.NewGetTransaction(repo, cache, errs, logger),
		errs,
		logger,
	)

	routerCfg := rest.RouterConfig{
		Handler: handler,
		Health: rest.NewHealthHandler("leapneo", map[string]rest.Pinger{
			"postgres": rest.PingFunc(func(ctx context.Context) error { return pgpkg.HealthCheck(ctx, pool) }),
			"redis":    redisCheck,
		}, logger),
		Metrics:     metricsHandler,
		Errs:        errs,
		Logger:      logger,
		CORSOrigins: cfg.CORSOrigins,
	}
	if cfg.RateLimitRPS > 0 {
		routerCfg.RateLimiter = rest.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	}
	if cfg.Auth.Enabled() {
		jwtSvc, err := newJWTService(cfg.Auth)
		if err != nil {
			logger.Error("failed to initialize auth", "error", err)
			os.Exit(1)
		}
		routerCfg.Auth = jwtSvc
	}

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           rest.NewRouter(routerCfg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	useTLS := cfg.TLSCertFile != ""
	if useTLS {
		tlsCfg, err := tlsutil.ServerTLSConfig(cfg.TLSCertFile, cfg.TLSKeyFile)
		if err != nil {
			logger.Error("failed to load server certificate", "error", err)
			os.Exit(1)
		}
		httpServer.TLSConfig = tlsCfg
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server starting", "port", cfg.HTTPPort, "tls", useTLS)
		var err error
		if useTLS {
			err = httpServer.ListenAndServeTLS("", "")
		} else {
			err = httpServer.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		logger.Error("server error", "error", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Warn("http shutdown", "error", err)
	}
	logger.Info("leapneod stopped")
}

func newJWTService(cfg config.AuthConfig) (*auth.JWTService, error) {
	jwtCfg := auth.JWTConfig{Secret: cfg.JWTSecret, Issuer: cfg.Issuer}
	if cfg.JWTPublicKeyPath != "" {
		pem, err := auth.LoadKeyFromFile(cfg.JWTPublicKeyPath)
		if err != nil {
			return nil, err
		}
		jwtCfg.PublicKeyPEM = string(pem)
	}
	return auth.NewJWTService(jwtCfg)
}
