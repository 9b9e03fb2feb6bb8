package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/Burakyci/finis-bank/internal/application/usecase"
	"github.com/Burakyci/finis-bank/internal/domain/port"
	"github.com/Burakyci/finis-bank/internal/domain/service"
	"github.com/Burakyci/finis-bank/internal/infrastructure/adapter"
	"github.com/Burakyci/finis-bank/internal/infrastructure/config"
	"github.com/Burakyci/finis-bank/internal/infrastructure/kafka"
	pgRepo "github.com/Burakyci/finis-bank/internal/infrastructure/postgres"
	"github.com/Burakyci/finis-bank/internal/presentation/rest"
	"github.com/Burakyci/finis-bank/pkg/auth"
	pkgkafka "github.com/Burakyci/finis-bank/pkg/kafka"
	"github.com/Burakyci/finis-bank/pkg/observability"
	pkgpostgres "github.com/Burakyci/finis-bank/pkg/postgres"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Local development convenience; the file is absent in containers.
	_ = godotenv.Load()

	cfg := config.Load()
	cfg.Validate()

	logger := observability.InitLogger(observability.LogConfig{
		Service: cfg.ServiceName,
		Level:   getEnv("LOG_LEVEL", "info"),
		Format:  "json",
	})
	slog.SetDefault(logger)

	logger.Info("starting finis-bank", "http_port", cfg.HTTPPort)

	_, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{
		ServiceName: cfg.ServiceName,
	})
	if err != nil {
		logger.Warn("failed to initialize metrics, continuing without them", "error", err)
	}

	// Database connection.
	dbCtx, dbCancel := context.WithTimeout(ctx, 10*time.Second)
	defer dbCancel()

	pgCfg := pkgpostgres.Config{
		Host:     cfg.DB.Host,
		Port:     cfg.DB.Port,
		User:     cfg.DB.User,
		Password: cfg.DB.Password,
		Database: cfg.DB.Name,
		SSLMode:  cfg.DB.SSLMode,
	}
	pool, err := pkgpostgres.NewPool(dbCtx, pgCfg)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	logger.Info("connected to database")

	if migErr := pkgpostgres.RunMigrations(pgCfg.DSN(), "file://internal/infrastructure/postgres/migrations"); migErr != nil {
		logger.Warn("migration warning", "error", migErr)
	}

	// Wire infrastructure adapters.
	appRepo := pgRepo.NewApplicationRepo(pool)
	activeRepo := pgRepo.NewActiveCreditRepo(pool)
	profileRepo := pgRepo.NewProfileRepo(pool)

	kafkaProducer := pkgkafka.NewProducer(pkgkafka.Config{
		Brokers: cfg.Kafka.Brokers,
	})
	defer kafkaProducer.Close()
	publisher := kafka.NewEventPublisher(kafkaProducer, cfg.Kafka.Topic, logger)

	var scoring port.ScoringClient
	if cfg.Scoring.UseStub {
		logger.Info("using stub scoring client")
		scoring = adapter.NewStubScoringClient()
	} else {
		scoring = adapter.NewHTTPScoringClient(adapter.ScoringConfig{
			BaseURL:        cfg.Scoring.BaseURL,
			TimeoutSeconds: cfg.Scoring.TimeoutSeconds,
		})
	}

	var ledger port.LedgerClient
	if cfg.Ledger.UseFake {
		logger.Info("using in-memory ledger client")
		ledger = adapter.NewFakeLedgerClient()
	} else {
		grpcLedger, err := adapter.NewGRPCLedgerClient(cfg.Ledger.Addr, cfg.Ledger.CAFile)
		if err != nil {
			logger.Error("failed to connect to ledger service", "error", err)
			os.Exit(1)
		}
		defer grpcLedger.Close()
		ledger = grpcLedger
	}

	validator := service.NewValidator()
	calculator := service.NewCalculator()

	// Wire use cases.
	quoteLoanUC := usecase.NewQuoteLoanUseCase(calculator)
	quoteDepositUC := usecase.NewQuoteDepositUseCase(validator, calculator)
	registerUC := usecase.NewRegisterCustomerUseCase(validator, service.PasswordPolicyBaseline, profileRepo, publisher, logger)
	submitUC := usecase.NewSubmitApplicationUseCase(validator, calculator, appRepo, publisher, logger)
	analyzeUC := usecase.NewAnalyzeApplicationUseCase(appRepo, profileRepo, scoring, publisher, logger)
	withdrawUC := usecase.NewWithdrawCreditUseCase(appRepo, activeRepo, ledger, publisher, logger)
	getAppUC := usecase.NewGetApplicationUseCase(appRepo)

	// JWT service (validation-only: public key preferred, secret as fallback).
	jwtCfg := auth.JWTConfig{
		Issuer: getEnv("JWT_ISSUER", "finis-bank"),
	}
	switch {
	case os.Getenv("JWT_PUBLIC_KEY") != "":
		jwtCfg.PublicKeyPEM = os.Getenv("JWT_PUBLIC_KEY")
	case os.Getenv("JWT_PUBLIC_KEY_FILE") != "":
		keyData, loadErr := auth.LoadKeyFromFile(os.Getenv("JWT_PUBLIC_KEY_FILE"))
		if loadErr != nil {
			logger.Error("failed to load JWT public key file", "error", loadErr)
			os.Exit(1)
		}
		jwtCfg.PublicKeyPEM = string(keyData)
	default:
		jwtSecret := os.Getenv("JWT_SECRET")
		if jwtSecret == "" {
			logger.Error("JWT_SECRET, JWT_PUBLIC_KEY or JWT_PUBLIC_KEY_FILE is required")
			os.Exit(1)
		}
		jwtCfg.Secret = jwtSecret
	}
	jwtSvc, err := auth.NewJWTService(jwtCfg)
	if err != nil {
		logger.Error("failed to initialize JWT service", "error", err)
		os.Exit(1)
	}

	// HTTP server.
	mux := http.NewServeMux()
	rest.NewHealthHandler(logger).RegisterRoutes(mux)
	if metricsHandler != nil {
		mux.Handle("GET /metrics", metricsHandler)
	}

	creditHandler := rest.NewCreditHandler(
		quoteLoanUC, quoteDepositUC, registerUC,
		submitUC, analyzeUC, withdrawUC, getAppUC,
		logger,
	)
	creditHandler.RegisterRoutes(mux)

	skipAuth := []string{
		"/healthz", "/readyz", "/metrics",
		"/api/v1/quotes/loan", "/api/v1/quotes/deposit",
		"/api/v1/customers",
	}
	handler := auth.Middleware(jwtSvc, skipAuth)(rest.LoggingMiddleware(logger)(mux))

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server starting", "port", cfg.HTTPPort)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		logger.Error("server error", "error", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	logger.Info("finis-bank stopped")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
