package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/anthonidev/terra-prime-financing/internal/application/usecase"
	"github.com/anthonidev/terra-prime-financing/internal/domain/service"
	"github.com/anthonidev/terra-prime-financing/internal/infrastructure/config"
	"github.com/anthonidev/terra-prime-financing/internal/infrastructure/kafka"
	pgRepo "github.com/anthonidev/terra-prime-financing/internal/infrastructure/persistence/postgres"
	grpcPresentation "github.com/anthonidev/terra-prime-financing/internal/presentation/grpc"
	"github.com/anthonidev/terra-prime-financing/internal/presentation/rest"
	pkgkafka "github.com/anthonidev/terra-prime-financing/pkg/kafka"
	"github.com/anthonidev/terra-prime-financing/pkg/observability"
	pkgpostgres "github.com/anthonidev/terra-prime-financing/pkg/postgres"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Load configuration.
	cfg := config.Load()
	cfg.Validate()

	// Initialize structured logger via shared observability package.
	logger := observability.InitLogger(observability.LogConfig{
		Service: cfg.ServiceName,
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
	})

	logger.Info("starting financing-service",
		"http_port", cfg.HTTPPort,
		"grpc_port", cfg.GRPCPort,
	)

	// Database connection.
	dbCtx, dbCancel := context.WithTimeout(ctx, 10*time.Second)
	defer dbCancel()

	pool, err := pkgpostgres.NewPool(dbCtx, pkgpostgres.Config{
		Host:     cfg.DB.Host,
		Port:     cfg.DB.Port,
		User:     cfg.DB.User,
		Password: cfg.DB.Password,
		Database: cfg.DB.Name,
		SSLMode:  cfg.DB.SSLMode,
	})
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	logger.Info("connected to database")

	// Run database migrations.
	migDSN := pkgpostgres.Config{
		Host:     cfg.DB.Host,
		Port:     cfg.DB.Port,
		User:     cfg.DB.User,
		Password: cfg.DB.Password,
		Database: cfg.DB.Name,
		SSLMode:  cfg.DB.SSLMode,
	}.DSN()
	if migErr := pkgpostgres.RunMigrations(migDSN, "file://internal/infrastructure/persistence/postgres/migrations"); migErr != nil {
		logger.Warn("migration warning", "error", migErr)
	}

	// Wire infrastructure adapters.
	installmentRepo := pgRepo.NewInstallmentRepo(pool)
	kafkaProducer := pkgkafka.NewProducer(pkgkafka.Config{
		Brokers: cfg.Kafka.Brokers,
	})
	defer kafkaProducer.Close()
	publisher := kafka.NewEventPublisher(kafkaProducer, cfg.Kafka.Topic, logger)
	allocator := service.NewPaymentAllocator()

	// Wire use cases.
	generateUC := usecase.NewGenerateScheduleUseCase()
	confirmUC := usecase.NewConfirmScheduleUseCase(installmentRepo, publisher)
	getUC := usecase.NewGetInstallmentsUseCase(installmentRepo)
	applyPaymentUC := usecase.NewApplyPaymentUseCase(installmentRepo, publisher, allocator)
	adjustLateFeeUC := usecase.NewAdjustLateFeeUseCase(installmentRepo, publisher)

	// gRPC server.
	handler := grpcPresentation.NewFinancingHandler(generateUC, confirmUC, getUC, applyPaymentUC, adjustLateFeeUC)
	grpcServer := grpcPresentation.NewServer(handler, logger)

	// HTTP server (health checks).
	mux := http.NewServeMux()
	healthHandler := rest.NewHealthHandler(logger)
	healthHandler.RegisterRoutes(mux)

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start servers.
	errCh := make(chan error, 2)

	go func() {
		if err := grpcServer.Serve(cfg.GRPCAddr()); err != nil {
			errCh <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	go func() {
		logger.Info("HTTP server starting", "port", cfg.HTTPPort)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// Wait for shutdown signal.
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		logger.Error("server error", "error", err)
	}

	// Graceful shutdown.
	grpcServer.GracefulStop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	logger.Info("financing-service stopped")
}
