package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/hisab-backoffice/internal/config"
	"github.com/hisab-backoffice/internal/data/mongo"
	"github.com/hisab-backoffice/internal/data/postgres"
	"github.com/hisab-backoffice/internal/logger"
	"github.com/hisab-backoffice/internal/platform/messaging/producers"
	"github.com/hisab-backoffice/internal/platform/persistence"
	"github.com/hisab-backoffice/internal/report_server"
	"github.com/hisab-backoffice/internal/report_server/service"
)

func main() {
	// Create base context with cancellation
	appCtx, cancelAppCtx := context.WithCancel(context.Background())
	defer cancelAppCtx()

	// Initialize configuration
	cfg, err := config.LoadConfig("report_server")
	if err != nil {
		// logger is not initialized yet, so we use fmt
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.NewLogger(cfg)

	// Initialize databases with app context
	postgresDB, err := persistence.NewPostgresDB(appCtx, log, &cfg.Postgres)
	if err != nil {
		log.Error("Failed to initialize PostgreSQL", "error", err)
		os.Exit(1)
	}

	mongoDB, err := persistence.NewMongoDB(appCtx, log, &cfg.MongoDB)
	if err != nil {
		log.Error("Failed to initialize MongoDB", "error", err)
		os.Exit(1)
	}

	// Initialize Kafka producer for the posting topic
	kafkaProducer, err := producers.NewPostingReqMessageProducer(appCtx, log, &cfg.Kafka)
	if err != nil {
		log.Error("Failed to initialize posting Kafka producer", "error", err)
		os.Exit(1)
	}

	// Initialize repositories
	accountRepo := mongo.NewAccountRepository(log, mongoDB.Database())
	costCenterRepo := mongo.NewCostCenterRepository(log, mongoDB.Database())
	journalRepo := mongo.NewJournalRepository(log, mongoDB.Database())
	expenseRepo := postgres.NewExpenseRepository(log, postgresDB)
	deductionRepo := postgres.NewDeductionRepository(log, postgresDB)
	payrollRepo := postgres.NewPayrollRepository(log, postgresDB)
	invoiceRepo := postgres.NewInvoiceRepository(log, postgresDB)

	// Initialize services
	reportService, err := service.NewReportService(
		log,
		&cfg.Reporting,
		accountRepo,
		costCenterRepo,
		journalRepo,
		expenseRepo,
		deductionRepo,
		payrollRepo,
		invoiceRepo,
	)
	if err != nil {
		log.Error("Failed to initialize report service", "error", err)
		os.Exit(1)
	}
	postingService := service.NewPostingService(log, journalRepo, kafkaProducer)

	// Initialize REST server
	server := report_server.NewServer(log, cfg, reportService, postingService)
	log.Info("REST server initialized")

	// Create error channel for server errors
	errChan := make(chan error, 1)

	// Start server in goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Server.Port)
		if err := server.Start(); err != nil {
			errChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// Set up signal handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	// Wait for a shutdown signal or error
	var serverErr error
	select {
	case <-quit:
		log.Info("Shutdown signal received")
	case err := <-errChan:
		log.Error("Server error occurred", "error", err)
		serverErr = err
	}

	// Cancel the application context
	cancelAppCtx()

	// Create a shutdown context with timeout
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancelShutdown()

	// Graceful shutdown sequence
	log.Info("Starting graceful shutdown...")

	// Shutdown postgres connection pool
	postgresDB.Close()

	// Shutdown HTTP server
	if err = server.Stop(shutdownCtx); err != nil {
		log.Error("Error during server shutdown", "error", err)
	}

	if err = kafkaProducer.Close(); err != nil {
		log.Error("Error closing Kafka producer", "error", err)
	}

	if err = mongoDB.Close(shutdownCtx); err != nil {
		log.Error("Error closing MongoDB connection", "error", err)
	}

	// Final status
	if serverErr != nil {
		log.Error("HTTP server shutdown with errors", "error", serverErr)
	}
	if err != nil {
		log.Error("Server shutdown completed with errors")
	} else {
		log.Info("Server shutdown completed successfully")
	}
}
