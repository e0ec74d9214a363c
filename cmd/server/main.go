package main

import (
	"context"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/sii-blood-analyzer/internal/api"
	"github.com/sii-blood-analyzer/internal/cache"
	"github.com/sii-blood-analyzer/internal/config"
	"github.com/sii-blood-analyzer/internal/domain"
	"github.com/sii-blood-analyzer/internal/extract"
	"github.com/sii-blood-analyzer/internal/ocr"
	"github.com/sii-blood-analyzer/internal/service"
	"github.com/sii-blood-analyzer/internal/sii"
	"github.com/sii-blood-analyzer/internal/storage"
)

func main() {
	// Load configuration
	configManager, err := config.NewManager()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Validate configuration
	if err := configManager.Validate(); err != nil {
		log.Fatalf("Configuration validation failed: %v", err)
	}

	cfg := configManager.GetConfig()
	logger := newLogger(cfg.Logging)
	logger.WithFields(logrus.Fields{
		"host": cfg.Server.Host,
		"port": cfg.Server.Port,
	}).Info("Starting SII blood analyzer server")

	// Persistence
	store, err := storage.NewStore(cfg.Database, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to open analysis store")
	}
	defer store.Close()

	if cfg.Database.Driver == "postgres" {
		runner, err := storage.NewMigrationRunner(storage.PostgresURL(cfg.Database), "migrations", logger)
		if err != nil {
			logger.WithError(err).Fatal("Failed to create migration runner")
		}
		if err := runner.Up(); err != nil {
			logger.WithError(err).Fatal("Failed to run migrations")
		}
		runner.Close()
	}

	// OCR
	textractClient, err := ocr.NewTextractClient(cfg.Textract, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to create Textract client")
	}

	// Pipeline
	processor := service.NewDocumentProcessor(
		extract.NewPDFExtractor(logger, cfg.Extraction.MinPDFTextChars),
		textractClient,
		extract.NewExtractor(logger, cfg.Extraction.SyntheticFallback),
		extract.NewValidator(cfg.Extraction.MinRequiredFields),
		logger,
	)
	analysisService := service.NewAnalysisService(
		processor,
		sii.NewCalculator(logger),
		sii.NewClassifier(logger, rand.New(rand.NewSource(time.Now().UnixNano()))),
		store,
		cache.NewResultCache(cfg.Cache, logger),
		logger,
	)

	// Create server
	server := api.NewServer(*cfg, analysisService, logger)

	// Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		logger.Info("Shutdown signal received, gracefully shutting down")
		cancel()
	}()

	// Start server
	if err := server.Start(ctx); err != nil {
		logger.WithError(err).Fatal("Server failed")
	}

	logger.Info("Server stopped")
}

func newLogger(cfg domain.LoggingConfig) *logrus.Logger {
	logger := logrus.New()

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if cfg.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return logger
}
