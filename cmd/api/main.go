package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tailor-kart/internal/config"
	"tailor-kart/internal/database"
	"tailor-kart/internal/handler"
	"tailor-kart/internal/notify"
	"tailor-kart/internal/repository"
	"tailor-kart/internal/router"
	"tailor-kart/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting tailor-kart API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection pool
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	// Initialize repositories
	inventoryRepo := repository.NewInventoryRepository(pool, logger)
	promoRepo := repository.NewPromoRepository(pool, logger)
	orderRepo := repository.NewOrderRepository(pool, logger)
	measurementRepo := repository.NewMeasurementRepository(pool, logger)
	notificationRepo := repository.NewNotificationRepository(pool, logger)

	// Notifications land in the persisted inbox; OTPs only go to the log
	// until a mail provider is wired in.
	notifier := notify.NewStoreNotifier(notificationRepo, logger)
	otpSender := notify.NewLogOtpSender(logger)

	// Initialize services
	inventoryService := service.NewInventoryService(inventoryRepo, logger)
	promoService := service.NewPromoService(promoRepo, logger)
	orderService := service.NewOrderService(
		orderRepo, inventoryRepo, promoRepo, measurementRepo,
		notifier, otpSender, cfg.Pricing, logger,
	)
	measurementService := service.NewMeasurementService(measurementRepo, logger)
	notificationService := service.NewNotificationService(notificationRepo, logger)

	// Initialize HTTP handlers
	handlers := router.Handlers{
		Inventory:    handler.NewInventoryHandler(inventoryService, logger),
		Promo:        handler.NewPromoHandler(promoService, logger),
		Order:        handler.NewOrderHandler(orderService, logger),
		Measurement:  handler.NewMeasurementHandler(measurementService, logger),
		Notification: handler.NewNotificationHandler(notificationService, logger),
	}

	// Initialize router
	mux := router.New(handlers, cfg.Auth.APIKey, cfg.Auth.AdminAPIKey, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		// Create a context with timeout for shutdown
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		// Attempt graceful shutdown
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			// Force close
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}
