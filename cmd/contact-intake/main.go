package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/shadowine/contact-intake/internal/core"
	"github.com/shadowine/contact-intake/internal/di"
	"github.com/shadowine/contact-intake/internal/ratelimit"
	"github.com/shadowine/contact-intake/internal/server"
)

func main() {
	// Optional .env for local development; config falls back to defaults.
	_ = godotenv.Load()

	// Build the dependency injection container
	container, err := di.BuildContainer()
	if err != nil {
		fmt.Printf("Failed to build dependency container: %v\n", err)
		os.Exit(1)
	}

	// Run the application
	if err := container.Invoke(run); err != nil {
		fmt.Printf("Application error: %v\n", err)
		os.Exit(1)
	}
}

// run is the main application function that gets all dependencies injected
func run(
	logger *zap.Logger,
	srv *server.Server,
	limiter ratelimit.Limiter,
	store core.SubmissionStore,
) error {
	defer logger.Sync()

	// Start the intake server
	if err := srv.Start(); err != nil {
		logger.Fatal("Failed to start intake server", zap.Error(err))
		return err
	}

	// Handle graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	<-sigCh
	logger.Info("Shutting down...")

	// Stop the server
	if err := srv.Stop(); err != nil {
		logger.Error("Failed to stop intake server", zap.Error(err))
	}

	// Stop the limiter's background sweep or close its client
	if stopper, ok := limiter.(interface{ Stop() }); ok {
		stopper.Stop()
	}
	if closer, ok := limiter.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			logger.Error("Failed to close rate limiter", zap.Error(err))
		}
	}

	// Close the submission store if needed
	if closer, ok := store.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			logger.Error("Failed to close submission store", zap.Error(err))
		}
	}

	logger.Info("Shutdown complete")
	return nil
}
