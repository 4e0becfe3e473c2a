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

	"go.uber.org/zap"

	"github.com/fernandoxavier02/Agente-Comercial-Jetbrains/internal/api"
	"github.com/fernandoxavier02/Agente-Comercial-Jetbrains/internal/config"
	"github.com/fernandoxavier02/Agente-Comercial-Jetbrains/internal/core"
	"github.com/fernandoxavier02/Agente-Comercial-Jetbrains/internal/di"
)

func main() {
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
	cfg *config.Config,
	logger *zap.Logger,
	handler *api.Handler,
	llmClient core.LLMClient,
	store core.LeadStore,
) error {
	defer logger.Sync()

	addr := cfg.GetString("server.listen_address")
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler.Router(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting API server", zap.String("address", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Handle graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		logger.Error("API server failed", zap.Error(err))
		return err
	case <-sigCh:
		logger.Info("Shutting down...")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Failed to stop API server", zap.Error(err))
	}

	// Close any resources that need closing
	if closer, ok := llmClient.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			logger.Error("Failed to close LLM client", zap.Error(err))
		}
	}
	if err := store.Close(); err != nil {
		logger.Error("Failed to close lead store", zap.Error(err))
	}

	logger.Info("Shutdown complete")
	return nil
}
