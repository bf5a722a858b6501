package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"accounts-server/internal/auth"
	"accounts-server/internal/middleware"
	"accounts-server/internal/server"
	"accounts-server/internal/shared/clock"
	"accounts-server/internal/shared/config"
	"accounts-server/internal/shared/cookies"
	"accounts-server/internal/shared/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := config.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	cfg := config.GlobalConfig

	appLogger := logger.Init(cfg)
	mainLogger := appLogger.With("component", "main")

	if err := run(cfg, appLogger); err != nil {
		mainLogger.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
	mainLogger.Info("Server stopped")
}

func run(cfg *config.Config, appLogger *slog.Logger) error {
	logger := appLogger.With("component", "main", "operation", "run")

	for _, warning := range cfg.Warnings() {
		logger.Warn(warning)
	}

	store, closeStore, err := server.OpenStore(cfg)
	if err != nil {
		return fmt.Errorf("failed to open account store: %w", err)
	}
	defer func() {
		if err := closeStore(); err != nil {
			logger.Error("Failed to close account store", "error", err)
		}
	}()

	hasher, err := auth.NewHasher(cfg.Auth.BcryptCost)
	if err != nil {
		return err
	}
	issuer := auth.NewTokenIssuer(cfg.Auth.JWTSecret, clock.New())
	authService := auth.NewService(store, hasher, issuer, auth.Config{TokenTTL: cfg.Auth.TokenTTL}, appLogger)

	mux := server.NewRoutes(authService, store, cookies.NewAuthCookie(cookies.SettingsFromConfig(cfg))).Setup()
	handler := middleware.Chain(mux,
		middleware.Recovery(appLogger),
		middleware.Logging(appLogger),
		middleware.CORS(cfg.Frontend),
	)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Accounts server starting",
			"port", cfg.Server.Port,
			"environment", cfg.Server.Environment,
			"store_backend", cfg.Store.Backend,
			"token_ttl", cfg.Auth.TokenTTL,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}
