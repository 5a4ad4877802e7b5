package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fkhayef/splitledger/internal/auth"
	"github.com/fkhayef/splitledger/internal/cache"
	"github.com/fkhayef/splitledger/internal/config"
	"github.com/fkhayef/splitledger/internal/database"
	"github.com/fkhayef/splitledger/internal/server"
	"github.com/fkhayef/splitledger/internal/settlement"
	"github.com/fkhayef/splitledger/pkg/logging"
)

// @title                       SplitLedger API
// @version                     1.0
// @description                 Shared expense ledger with balances and settle up.
// @BasePath                    /api/v1
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	if err := run(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := logging.Setup(cfg.App.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize database connection
	db, err := database.Open(ctx, cfg.DB.URL, database.Options{
		MaxOpenConns: cfg.DB.MaxOpenConns,
		MaxIdleConns: cfg.DB.MaxIdleConns,
	})
	if err != nil {
		return err
	}
	defer db.Close()

	logger.Info("connected to database", "dialect", db.Dialect())

	var balances settlement.BalanceCache = cache.Nop{}
	if cfg.Cache.RedisURL != "" {
		client, err := cache.Connect(ctx, cfg.Cache.RedisURL)
		if err != nil {
			logger.Warn("redis not available, running without balance cache", "error", err)
		} else {
			defer client.Close()
			balances = cache.NewBalances(client, cfg.Cache.BalanceTTL)
		}
	}

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	srv := &http.Server{
		Addr: cfg.Addr(),
		Handler: server.New(db, tokens, balances, server.Options{
			Logger:         logger,
			AllowedOrigins: cfg.Server.CORSAllowedOrigins,
			RequestTimeout: cfg.Server.RequestTimeout,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "app", cfg.App.Name, "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
