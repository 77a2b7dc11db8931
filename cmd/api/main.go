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

	"github.com/corebankhq/corebank/internal/config"
	"github.com/corebankhq/corebank/internal/handler"
	"github.com/corebankhq/corebank/internal/logging"
	"github.com/corebankhq/corebank/internal/middleware"
	"github.com/corebankhq/corebank/internal/repository"
	"github.com/corebankhq/corebank/internal/service"
	"github.com/corebankhq/corebank/internal/service/transaction"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logging.Init("corebank-api", cfg.LogLevel, cfg.AppEnv)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	db, err := repository.NewPostgresDB(ctx, cfg.DatabaseURL, repository.PoolConfig{
		MaxOpenConns:     cfg.DBMaxOpenConns,
		MaxIdleConns:     cfg.DBMaxIdleConns,
		ConnMaxLifetimeS: cfg.DBConnMaxLifetimeS,
		ConnMaxIdleTimeS: cfg.DBConnMaxIdleTimeS,
	})
	cancel()
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	accounts := repository.NewAccountRepository(db)
	transfers := repository.NewTransferRepository(db)
	logs := repository.NewTransactionLogRepository(db)
	limits := repository.NewTransferLimitRepository(db)
	users := repository.NewUserRepository(db)
	idempotency := repository.NewIdempotencyRepository(db)

	txSvc, err := transaction.NewService(accounts, transfers, logs, limits, transaction.BcryptVerifier{}, db, cfg)
	if err != nil {
		slog.Error("failed to build transaction service", "error", err)
		os.Exit(1)
	}
	acctSvc := service.NewAccountService(accounts, users, cfg.PINLength)

	authH := handler.NewAuthHandler(users, cfg.JWTSecret, cfg.JWTExpiry)
	acctH := handler.NewAccountHandler(acctSvc)
	txH := handler.NewTransactionHandler(txSvc)
	healthH := handler.NewHealthHandler(db)

	requireAuth := middleware.Auth(cfg.JWTSecret)
	idempotent := middleware.Idempotency(idempotency)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health/live", healthH.Liveness)
	mux.HandleFunc("GET /health/ready", healthH.Readiness)

	mux.Handle("POST /api/v1/auth/login", http.HandlerFunc(authH.Login))

	mux.Handle("POST /api/v1/users/{id}/accounts", requireAuth(http.HandlerFunc(acctH.Create)))
	mux.Handle("GET /api/v1/users/{id}/accounts", requireAuth(http.HandlerFunc(acctH.List)))

	mux.Handle("POST /api/v1/transfers", requireAuth(idempotent(http.HandlerFunc(txH.CreateTransfer))))
	mux.Handle("GET /api/v1/transfers/{id}", requireAuth(http.HandlerFunc(txH.GetTransfer)))
	mux.Handle("POST /api/v1/deposits", requireAuth(idempotent(http.HandlerFunc(txH.CreateDeposit))))
	mux.Handle("POST /api/v1/withdrawals", requireAuth(idempotent(http.HandlerFunc(txH.CreateWithdrawal))))
	mux.Handle("GET /api/v1/transfer-limits/{account}", requireAuth(http.HandlerFunc(txH.GetLimits)))
	mux.Handle("GET /api/v1/transaction-logs/{account}", requireAuth(http.HandlerFunc(txH.GetLogs)))

	root := middleware.Tracing(middleware.Logging(middleware.Recovery(mux)))

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           root,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		slog.Info("server started", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
