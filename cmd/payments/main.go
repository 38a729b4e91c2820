package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/thunderndwind/payment-service/internal/application"
	"github.com/thunderndwind/payment-service/internal/application/services"
	"github.com/thunderndwind/payment-service/internal/config"
	"github.com/thunderndwind/payment-service/internal/infrastructure/gateway"
	"github.com/thunderndwind/payment-service/internal/infrastructure/persistence"
	"github.com/thunderndwind/payment-service/internal/infrastructure/persistence/memory"
	"github.com/thunderndwind/payment-service/internal/infrastructure/persistence/postgres"
	"github.com/thunderndwind/payment-service/internal/interfaces/rest"
	"github.com/thunderndwind/payment-service/internal/interfaces/rest/middleware"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := cfg.Logger.NewLogger()
	slog.SetDefault(logger)

	logger.Info("starting payment service",
		"port", cfg.Server.Port,
		"storage", cfg.Storage.Driver,
		"gateway_mode", cfg.Gateway.Mode,
	)

	ctx := context.Background()

	var paymentRepo application.PaymentRepository
	switch cfg.Storage.Driver {
	case "postgres":
		db, err := persistence.Connect(ctx, &cfg.Database, logger)
		if err != nil {
			logger.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		paymentRepo = postgres.NewPaymentRepository(db.Pool)
	default:
		paymentRepo = memory.NewPaymentRepository()
	}

	var decider application.GatewayDecider
	switch cfg.Gateway.Mode {
	case "remote":
		decider = gateway.NewRetryDecider(gateway.NewHTTPDecider(cfg.Gateway), cfg.Retry)
	default:
		decider = gateway.NewSimulator(cfg.Gateway)
	}

	processService := services.NewProcessService(paymentRepo, decider, logger)
	refundService := services.NewRefundService(paymentRepo, logger)
	queryService := services.NewQueryService(paymentRepo)

	h := rest.NewPaymentHandler(processService, refundService, queryService)

	mux := http.NewServeMux()
	h.RegisterRoutes(mux)

	handler := middleware.Recovery(logger)(mux)
	handler = middleware.Logging(logger)(handler)
	handler = middleware.Timeout(cfg.Server.ReadTimeout)(handler)

	server := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info("server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server exited")
}
