package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ventaclara/internal/amqp"
	"ventaclara/internal/chat"
	"ventaclara/internal/cli"
	apphttp "ventaclara/internal/http"
	"ventaclara/internal/services"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	cli.LoadEnvFile()

	logger := cli.SetupLogger()
	cfg := cli.LoadAndValidateConfig(logger)

	store := cli.InitStore(logger, cfg)
	defer func() {
		if store.Cleanup != nil {
			if err := store.Cleanup(); err != nil {
				logger.Error("Store cleanup failed", "error", err)
			}
		}
	}()

	// AMQP is optional: without a URL the ledger runs standalone and no
	// snapshot-saved notifications are published.
	var publisher services.Publisher
	if cfg.AMQPURL != "" {
		amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", "error", err)
			os.Exit(1)
		}
		defer amqpClient.Close()
		publisher = amqpClient
		logger.Info("AMQP publishing enabled", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
	} else {
		logger.Info("AMQP disabled - no AMQP_URL provided")
	}

	ledger := services.NewLedgerService(store.Store, publisher, cfg.AppName)
	ledger.Load(context.Background())

	// The chat proxy is optional too: without an API key the endpoint
	// stays mounted but always answers with the generic error.
	var completer chat.Completer
	if c, err := chat.NewOpenAIFromEnv(cfg.OpenAIModel); err != nil {
		logger.Warn("Chat completion disabled", "error", err)
	} else {
		completer = c
		logger.Info("Chat completion enabled", "model", cfg.OpenAIModel)
	}

	srv := apphttp.NewServer(":"+cfg.Port, ledger, completer, apphttp.Options{
		CurrencyCode:        cfg.CurrencyCode,
		WeekdayNavigation:   cfg.WeekdayNavigationEnabled,
		QuantityStepButtons: cfg.QuantityStepButtonsEnabled,
	})

	// Configure server timeouts and limits
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 30 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	// Graceful shutdown handling
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
		cancel()
	}()

	logger.Info("Starting ventaclara server",
		"port", cfg.Port,
		"backend", cfg.DataBackend,
		"snapshot_key", cfg.SnapshotKey())
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully")
}
