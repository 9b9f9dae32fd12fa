package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"okx-signal-bot/internal/logger"
	"okx-signal-bot/internal/metrics"
	"okx-signal-bot/internal/store"
	"okx-signal-bot/internal/telegram"
	"okx-signal-bot/internal/trace"
)

func must(err error) {
	if err != nil {
		log.Fatal(err)
	}
}

func main() {
	must(initializeSystem())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := store.LoadConfig("config.yaml")
	must(err)

	// Missing credentials are fatal here, never per-cycle.
	creds, err := store.LoadCredentials(cfg)
	must(err)

	exchange := initializeExchange(ctx, cfg, creds)
	oracle := initializeOracle(ctx, cfg, creds)
	quoter := initializeGateway(ctx, cfg)
	eng := initializeEngine(cfg, quoter, oracle, exchange)
	notifier := telegram.NewClient(creds.TelegramToken, "")

	mux := http.NewServeMux()
	mux.Handle("/webhook/"+creds.TelegramToken, telegram.NewHandler(cfg, eng, oracle, notifier))
	mux.Handle("/metrics", metrics.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "ok")
	})

	srv := &http.Server{Addr: cfg.Server.Addr, Handler: mux}

	go func() {
		logger.Info(ctx, "Bot started", "addr", cfg.Server.Addr, "mode", cfg.Mode, "instrument", cfg.Instrument)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc

	logger.Info(ctx, "Shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.ErrorWithErr(shutdownCtx, "Server shutdown failed", err)
	}
	if err := trace.Shutdown(shutdownCtx); err != nil {
		logger.ErrorWithErr(shutdownCtx, "Tracer shutdown failed", err)
	}
}
