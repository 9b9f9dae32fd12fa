package main

import (
	"context"
	"fmt"

	"okx-signal-bot/internal/engine"
	"okx-signal-bot/internal/engine/engineobs"
	"okx-signal-bot/internal/exchange/okx"
	"okx-signal-bot/internal/exchange/okxobs"
	"okx-signal-bot/internal/interfaces"
	"okx-signal-bot/internal/llm/claude"
	"okx-signal-bot/internal/llm/llmobs"
	"okx-signal-bot/internal/llm/noop"
	"okx-signal-bot/internal/llm/openai"
	"okx-signal-bot/internal/logger"
	"okx-signal-bot/internal/marketdata"
	"okx-signal-bot/internal/signal"
	"okx-signal-bot/internal/store"
	"okx-signal-bot/internal/trace"

	"github.com/joho/godotenv"
)

// initializeSystem initializes environment, logger and tracer
func initializeSystem() error {
	_ = godotenv.Load()

	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	if err := trace.Init(); err != nil {
		return fmt.Errorf("failed to initialize tracer: %w", err)
	}
	return nil
}

// initializeExchange builds the signed OKX client with observability
func initializeExchange(ctx context.Context, cfg *store.Config, creds store.Credentials) interfaces.Exchange {
	ex := okx.NewClient(okx.Params{
		APIKey:     creds.OKXAPIKey,
		SecretKey:  creds.OKXSecretKey,
		Passphrase: creds.OKXPassphrase,
		Mode:       cfg.Mode,
	})

	if cfg.Mode != "LIVE" {
		logger.Warn(ctx, "Running in DEMO mode - orders carry the simulated-trading header")
	} else {
		logger.Warn(ctx, "Running in LIVE mode - orders will use real capital")
	}

	return okxobs.Wrap(ex)
}

// initializeOracle selects the reasoning oracle with observability
func initializeOracle(ctx context.Context, cfg *store.Config, creds store.Credentials) interfaces.Oracle {
	var oracle interfaces.Oracle

	switch cfg.LLM.Provider {
	case "OPENAI":
		oracle = openai.NewOracle(creds.OpenAIKey, cfg.LLM.Model)
	case "CLAUDE":
		oracle = claude.NewOracle(creds.ClaudeKey, cfg.LLM.Model, cfg.LLM.MaxTokens)
	default:
		oracle = noop.NewOracle()
		logger.Warn(ctx, "No LLM provider configured - signals will always be the safe fallback")
	}

	return llmobs.Wrap(oracle)
}

// initializeGateway builds the market data gateway; in STREAM mode a
// live websocket price feed is started and preferred over REST.
func initializeGateway(ctx context.Context, cfg *store.Config) interfaces.Quoter {
	gw := marketdata.NewGateway(marketdata.Params{
		SecondaryCurrency: cfg.MarketData.SecondaryCurrency,
		FallbackRate:      cfg.MarketData.FallbackRate,
	})

	if cfg.MarketData.Source == "STREAM" {
		stream := marketdata.NewStream(cfg.Instrument)
		go stream.Run(ctx)
		gw.WithStream(stream)
		logger.Info(ctx, "Using live websocket price stream", "instrument", cfg.Instrument)
	} else {
		logger.Info(ctx, "Using REST ticker price source", "instrument", cfg.Instrument)
	}

	return gw
}

// initializeEngine wires the decision cycle orchestrator
func initializeEngine(cfg *store.Config, quoter interfaces.Quoter, oracle interfaces.Oracle, ex interfaces.Exchange) interfaces.Engine {
	sigEngine := signal.NewEngine(oracle, cfg.Signal.DefaultConfidence)
	return engineobs.Wrap(engine.New(cfg, quoter, sigEngine, ex))
}
