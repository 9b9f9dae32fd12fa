package engine

import (
	"context"
	"sync"

	"okx-signal-bot/internal/interfaces"
	"okx-signal-bot/internal/logger"
	"okx-signal-bot/internal/metrics"
	"okx-signal-bot/internal/sizing"
	"okx-signal-bot/internal/store"
	"okx-signal-bot/internal/trace"
	"okx-signal-bot/internal/types"
)

// Engine runs one full decision cycle per trigger:
// quote -> signal -> confidence gate -> sizing -> order -> outcome.
// It holds no state across cycles beyond the serialization mutex.
type Engine struct {
	cfg      *store.Config
	quoter   interfaces.Quoter
	signaler interfaces.Signaler
	sizer    *sizing.Sizer
	exchange interfaces.Exchange

	// Overlapping triggers for the same instrument must not both reach
	// the venue; cycles are serialized rather than raced.
	mu sync.Mutex
}

var _ interfaces.Engine = (*Engine)(nil)

func New(cfg *store.Config, quoter interfaces.Quoter, signaler interfaces.Signaler, exchange interfaces.Exchange) *Engine {
	return &Engine{
		cfg:      cfg,
		quoter:   quoter,
		signaler: signaler,
		sizer: sizing.New(sizing.Params{
			Policy:          cfg.Sizing.Policy,
			FixedSize:       cfg.Sizing.FixedSize,
			CapitalFraction: cfg.Sizing.CapitalFraction,
			MinNotional:     cfg.Sizing.MinNotional,
		}),
		exchange: exchange,
	}
}

// Run executes one decision cycle and always returns a terminal
// TradeOutcome; every degraded path produces an explained outcome
// rather than an error.
func (e *Engine) Run(ctx context.Context) types.TradeOutcome {
	e.mu.Lock()
	defer e.mu.Unlock()

	ctx, span := trace.StartSpan(ctx, "engine.Run")
	defer span.End()

	op := logger.StartOperation(ctx, "decision_cycle", "instrument", e.cfg.Instrument)
	ctx = op.GetContext()

	outcome := types.TradeOutcome{
		Mode:       e.cfg.Mode,
		Instrument: e.cfg.Instrument,
	}

	quote := e.quoter.Quote(ctx, e.cfg.Instrument)
	outcome.Price = quote.LastPrice
	outcome.SecondaryPrice = quote.SecondaryPrice

	// The signal stage always runs, even on a degraded quote; an
	// invalid price gates the cycle out afterwards.
	sig := e.signaler.GetSignal(ctx, quote)
	outcome.Direction = sig.Direction
	outcome.Confidence = sig.Confidence
	outcome.Rationale = sig.Rationale

	if !quote.Valid() {
		return e.skip(ctx, op, outcome, "no valid price")
	}
	if sig.Confidence < e.cfg.Gate.ConfidenceThreshold {
		logger.Info(ctx, "Confidence gate rejected signal",
			"confidence", sig.Confidence,
			"threshold", e.cfg.Gate.ConfidenceThreshold,
		)
		return e.skip(ctx, op, outcome, "confidence below threshold")
	}

	var balance float64
	if e.cfg.Sizing.Policy == "FRACTION" {
		balance = e.exchange.AvailableBalance(ctx, e.cfg.QuoteAsset())
	}
	size, err := e.sizer.Size(balance, quote.LastPrice)
	if err != nil {
		return e.skip(ctx, op, outcome, err.Error())
	}
	outcome.SizeBase = size

	res := e.exchange.PlaceMarketOrder(ctx, types.OrderIntent{
		Instrument: e.cfg.Instrument,
		Side:       types.SideFor(sig.Direction),
		MarginMode: types.MarginMode(e.cfg.MarginMode),
		SizeBase:   size,
	})

	switch {
	case res.OK:
		outcome.Executed = true
		outcome.OrderID = res.OrderID
		outcome.StatusCode = res.State
		metrics.CyclesTotal.WithLabelValues("executed").Inc()
		op.End("result", "executed", "order_id", res.OrderID)
	case res.Simulated:
		outcome.FailureReason = res.RawError
		metrics.CyclesTotal.WithLabelValues("simulated").Inc()
		op.End("result", "simulated")
	default:
		outcome.StatusCode = res.StatusCode
		outcome.FailureReason = res.RawError
		metrics.CyclesTotal.WithLabelValues("rejected").Inc()
		op.End("result", "rejected", "status_code", res.StatusCode)
	}
	return outcome
}

func (e *Engine) skip(ctx context.Context, op *logger.OperationTimer, outcome types.TradeOutcome, reason string) types.TradeOutcome {
	outcome.Executed = false
	outcome.FailureReason = reason
	logger.Info(ctx, "Cycle skipped", "instrument", outcome.Instrument, "reason", reason)
	metrics.CyclesTotal.WithLabelValues("skipped").Inc()
	op.End("result", "skipped", "reason", reason)
	return outcome
}
