package okxobs

import (
	"context"

	"okx-signal-bot/internal/interfaces"
	"okx-signal-bot/internal/logger"
	"okx-signal-bot/internal/trace"
	"okx-signal-bot/internal/types"
)

// observableExchange wraps an Exchange with observability (logging & tracing)
type observableExchange struct {
	ex interfaces.Exchange
}

var _ interfaces.Exchange = (*observableExchange)(nil)

// Wrap wraps an exchange with observability middleware
func Wrap(ex interfaces.Exchange) interfaces.Exchange {
	return &observableExchange{ex: ex}
}

func (oe *observableExchange) AvailableBalance(ctx context.Context, asset string) float64 {
	ctx, span := trace.StartSpan(ctx, "exchange.AvailableBalance")
	defer span.End()

	bal := oe.ex.AvailableBalance(ctx, asset)
	logger.InfoSkip(ctx, 1, "Balance fetched", "asset", asset, "available", bal)
	return bal
}

func (oe *observableExchange) PlaceMarketOrder(ctx context.Context, intent types.OrderIntent) types.ExchangeOrderResult {
	ctx, span := trace.StartSpan(ctx, "exchange.PlaceMarketOrder")
	defer span.End()

	logger.DebugSkip(ctx, 1, "Submitting market order",
		"instrument", intent.Instrument,
		"side", intent.Side,
		"size", intent.SizeBase,
		"td_mode", intent.MarginMode,
	)

	res := oe.ex.PlaceMarketOrder(ctx, intent)
	if res.OK {
		logger.Trade(ctx, intent.Instrument, string(intent.Side), intent.SizeBase, 0, res.OrderID,
			"state", res.State)
	} else {
		logger.WarnSkip(ctx, 1, "Order not executed",
			"instrument", intent.Instrument,
			"side", intent.Side,
			"status_code", res.StatusCode,
			"simulated", res.Simulated,
			"raw_error", res.RawError,
		)
	}
	return res
}
