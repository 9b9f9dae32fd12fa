package engineobs

import (
	"context"
	"time"

	"okx-signal-bot/internal/interfaces"
	"okx-signal-bot/internal/logger"
	"okx-signal-bot/internal/trace"
	"okx-signal-bot/internal/types"
)

type observableEngine struct {
	engine interfaces.Engine
}

var _ interfaces.Engine = (*observableEngine)(nil)

func Wrap(eng interfaces.Engine) interfaces.Engine {
	return &observableEngine{
		engine: eng,
	}
}

func (oe *observableEngine) Run(ctx context.Context) types.TradeOutcome {
	ctx, span := trace.StartSpan(ctx, "engine.Run")
	defer span.End()

	start := time.Now()

	logger.InfoSkip(ctx, 1, "Starting decision cycle")

	outcome := oe.engine.Run(ctx)

	if outcome.Executed {
		logger.InfoSkip(ctx, 1, "Decision cycle completed",
			"instrument", outcome.Instrument,
			"direction", string(outcome.Direction),
			"confidence", outcome.Confidence,
			"size", outcome.SizeBase,
			"order_id", outcome.OrderID,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	} else {
		logger.InfoSkip(ctx, 1, "Decision cycle completed without execution",
			"instrument", outcome.Instrument,
			"direction", string(outcome.Direction),
			"confidence", outcome.Confidence,
			"reason", outcome.FailureReason,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}

	return outcome
}
