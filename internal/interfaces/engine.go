package interfaces

import (
	"context"

	"okx-signal-bot/internal/types"
)

type Engine interface {
	Run(ctx context.Context) types.TradeOutcome
}
