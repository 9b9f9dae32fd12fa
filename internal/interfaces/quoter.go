package interfaces

import (
	"context"

	"okx-signal-bot/internal/types"
)

type Quoter interface {
	// Quote never fails outward: an unreachable price source yields a
	// quote with LastPrice=0 which the orchestrator gates out.
	Quote(ctx context.Context, instrument string) types.PriceQuote
}
