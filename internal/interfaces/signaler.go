package interfaces

import (
	"context"

	"okx-signal-bot/internal/types"
)

// Signaler produces a directional signal for a quote. Implementations
// never fail outward; degraded input yields the safe fallback signal.
type Signaler interface {
	GetSignal(ctx context.Context, quote types.PriceQuote) types.Signal
}
