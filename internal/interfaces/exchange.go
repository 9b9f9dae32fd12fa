package interfaces

import (
	"context"

	"okx-signal-bot/internal/types"
)

type Exchange interface {
	// AvailableBalance returns the tradable balance for the asset.
	// Returns 0 on any transport or parse failure so sizing degrades
	// to "no capital available" instead of aborting the cycle.
	AvailableBalance(ctx context.Context, asset string) float64
	PlaceMarketOrder(ctx context.Context, intent types.OrderIntent) types.ExchangeOrderResult
}
