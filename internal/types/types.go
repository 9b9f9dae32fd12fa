package types

import "time"

// Direction is the directional recommendation produced by the signal engine.
type Direction string

const (
	Long  Direction = "LONG"
	Short Direction = "SHORT"
)

// Side is the venue-level order side derived from a Direction.
type Side string

const (
	Buy  Side = "buy"
	Sell Side = "sell"
)

// SideFor maps a direction onto the order side (LONG buys, SHORT sells).
func SideFor(d Direction) Side {
	if d == Short {
		return Sell
	}
	return Buy
}

// MarginMode is the OKX tdMode for an order.
type MarginMode string

const (
	MarginCash  MarginMode = "cash"
	MarginCross MarginMode = "cross"
)

// PriceQuote is one snapshot of the instrument's reference price.
// SecondaryPrice is a best-effort conversion into the configured
// secondary currency and may be zero when conversion failed entirely.
type PriceQuote struct {
	BaseAsset      string    `json:"base_asset"`
	QuoteAsset     string    `json:"quote_asset"`
	LastPrice      float64   `json:"last_price"`
	SecondaryPrice float64   `json:"secondary_price,omitempty"`
	FetchedAt      time.Time `json:"fetched_at"`
}

// Valid reports whether the quote carries a usable price.
func (q PriceQuote) Valid() bool { return q.LastPrice > 0 }

// Signal is the parsed output of the reasoning oracle. Confidence is
// always within [0,100]; on any oracle or parse failure the engine
// substitutes the configured fallback rather than erroring.
type Signal struct {
	Direction  Direction `json:"direction"`
	Confidence int       `json:"confidence"`
	Rationale  string    `json:"rationale,omitempty"`
	RawText    string    `json:"-"`
	Fallback   bool      `json:"fallback,omitempty"`
}

// OrderIntent is a fully sized market order, built only after the
// confidence gate has passed.
type OrderIntent struct {
	Instrument string
	Side       Side
	MarginMode MarginMode
	SizeBase   string
}

// ExchangeOrderResult is the three-way outcome of an order submission:
// transport failure, venue rejection, or acceptance.
type ExchangeOrderResult struct {
	OK         bool   `json:"ok"`
	OrderID    string `json:"order_id,omitempty"`
	State      string `json:"state,omitempty"`
	StatusCode string `json:"status_code,omitempty"`
	RawError   string `json:"raw_error,omitempty"`
	Simulated  bool   `json:"simulated,omitempty"`
}

// TradeOutcome is the terminal value of one decision cycle.
type TradeOutcome struct {
	Executed       bool      `json:"executed"`
	Direction      Direction `json:"direction"`
	Confidence     int       `json:"confidence"`
	Rationale      string    `json:"rationale,omitempty"`
	Price          float64   `json:"price"`
	SecondaryPrice float64   `json:"secondary_price,omitempty"`
	SizeBase       string    `json:"size_base,omitempty"`
	OrderID        string    `json:"order_id,omitempty"`
	StatusCode     string    `json:"status_code,omitempty"`
	FailureReason  string    `json:"failure_reason,omitempty"`
	Mode           string    `json:"mode"`
	Instrument     string    `json:"instrument"`
}
