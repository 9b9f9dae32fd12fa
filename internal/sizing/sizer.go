package sizing

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

// Base asset quantities are rounded to 6 decimal places.
const basePrecision = 6

var (
	ErrInvalidPrice = errors.New("invalid price")
	ErrNoCapital    = errors.New("no capital available")
)

type Params struct {
	Policy          string  // FIXED or FRACTION
	FixedSize       float64 // base-asset quantity for FIXED
	CapitalFraction float64 // share of balance per trade for FRACTION
	MinNotional     float64 // quote-currency floor below which no trade is placed
}

// Sizer converts available capital into a base-asset order quantity.
type Sizer struct {
	p Params
}

func New(p Params) *Sizer {
	return &Sizer{p: p}
}

// Size returns the order quantity as the string the venue expects.
// FRACTION sizes notional = balance * fraction and rejects below the
// minimum-notional floor; FIXED always trades the configured quantity.
func (s *Sizer) Size(availableBalance, lastPrice float64) (string, error) {
	if s.p.Policy == "FIXED" {
		return formatBase(s.p.FixedSize), nil
	}

	if lastPrice <= 0 {
		return "", ErrInvalidPrice
	}
	if availableBalance <= 0 {
		return "", ErrNoCapital
	}

	notional := availableBalance * s.p.CapitalFraction
	if notional < s.p.MinNotional {
		return "", fmt.Errorf("notional %.2f below minimum %.2f", notional, s.p.MinNotional)
	}

	return formatBase(notional / lastPrice), nil
}

func formatBase(size float64) string {
	factor := math.Pow10(basePrecision)
	rounded := math.Round(size*factor) / factor
	return strconv.FormatFloat(rounded, 'f', -1, 64)
}
