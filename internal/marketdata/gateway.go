package marketdata

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"okx-signal-bot/internal/api"
	"okx-signal-bot/internal/interfaces"
	"okx-signal-bot/internal/logger"
	"okx-signal-bot/internal/metrics"
	"okx-signal-bot/internal/types"
)

const (
	defaultPriceBaseURL   = "https://api.binance.com"
	defaultConvertBaseURL = "https://api.exchangerate.host"
)

type Params struct {
	SecondaryCurrency string  // converted leg of the quote, e.g. EUR
	FallbackRate      float64 // used when the conversion endpoint fails
	PriceBaseURL      string
	ConvertBaseURL    string
}

// Gateway fetches the reference price for an instrument. It fails soft:
// an unreachable price source yields LastPrice=0, a failed secondary
// conversion falls back to FallbackRate * LastPrice.
type Gateway struct {
	p       Params
	http    *api.Client
	convert *api.Client
	stream  *Stream // optional; nil when REST-only
}

var _ interfaces.Quoter = (*Gateway)(nil)

func NewGateway(p Params) *Gateway {
	if p.PriceBaseURL == "" {
		p.PriceBaseURL = defaultPriceBaseURL
	}
	if p.ConvertBaseURL == "" {
		p.ConvertBaseURL = defaultConvertBaseURL
	}
	return &Gateway{
		p:       p,
		http:    api.NewClient(api.WithBaseURL(p.PriceBaseURL)),
		convert: api.NewClient(api.WithBaseURL(p.ConvertBaseURL)),
	}
}

// WithStream attaches a live price stream. The stream is preferred over
// REST while it holds a fresh price.
func (g *Gateway) WithStream(s *Stream) *Gateway {
	g.stream = s
	return g
}

// Quote returns the current price snapshot for the instrument
// (BASE-QUOTE form, e.g. BTC-USDT). Never fails outward.
func (g *Gateway) Quote(ctx context.Context, instrument string) types.PriceQuote {
	base, quote := splitInstrument(instrument)
	q := types.PriceQuote{BaseAsset: base, QuoteAsset: quote, FetchedAt: time.Now()}

	if g.stream != nil {
		if price, ok := g.stream.LastPrice(); ok {
			q.LastPrice = price
			q.SecondaryPrice = g.secondaryPrice(ctx, price)
			return q
		}
		logger.Debug(ctx, "Stream price stale, falling back to REST", "instrument", instrument)
	}

	q.LastPrice = g.restPrice(ctx, base+quote)
	if q.LastPrice > 0 {
		q.SecondaryPrice = g.secondaryPrice(ctx, q.LastPrice)
	}
	return q
}

// restPrice queries the ticker endpoint. The response is either the
// compact {symbol, price} form or a full 24h ticker with lastPrice;
// both are accepted.
func (g *Gateway) restPrice(ctx context.Context, symbol string) float64 {
	resp, err := g.http.GET(ctx, "/api/v3/ticker/price?symbol="+symbol)
	if err != nil {
		metrics.FallbacksTotal.WithLabelValues("price_source").Inc()
		logger.Fallback(ctx, "price_source", "0", "symbol", symbol, "error", err)
		return 0
	}

	var ticker struct {
		Price     string `json:"price"`
		LastPrice string `json:"lastPrice"`
		HighPrice string `json:"highPrice"`
		LowPrice  string `json:"lowPrice"`
		Volume    string `json:"volume"`
	}
	if err := resp.ParseJSON(&ticker); err != nil {
		metrics.FallbacksTotal.WithLabelValues("price_source").Inc()
		logger.Fallback(ctx, "price_source", "0", "symbol", symbol, "error", err)
		return 0
	}

	raw := ticker.Price
	if raw == "" {
		raw = ticker.LastPrice
	}
	price, err := strconv.ParseFloat(raw, 64)
	if err != nil || price <= 0 {
		metrics.FallbacksTotal.WithLabelValues("price_source").Inc()
		logger.Fallback(ctx, "price_source", "0", "symbol", symbol, "raw", raw)
		return 0
	}
	return price
}

// secondaryPrice converts the quote-currency price into the secondary
// currency. Best effort: on failure it approximates with the configured
// fixed rate rather than failing the whole quote.
func (g *Gateway) secondaryPrice(ctx context.Context, price float64) float64 {
	if g.p.SecondaryCurrency == "" {
		return 0
	}

	url := fmt.Sprintf("/convert?from=USD&to=%s&amount=%.2f", g.p.SecondaryCurrency, price)
	resp, err := g.convert.GET(ctx, url)
	if err == nil {
		var conv struct {
			Result float64 `json:"result"`
		}
		if err := resp.ParseJSON(&conv); err == nil && conv.Result > 0 {
			return conv.Result
		}
	}

	metrics.FallbacksTotal.WithLabelValues("currency_conversion").Inc()
	logger.Fallback(ctx, "currency_conversion", "fixed_rate",
		"currency", g.p.SecondaryCurrency, "rate", g.p.FallbackRate)
	return price * g.p.FallbackRate
}

func splitInstrument(instrument string) (base, quote string) {
	parts := strings.SplitN(instrument, "-", 2)
	if len(parts) < 2 {
		return instrument, ""
	}
	return parts[0], parts[1]
}
