package okx

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"okx-signal-bot/internal/api"
	"okx-signal-bot/internal/interfaces"
	"okx-signal-bot/internal/logger"
	"okx-signal-bot/internal/metrics"
	"okx-signal-bot/internal/types"
)

const defaultBaseURL = "https://www.okx.com"

type Params struct {
	APIKey     string
	SecretKey  string
	Passphrase string
	Mode       string // DEMO or LIVE
	BaseURL    string // overridable for tests
}

// Client issues signed REST requests against the OKX v5 API.
type Client struct {
	p    Params
	http *api.Client
	now  func() time.Time
}

var _ interfaces.Exchange = (*Client)(nil)

func NewClient(p Params) *Client {
	if p.BaseURL == "" {
		p.BaseURL = defaultBaseURL
	}
	return &Client{
		p:    p,
		http: api.NewClient(api.WithBaseURL(p.BaseURL), api.WithLogging(true)),
		now:  time.Now,
	}
}

// envelope is the OKX v5 response wrapper; code "0" signals acceptance.
type envelope struct {
	Code string          `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

// doSigned executes one signed request. The signature is recomputed
// here because the timestamp is embedded in the signed material.
func (c *Client) doSigned(ctx context.Context, method, path string, body []byte) (*api.Response, error) {
	ts := Timestamp(c.now())
	req := api.NewRequest(method, path).
		WithContext(ctx).
		WithRawBody(body).
		WithHeader("OK-ACCESS-KEY", c.p.APIKey).
		WithHeader("OK-ACCESS-SIGN", Sign(c.p.SecretKey, ts, method, path, body)).
		WithHeader("OK-ACCESS-TIMESTAMP", ts).
		WithHeader("OK-ACCESS-PASSPHRASE", c.p.Passphrase).
		WithHeader("Content-Type", "application/json")

	// Routes the order to the demo environment. Without this header a
	// request hits real capital, so it is set for every non-LIVE mode.
	if c.p.Mode != "LIVE" {
		req.WithHeader("x-simulated-trading", "1")
	}

	return c.http.Do(req)
}

// AvailableBalance returns the available balance of asset, or 0 on any
// transport or parse failure so the sizer degrades to "no capital
// available" instead of crashing the cycle.
func (c *Client) AvailableBalance(ctx context.Context, asset string) float64 {
	path := "/api/v5/account/balance?ccy=" + asset

	resp, err := c.doSigned(ctx, http.MethodGet, path, nil)
	if err != nil {
		metrics.FallbacksTotal.WithLabelValues("okx_balance").Inc()
		logger.Fallback(ctx, "okx_balance", "0", "asset", asset, "error", err)
		return 0
	}

	var env envelope
	if err := resp.ParseJSON(&env); err != nil || env.Code != "0" {
		metrics.FallbacksTotal.WithLabelValues("okx_balance").Inc()
		logger.Fallback(ctx, "okx_balance", "0", "asset", asset, "code", env.Code, "msg", env.Msg)
		return 0
	}

	var accounts []struct {
		Details []struct {
			Ccy      string `json:"ccy"`
			AvailBal string `json:"availBal"`
		} `json:"details"`
	}
	if err := json.Unmarshal(env.Data, &accounts); err != nil {
		metrics.FallbacksTotal.WithLabelValues("okx_balance").Inc()
		logger.Fallback(ctx, "okx_balance", "0", "asset", asset, "error", err)
		return 0
	}

	for _, acct := range accounts {
		for _, d := range acct.Details {
			if d.Ccy != asset {
				continue
			}
			bal, err := strconv.ParseFloat(d.AvailBal, 64)
			if err != nil {
				logger.Fallback(ctx, "okx_balance", "0", "asset", asset, "availBal", d.AvailBal)
				return 0
			}
			return bal
		}
	}
	return 0
}

// orderRequest is the OKX v5 order placement body.
type orderRequest struct {
	InstID  string `json:"instId"`
	TdMode  string `json:"tdMode"`
	Side    string `json:"side"`
	OrdType string `json:"ordType"`
	Sz      string `json:"sz"`
}

// PlaceMarketOrder submits a signed market order and distinguishes
// transport failure, venue rejection and acceptance. A SHORT on spot
// cannot be represented (selling an asset not held), so it reports a
// simulated outcome instead of submitting an invalid order.
func (c *Client) PlaceMarketOrder(ctx context.Context, intent types.OrderIntent) types.ExchangeOrderResult {
	if intent.MarginMode == types.MarginCash && intent.Side == types.Sell {
		logger.Warn(ctx, "Short requested on spot venue, reporting simulated outcome",
			"instrument", intent.Instrument)
		return types.ExchangeOrderResult{
			OK:        false,
			Simulated: true,
			RawError:  "short not supported on spot",
		}
	}

	body, err := json.Marshal(orderRequest{
		InstID:  intent.Instrument,
		TdMode:  string(intent.MarginMode),
		Side:    string(intent.Side),
		OrdType: "market",
		Sz:      intent.SizeBase,
	})
	if err != nil {
		return types.ExchangeOrderResult{OK: false, RawError: err.Error()}
	}

	resp, err := c.doSigned(ctx, http.MethodPost, "/api/v5/trade/order", body)
	if err != nil {
		return types.ExchangeOrderResult{OK: false, RawError: err.Error()}
	}

	var env envelope
	if err := resp.ParseJSON(&env); err != nil {
		return types.ExchangeOrderResult{OK: false, RawError: err.Error()}
	}

	var results []struct {
		OrdID string `json:"ordId"`
		State string `json:"state"`
		SCode string `json:"sCode"`
		SMsg  string `json:"sMsg"`
	}
	_ = json.Unmarshal(env.Data, &results)

	if env.Code != "0" {
		msg := env.Msg
		code := env.Code
		// Per-order rejections carry the detail in data[0].
		if len(results) > 0 && results[0].SCode != "" && results[0].SCode != "0" {
			code = results[0].SCode
			if results[0].SMsg != "" {
				msg = results[0].SMsg
			}
		}
		return types.ExchangeOrderResult{
			OK:         false,
			StatusCode: code,
			RawError:   fmt.Sprintf("%s: %s", code, msg),
		}
	}

	if len(results) == 0 {
		return types.ExchangeOrderResult{OK: false, StatusCode: env.Code, RawError: "empty order result"}
	}

	metrics.OrdersTotal.WithLabelValues(intent.Instrument, string(intent.Side)).Inc()
	return types.ExchangeOrderResult{
		OK:         true,
		OrderID:    results[0].OrdID,
		State:      results[0].State,
		StatusCode: env.Code,
	}
}
