package marketdata

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"okx-signal-bot/internal/logger"
)

const (
	defaultStreamURL = "wss://stream.binance.com:9443/ws"
	reconnectDelay   = 5 * time.Second
	freshWindow      = 10 * time.Second
)

// Stream maintains a live last-trade price for one instrument over the
// exchange websocket. The gateway consults it before falling back to
// the REST ticker; a price older than freshWindow is treated as stale.
type Stream struct {
	url    string
	symbol string // lowercase concatenated form, e.g. btcusdt

	mu        sync.RWMutex
	lastPrice float64
	updatedAt time.Time
}

func NewStream(instrument string) *Stream {
	base, quote := splitInstrument(instrument)
	return &Stream{
		url:    defaultStreamURL,
		symbol: strings.ToLower(base + quote),
	}
}

// LastPrice returns the most recent streamed price and whether it is
// still fresh enough to use.
func (s *Stream) LastPrice() (float64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.lastPrice <= 0 || time.Since(s.updatedAt) > freshWindow {
		return 0, false
	}
	return s.lastPrice, true
}

// Run connects and consumes trade events until ctx is cancelled,
// reconnecting after transient failures.
func (s *Stream) Run(ctx context.Context) {
	for {
		if err := s.consume(ctx); err != nil {
			if ctx.Err() != nil {
				return
			}
			logger.Warn(ctx, "Price stream disconnected, reconnecting",
				"symbol", s.symbol, "error", err, "delay", reconnectDelay)
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(reconnectDelay):
		}
	}
}

func (s *Stream) consume(ctx context.Context) error {
	endpoint := s.url + "/" + s.symbol + "@trade"
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, endpoint, nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	logger.Info(ctx, "Price stream connected", "symbol", s.symbol)

	// Unblock ReadMessage when the context is cancelled.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.Close()
		case <-done:
		}
	}()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			return err
		}

		var ev struct {
			Event string `json:"e"`
			Price string `json:"p"`
		}
		if err := json.Unmarshal(raw, &ev); err != nil || ev.Event != "trade" {
			continue
		}

		price, err := strconv.ParseFloat(ev.Price, 64)
		if err != nil || price <= 0 {
			continue
		}

		s.mu.Lock()
		s.lastPrice = price
		s.updatedAt = time.Now()
		s.mu.Unlock()
	}
}
