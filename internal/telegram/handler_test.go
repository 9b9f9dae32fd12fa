package telegram

import (
	"context"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"okx-signal-bot/internal/store"
	"okx-signal-bot/internal/types"
)

type fakeEngine struct {
	outcome types.TradeOutcome
	runs    int
}

func (f *fakeEngine) Run(ctx context.Context) types.TradeOutcome {
	f.runs++
	return f.outcome
}

type fakeOracle struct {
	reply string
	err   error
	calls int
}

func (f *fakeOracle) Complete(ctx context.Context, prompt string) (string, error) {
	f.calls++
	return f.reply, f.err
}

type fakeNotifier struct {
	messages []string
	chatIDs  []int64
}

func (f *fakeNotifier) SendMessage(ctx context.Context, chatID int64, text string) error {
	f.messages = append(f.messages, text)
	f.chatIDs = append(f.chatIDs, chatID)
	return nil
}

func handlerConfig() *store.Config {
	cfg := &store.Config{Mode: "DEMO", Instrument: "BTC-USDT"}
	cfg.Gate.ConfidenceThreshold = 45
	cfg.Telegram.Trigger = "🪙"
	return cfg
}

func post(t *testing.T, h *Handler, body string) int {
	t.Helper()
	req := httptest.NewRequest("POST", "/webhook/token", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec.Code
}

func TestWebhookTriggerRunsCycle(t *testing.T) {
	eng := &fakeEngine{outcome: types.TradeOutcome{
		Executed: true, Direction: types.Long, Confidence: 72,
		Price: 65000, SizeBase: "0.001538", OrderID: "42",
		Mode: "DEMO", Instrument: "BTC-USDT",
	}}
	oracle := &fakeOracle{}
	notifier := &fakeNotifier{}
	h := NewHandler(handlerConfig(), eng, oracle, notifier)

	code := post(t, h, `{"message":{"chat":{"id":77},"text":"🪙"}}`)
	if code != 200 {
		t.Errorf("status = %d, want 200", code)
	}
	if eng.runs != 1 {
		t.Fatalf("engine runs = %d, want 1", eng.runs)
	}
	if oracle.calls != 0 {
		t.Error("trigger must not hit the chat oracle")
	}
	// Progress message plus the final report.
	if len(notifier.messages) != 2 {
		t.Fatalf("messages = %d, want 2", len(notifier.messages))
	}
	if !strings.Contains(notifier.messages[1], "42") {
		t.Errorf("report missing order id:\n%s", notifier.messages[1])
	}
	if notifier.chatIDs[0] != 77 {
		t.Errorf("chatID = %d, want 77", notifier.chatIDs[0])
	}
}

func TestWebhookChatPassthrough(t *testing.T) {
	eng := &fakeEngine{}
	oracle := &fakeOracle{reply: "BTC is a cryptocurrency."}
	notifier := &fakeNotifier{}
	h := NewHandler(handlerConfig(), eng, oracle, notifier)

	post(t, h, `{"message":{"chat":{"id":77},"text":"what is BTC?"}}`)
	if eng.runs != 0 {
		t.Error("plain text must not trigger a cycle")
	}
	if oracle.calls != 1 {
		t.Fatalf("oracle calls = %d, want 1", oracle.calls)
	}
	if len(notifier.messages) != 1 || notifier.messages[0] != "BTC is a cryptocurrency." {
		t.Errorf("unexpected messages: %v", notifier.messages)
	}
}

func TestWebhookChatOracleFailure(t *testing.T) {
	h := NewHandler(handlerConfig(), &fakeEngine{}, &fakeOracle{err: errors.New("down")}, &fakeNotifier{})

	notifier := &fakeNotifier{}
	h.notifier = notifier
	post(t, h, `{"message":{"chat":{"id":77},"text":"hello"}}`)

	if len(notifier.messages) != 1 || !strings.Contains(notifier.messages[0], "Sorry") {
		t.Errorf("expected apology fallback, got %v", notifier.messages)
	}
}

func TestWebhookIgnoresNonMessageUpdates(t *testing.T) {
	eng := &fakeEngine{}
	notifier := &fakeNotifier{}
	h := NewHandler(handlerConfig(), eng, &fakeOracle{}, notifier)

	if code := post(t, h, `{"edited_message":{}}`); code != 200 {
		t.Errorf("status = %d, want 200", code)
	}
	if code := post(t, h, `not json at all`); code != 200 {
		t.Errorf("status = %d, want 200 on malformed payload", code)
	}
	if eng.runs != 0 || len(notifier.messages) != 0 {
		t.Error("non-message updates must be ignored")
	}
}
