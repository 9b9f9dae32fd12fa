package signal

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"okx-signal-bot/internal/types"
)

type fakeOracle struct {
	reply string
	err   error
	calls int
}

func (f *fakeOracle) Complete(ctx context.Context, prompt string) (string, error) {
	f.calls++
	return f.reply, f.err
}

func testQuote() types.PriceQuote {
	return types.PriceQuote{
		BaseAsset:  "BTC",
		QuoteAsset: "USDT",
		LastPrice:  65000,
		FetchedAt:  time.Now(),
	}
}

func TestGetSignalParsesOracleReply(t *testing.T) {
	oracle := &fakeOracle{reply: "DIRECTION: SHORT\nCONFIANCE: 73"}
	eng := NewEngine(oracle, 50)

	sig := eng.GetSignal(context.Background(), testQuote())
	if sig.Direction != types.Short || sig.Confidence != 73 {
		t.Errorf("got %s/%d, want SHORT/73", sig.Direction, sig.Confidence)
	}
	if sig.Fallback {
		t.Error("well-formed reply should not be flagged as fallback")
	}
}

func TestGetSignalFallsBackOnOracleError(t *testing.T) {
	oracle := &fakeOracle{err: errors.New("oracle unreachable")}
	eng := NewEngine(oracle, 50)

	sig := eng.GetSignal(context.Background(), testQuote())
	if sig.Direction != types.Long || sig.Confidence != 50 {
		t.Errorf("got %s/%d, want fallback LONG/50", sig.Direction, sig.Confidence)
	}
	if !sig.Fallback {
		t.Error("oracle failure must be flagged as fallback")
	}
}

func TestGetSignalFallsBackOnMalformedReply(t *testing.T) {
	oracle := &fakeOracle{reply: "I cannot help with that."}
	eng := NewEngine(oracle, 80)

	sig := eng.GetSignal(context.Background(), testQuote())
	if sig.Direction != types.Long || sig.Confidence != 80 {
		t.Errorf("got %s/%d, want fallback LONG/80", sig.Direction, sig.Confidence)
	}
}

func TestBuildPromptRequestsStrictFormat(t *testing.T) {
	oracle := &fakeOracle{reply: "DIRECTION: LONG\nCONFIANCE: 55"}
	eng := NewEngine(oracle, 50)
	eng.GetSignal(context.Background(), testQuote())

	if oracle.calls != 1 {
		t.Fatalf("expected exactly one oracle call, got %d", oracle.calls)
	}

	prompt := buildPrompt(testQuote())
	for _, want := range []string{"DIRECTION:", "CONFIANCE:", "65000.00", "USDT"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}
}
