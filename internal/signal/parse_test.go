package signal

import (
	"testing"

	"okx-signal-bot/internal/types"
)

func TestParseSignal(t *testing.T) {
	cases := []struct {
		name           string
		text           string
		wantDirection  types.Direction
		wantConfidence int
		wantFallback   bool
	}{
		{"well formed short", "DIRECTION: SHORT\nCONFIANCE: 73", types.Short, 73, false},
		{"well formed long", "DIRECTION: LONG\nCONFIANCE: 72", types.Long, 72, false},
		{"lowercase labels", "direction: short\nconfiance: 61", types.Short, 61, false},
		{"extra prose around lines", "Sure! Here is my analysis.\nDIRECTION: SHORT\nCONFIANCE: 80\nGood luck!", types.Short, 80, false},
		{"empty text", "", types.Long, 50, true},
		{"garbage text", "the market looks bullish today", types.Long, 50, true},
		{"direction only", "DIRECTION: SHORT", types.Short, 50, true},
		{"confidence only", "CONFIANCE: 88", types.Long, 88, true},
		{"garbled direction does not block confidence", "DIRECTION: SIDEWAYS\nCONFIANCE: 65", types.Long, 65, true},
		{"garbled confidence does not block direction", "DIRECTION: SHORT\nCONFIANCE: high", types.Short, 50, true},
		{"boundary zero", "DIRECTION: LONG\nCONFIANCE: 0", types.Long, 0, false},
		{"boundary hundred", "DIRECTION: LONG\nCONFIANCE: 100", types.Long, 100, false},
		{"overshoot clamped", "DIRECTION: LONG\nCONFIANCE: 999", types.Long, 100, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sig := ParseSignal(tc.text, 50)
			if sig.Direction != tc.wantDirection {
				t.Errorf("Direction = %s, want %s", sig.Direction, tc.wantDirection)
			}
			if sig.Confidence != tc.wantConfidence {
				t.Errorf("Confidence = %d, want %d", sig.Confidence, tc.wantConfidence)
			}
			if sig.Fallback != tc.wantFallback {
				t.Errorf("Fallback = %v, want %v", sig.Fallback, tc.wantFallback)
			}
		})
	}
}

func TestParseSignalRationale(t *testing.T) {
	sig := ParseSignal("DIRECTION: SHORT\nCONFIANCE: 64\nRAISON: rejection at resistance", 50)
	if sig.Rationale != "rejection at resistance" {
		t.Errorf("Rationale = %q", sig.Rationale)
	}
}

func TestParseSignalConfiguredDefault(t *testing.T) {
	sig := ParseSignal("nonsense", 80)
	if sig.Confidence != 80 {
		t.Errorf("Confidence = %d, want configured default 80", sig.Confidence)
	}
	if sig.Direction != types.Long {
		t.Errorf("Direction = %s, want LONG", sig.Direction)
	}
}
