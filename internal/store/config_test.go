package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, "mode: DEMO\n"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Instrument != "BTC-USDT" {
		t.Errorf("Instrument = %s", cfg.Instrument)
	}
	if cfg.Gate.ConfidenceThreshold != 45 {
		t.Errorf("ConfidenceThreshold = %d, want 45", cfg.Gate.ConfidenceThreshold)
	}
	if cfg.Signal.DefaultConfidence != 50 {
		t.Errorf("DefaultConfidence = %d, want 50", cfg.Signal.DefaultConfidence)
	}
	if cfg.Sizing.Policy != "FRACTION" || cfg.Sizing.CapitalFraction != 0.10 || cfg.Sizing.MinNotional != 10 {
		t.Errorf("sizing defaults = %+v", cfg.Sizing)
	}
	if cfg.MarketData.Source != "REST" {
		t.Errorf("MarketData.Source = %s", cfg.MarketData.Source)
	}
	if cfg.Telegram.Trigger == "" {
		t.Error("expected default trigger")
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	cases := []struct {
		name, yaml, wantErr string
	}{
		{"bad mode", "mode: PAPER\n", "invalid mode"},
		{"bad margin mode", "mode: DEMO\nmargin_mode: isolated\n", "margin_mode"},
		{"bad instrument", "mode: DEMO\ninstrument: BTCUSDT\n", "invalid instrument"},
		{"bad policy", "mode: DEMO\nsizing:\n  policy: MARTINGALE\n", "sizing.policy"},
		{"bad fraction", "mode: DEMO\nsizing:\n  policy: FRACTION\n  capital_fraction: 1.5\n", "capital_fraction"},
		{"bad threshold", "mode: DEMO\ngate:\n  confidence_threshold: 150\n", "confidence_threshold"},
		{"bad source", "mode: DEMO\nmarket_data:\n  source: CARRIER_PIGEON\n", "market_data.source"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tc.yaml))
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("error %q does not mention %q", err, tc.wantErr)
			}
		})
	}
}

func TestLoadCredentials(t *testing.T) {
	t.Setenv("OKX_API_KEY", "k")
	t.Setenv("OKX_SECRET_KEY", "s")
	t.Setenv("OKX_PASSPHRASE", "p")
	t.Setenv("OPENAI_API_KEY", "o")
	t.Setenv("TELEGRAM_TOKEN", "t")

	cfg := &Config{}
	cfg.LLM.Provider = "OPENAI"

	creds, err := LoadCredentials(cfg)
	if err != nil {
		t.Fatalf("LoadCredentials: %v", err)
	}
	if creds.OKXSecretKey != "s" || creds.OpenAIKey != "o" {
		t.Errorf("unexpected credentials: %+v", creds)
	}
}

func TestLoadCredentialsMissingIsFatal(t *testing.T) {
	t.Setenv("OKX_API_KEY", "k")
	t.Setenv("OKX_SECRET_KEY", "")
	t.Setenv("OKX_PASSPHRASE", "p")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("CLAUDE_API_KEY", "")
	t.Setenv("TELEGRAM_TOKEN", "t")

	cfg := &Config{}
	cfg.LLM.Provider = "CLAUDE"

	_, err := LoadCredentials(cfg)
	if err == nil {
		t.Fatal("expected error for missing credentials")
	}
	for _, want := range []string{"OKX_SECRET_KEY", "CLAUDE_API_KEY"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not name %s", err, want)
		}
	}
}
