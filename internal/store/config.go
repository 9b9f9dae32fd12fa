package store

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Mode       string `yaml:"mode"`        // DEMO or LIVE
	Instrument string `yaml:"instrument"`  // e.g. BTC-USDT
	MarginMode string `yaml:"margin_mode"` // cash or cross

	Gate struct {
		ConfidenceThreshold int `yaml:"confidence_threshold"`
	} `yaml:"gate"`

	Signal struct {
		DefaultConfidence int `yaml:"default_confidence"`
	} `yaml:"signal"`

	Sizing struct {
		Policy          string  `yaml:"policy"` // FIXED or FRACTION
		FixedSize       float64 `yaml:"fixed_size"`
		CapitalFraction float64 `yaml:"capital_fraction"`
		MinNotional     float64 `yaml:"min_notional"`
	} `yaml:"sizing"`

	LLM struct {
		Provider  string `yaml:"provider"` // OPENAI, CLAUDE or NOOP
		Model     string `yaml:"model"`
		MaxTokens int    `yaml:"max_tokens"`
	} `yaml:"llm"`

	MarketData struct {
		Source            string  `yaml:"source"` // REST or STREAM
		SecondaryCurrency string  `yaml:"secondary_currency"`
		FallbackRate      float64 `yaml:"fallback_rate"`
	} `yaml:"market_data"`

	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`

	Telegram struct {
		Trigger string `yaml:"trigger"`
	} `yaml:"telegram"`
}

// Credentials holds process-wide secrets read once from the environment
// at startup. Business logic receives them by value and never touches
// the environment itself.
type Credentials struct {
	OKXAPIKey     string
	OKXSecretKey  string
	OKXPassphrase string
	OpenAIKey     string
	ClaudeKey     string
	TelegramToken string
}

func (c *Config) Validate() error {
	if c.Mode != "DEMO" && c.Mode != "LIVE" {
		return fmt.Errorf("invalid mode '%s': must be 'DEMO' or 'LIVE'", c.Mode)
	}
	if c.Instrument == "" || !strings.Contains(c.Instrument, "-") {
		return fmt.Errorf("invalid instrument '%s': expected BASE-QUOTE form", c.Instrument)
	}
	if c.MarginMode != "cash" && c.MarginMode != "cross" {
		return fmt.Errorf("margin_mode must be 'cash' or 'cross', got '%s'", c.MarginMode)
	}
	if c.Gate.ConfidenceThreshold < 0 || c.Gate.ConfidenceThreshold > 100 {
		return fmt.Errorf("gate.confidence_threshold must be 0-100, got %d", c.Gate.ConfidenceThreshold)
	}
	if c.Signal.DefaultConfidence < 0 || c.Signal.DefaultConfidence > 100 {
		return fmt.Errorf("signal.default_confidence must be 0-100, got %d", c.Signal.DefaultConfidence)
	}
	if c.Sizing.Policy != "FIXED" && c.Sizing.Policy != "FRACTION" {
		return fmt.Errorf("sizing.policy must be 'FIXED' or 'FRACTION', got '%s'", c.Sizing.Policy)
	}
	if c.Sizing.Policy == "FIXED" && c.Sizing.FixedSize <= 0 {
		return errors.New("sizing.fixed_size must be positive for FIXED policy")
	}
	if c.Sizing.Policy == "FRACTION" && (c.Sizing.CapitalFraction <= 0 || c.Sizing.CapitalFraction > 1) {
		return fmt.Errorf("sizing.capital_fraction must be in (0,1], got %.3f", c.Sizing.CapitalFraction)
	}
	if c.MarketData.Source != "REST" && c.MarketData.Source != "STREAM" {
		return fmt.Errorf("market_data.source must be 'REST' or 'STREAM', got '%s'", c.MarketData.Source)
	}
	return nil
}

// BaseAsset returns the base leg of the configured instrument.
func (c *Config) BaseAsset() string {
	return strings.SplitN(c.Instrument, "-", 2)[0]
}

// QuoteAsset returns the quote leg of the configured instrument.
func (c *Config) QuoteAsset() string {
	parts := strings.SplitN(c.Instrument, "-", 2)
	if len(parts) < 2 {
		return ""
	}
	return parts[1]
}

func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}

	applyDefaults(&c)

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &c, nil
}

func applyDefaults(c *Config) {
	if c.Mode == "" {
		c.Mode = "DEMO"
	}
	if c.Instrument == "" {
		c.Instrument = "BTC-USDT"
	}
	if c.MarginMode == "" {
		c.MarginMode = "cash"
	}
	if c.Gate.ConfidenceThreshold == 0 {
		c.Gate.ConfidenceThreshold = 45
	}
	if c.Signal.DefaultConfidence == 0 {
		c.Signal.DefaultConfidence = 50
	}
	if c.Sizing.Policy == "" {
		c.Sizing.Policy = "FRACTION"
	}
	if c.Sizing.CapitalFraction == 0 {
		c.Sizing.CapitalFraction = 0.10
	}
	if c.Sizing.MinNotional == 0 {
		c.Sizing.MinNotional = 10
	}
	if c.LLM.Provider == "" {
		c.LLM.Provider = "NOOP"
	}
	if c.LLM.MaxTokens == 0 {
		c.LLM.MaxTokens = 256
	}
	if c.MarketData.Source == "" {
		c.MarketData.Source = "REST"
	}
	if c.MarketData.SecondaryCurrency == "" {
		c.MarketData.SecondaryCurrency = "EUR"
	}
	if c.MarketData.FallbackRate == 0 {
		c.MarketData.FallbackRate = 0.92
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":10000"
	}
	if c.Telegram.Trigger == "" {
		c.Telegram.Trigger = "🪙"
	}
}

// LoadCredentials reads secrets from the environment and verifies the
// ones required by the selected providers. Missing credentials are a
// startup failure, never a per-cycle one.
func LoadCredentials(c *Config) (Credentials, error) {
	creds := Credentials{
		OKXAPIKey:     os.Getenv("OKX_API_KEY"),
		OKXSecretKey:  os.Getenv("OKX_SECRET_KEY"),
		OKXPassphrase: os.Getenv("OKX_PASSPHRASE"),
		OpenAIKey:     os.Getenv("OPENAI_API_KEY"),
		ClaudeKey:     os.Getenv("CLAUDE_API_KEY"),
		TelegramToken: os.Getenv("TELEGRAM_TOKEN"),
	}

	var missing []string
	if creds.OKXAPIKey == "" {
		missing = append(missing, "OKX_API_KEY")
	}
	if creds.OKXSecretKey == "" {
		missing = append(missing, "OKX_SECRET_KEY")
	}
	if creds.OKXPassphrase == "" {
		missing = append(missing, "OKX_PASSPHRASE")
	}
	if c.LLM.Provider == "OPENAI" && creds.OpenAIKey == "" {
		missing = append(missing, "OPENAI_API_KEY")
	}
	if c.LLM.Provider == "CLAUDE" && creds.ClaudeKey == "" {
		missing = append(missing, "CLAUDE_API_KEY")
	}
	if creds.TelegramToken == "" {
		missing = append(missing, "TELEGRAM_TOKEN")
	}

	if len(missing) > 0 {
		return Credentials{}, fmt.Errorf("missing environment variables: %s", strings.Join(missing, ", "))
	}
	return creds, nil
}
