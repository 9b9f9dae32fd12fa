package signal

import (
	"context"
	"fmt"

	"okx-signal-bot/internal/interfaces"
	"okx-signal-bot/internal/logger"
	"okx-signal-bot/internal/metrics"
	"okx-signal-bot/internal/trace"
	"okx-signal-bot/internal/types"
)

// Engine turns a price quote into a directional Signal by prompting
// the reasoning oracle and parsing its reply.
type Engine struct {
	oracle            interfaces.Oracle
	defaultConfidence int
}

func NewEngine(oracle interfaces.Oracle, defaultConfidence int) *Engine {
	return &Engine{oracle: oracle, defaultConfidence: defaultConfidence}
}

// GetSignal never fails outward: any oracle or parse failure yields the
// safe fallback (LONG at the default confidence), so the orchestrator
// always receives a usable Signal.
func (e *Engine) GetSignal(ctx context.Context, quote types.PriceQuote) types.Signal {
	ctx, span := trace.StartSpan(ctx, "signal.GetSignal")
	defer span.End()

	reply, err := e.oracle.Complete(ctx, buildPrompt(quote))
	if err != nil {
		metrics.FallbacksTotal.WithLabelValues("signal_oracle").Inc()
		logger.Fallback(ctx, "signal_oracle", "LONG/default",
			"default_confidence", e.defaultConfidence, "error", err)
		return types.Signal{
			Direction:  types.Long,
			Confidence: e.defaultConfidence,
			Fallback:   true,
		}
	}

	sig := ParseSignal(reply, e.defaultConfidence)
	if sig.Fallback {
		metrics.FallbacksTotal.WithLabelValues("signal_parse").Inc()
		logger.Fallback(ctx, "signal_parse", "partial_defaults",
			"direction", sig.Direction, "confidence", sig.Confidence)
	}

	logger.Decision(ctx, quote.BaseAsset+"-"+quote.QuoteAsset,
		string(sig.Direction), sig.Confidence, sig.Rationale)
	return sig
}

// buildPrompt asks for the strict line format the parser expects.
func buildPrompt(quote types.PriceQuote) string {
	prompt := fmt.Sprintf(
		"Analyse the %s market in real time.\n\nCurrent %s price:\n- %.2f %s",
		quote.BaseAsset, quote.BaseAsset, quote.LastPrice, quote.QuoteAsset)
	if quote.SecondaryPrice > 0 {
		prompt += fmt.Sprintf("\n- ~%.2f EUR", quote.SecondaryPrice)
	}
	prompt += "\n\nReply with ONLY these lines:\n" +
		"DIRECTION: LONG or SHORT\n" +
		"CONFIANCE: a number between 0 and 100\n" +
		"RAISON: one short sentence\n\n" +
		"Exact expected format:\n" +
		"DIRECTION: LONG\n" +
		"CONFIANCE: 72\n" +
		"RAISON: momentum above the daily open\n"
	return prompt
}
