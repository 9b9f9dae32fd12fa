package telegram

import (
	"fmt"
	"strings"

	"okx-signal-bot/internal/store"
	"okx-signal-bot/internal/types"
)

// RenderAnalyzing is the progress message sent when a cycle starts.
func RenderAnalyzing(cfg *store.Config) string {
	return fmt.Sprintf("⏳ Analyzing the %s market...", cfg.BaseAsset())
}

// RenderOutcome renders one TradeOutcome as the user-facing report.
// Every terminal state produces a complete message: the user is never
// left without a response.
func RenderOutcome(o types.TradeOutcome, threshold int) string {
	modeLabel := "DEMO"
	if o.Mode == "LIVE" {
		modeLabel = "LIVE"
	}

	if o.FailureReason == "confidence below threshold" {
		return fmt.Sprintf(
			"⚠️ *No trade taken*\n\n"+
				"Confidence too low: *%d%%* (< %d%%)\n"+
				"Protecting your capital, waiting for a better setup.",
			o.Confidence, threshold)
	}

	var b strings.Builder
	if o.Executed {
		fmt.Fprintf(&b, "🚀 *TRADE EXECUTED (%s)*\n\n", modeLabel)
	} else {
		fmt.Fprintf(&b, "❌ *No trade executed (%s)*\n\n", modeLabel)
	}

	fmt.Fprintf(&b, "📌 Pair: *%s*\n", o.Instrument)
	fmt.Fprintf(&b, "📈 Direction: *%s*\n", o.Direction)
	fmt.Fprintf(&b, "🎯 Confidence: *%d%%*\n", o.Confidence)
	if o.Rationale != "" {
		fmt.Fprintf(&b, "💡 Rationale: %s\n", o.Rationale)
	}

	if o.Price > 0 {
		fmt.Fprintf(&b, "\n💰 Price: *%.2f*", o.Price)
		if o.SecondaryPrice > 0 {
			fmt.Fprintf(&b, " (≈ *%.2f EUR*)", o.SecondaryPrice)
		}
		b.WriteString("\n")
	}
	if o.SizeBase != "" {
		fmt.Fprintf(&b, "📊 Size: *%s*\n", o.SizeBase)
	}

	if o.Executed {
		fmt.Fprintf(&b, "\n🧾 Order ID: `%s`\n", o.OrderID)
		if o.StatusCode != "" {
			fmt.Fprintf(&b, "📦 Status: `%s`\n", o.StatusCode)
		}
	} else {
		fmt.Fprintf(&b, "\n🚫 Reason: `%s`\n", o.FailureReason)
		if o.StatusCode != "" {
			fmt.Fprintf(&b, "📦 Venue code: `%s`\n", o.StatusCode)
		}
	}

	return b.String()
}
