package signal

import (
	"regexp"
	"strconv"
	"strings"

	"okx-signal-bot/internal/types"
)

// The oracle enforces no schema, so these patterns are the whole
// parsing contract. Each field is extracted independently: a garbled
// direction line does not block confidence extraction, and vice versa.
var (
	directionRe  = regexp.MustCompile(`(?i)DIRECTION:\s*(LONG|SHORT)`)
	confidenceRe = regexp.MustCompile(`(?i)CONFIANCE:\s*(\d{1,3})`)
	rationaleRe  = regexp.MustCompile(`(?i)RAISON:\s*(.+)`)
)

// ParseSignal extracts a structured Signal from the oracle's free-text
// reply. Missing or malformed fields take safe defaults: direction
// LONG, confidence fallbackConfidence. Signal.Fallback reports that a
// default was substituted.
func ParseSignal(text string, fallbackConfidence int) types.Signal {
	sig := types.Signal{
		Direction:  types.Long,
		Confidence: fallbackConfidence,
		RawText:    text,
	}

	directionFound := false
	if m := directionRe.FindStringSubmatch(text); m != nil {
		sig.Direction = types.Direction(strings.ToUpper(m[1]))
		directionFound = true
	}

	confidenceFound := false
	if m := confidenceRe.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			sig.Confidence = clamp(n, 0, 100)
			confidenceFound = true
		}
	}

	if m := rationaleRe.FindStringSubmatch(text); m != nil {
		sig.Rationale = strings.TrimSpace(m[1])
	}

	sig.Fallback = !directionFound || !confidenceFound
	return sig
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
