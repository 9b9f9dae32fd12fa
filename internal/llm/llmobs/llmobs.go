package llmobs

import (
	"context"

	"okx-signal-bot/internal/interfaces"
	"okx-signal-bot/internal/logger"
	"okx-signal-bot/internal/trace"
)

// observableOracle wraps an Oracle with observability (logging & tracing)
type observableOracle struct {
	oracle interfaces.Oracle
}

var _ interfaces.Oracle = (*observableOracle)(nil)

// Wrap wraps an oracle with observability middleware
func Wrap(oracle interfaces.Oracle) interfaces.Oracle {
	return &observableOracle{oracle: oracle}
}

func (oo *observableOracle) Complete(ctx context.Context, prompt string) (string, error) {
	ctx, span := trace.StartSpan(ctx, "oracle.Complete")
	defer span.End()

	logger.DebugSkip(ctx, 1, "Requesting oracle completion", "prompt_len", len(prompt))

	reply, err := oo.oracle.Complete(ctx, prompt)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Oracle completion failed", err)
		return "", err
	}

	logger.DebugSkip(ctx, 1, "Oracle completion received", "reply_len", len(reply))
	return reply, nil
}
