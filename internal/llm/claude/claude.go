package claude

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"okx-signal-bot/internal/api"
	"okx-signal-bot/internal/interfaces"
	"okx-signal-bot/internal/trace"
)

const defaultEndpoint = "https://api.anthropic.com/v1/messages"

// Oracle completes prompts via the Anthropic Messages API.
type Oracle struct {
	apiKey    string
	model     string
	maxTokens int
	endpoint  string
	http      *api.Client
}

var _ interfaces.Oracle = (*Oracle)(nil)

func NewOracle(apiKey, model string, maxTokens int) *Oracle {
	endpoint := defaultEndpoint
	if ep := os.Getenv("CLAUDE_API_ENDPOINT"); ep != "" {
		endpoint = ep
	}
	if maxTokens <= 0 {
		maxTokens = 256
	}
	if model == "" {
		model = "claude-3-5-haiku-latest"
	}
	return &Oracle{apiKey: apiKey, model: model, maxTokens: maxTokens, endpoint: endpoint, http: api.NewClient()}
}

func (o *Oracle) Complete(ctx context.Context, prompt string) (string, error) {
	ctx, span := trace.StartSpan(ctx, "claude-api-call")
	defer span.End()

	if o.apiKey == "" {
		return "", errors.New("CLAUDE_API_KEY missing")
	}

	body := map[string]any{
		"model":      o.model,
		"max_tokens": o.maxTokens,
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
		},
	}
	req, err := api.NewRequest("POST", o.endpoint).WithContext(ctx).WithJSONBody(body)
	if err != nil {
		return "", err
	}
	req.WithHeader("x-api-key", o.apiKey)
	req.WithHeader("anthropic-version", "2023-06-01")

	resp, err := o.http.Do(req)
	if err != nil {
		return "", err
	}

	var r struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	}
	if err := json.Unmarshal(resp.Body, &r); err != nil {
		return "", fmt.Errorf("claude response decode: %w", err)
	}

	for _, c := range r.Content {
		if c.Type == "text" && strings.TrimSpace(c.Text) != "" {
			return strings.TrimSpace(c.Text), nil
		}
	}
	return "", errors.New("claude response contained no text")
}
