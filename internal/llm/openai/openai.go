package openai

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

const defaultEndpoint = "https://api.openai.com/v1/responses"

// Oracle completes prompts via the OpenAI Responses API.
type Oracle struct {
	apiKey   string
	model    string
	endpoint string
	http     *api.Client
}

var _ interfaces.Oracle = (*Oracle)(nil)

func NewOracle(apiKey, model string) *Oracle {
	endpoint := defaultEndpoint
	// Proxy deployments can point elsewhere via OPENAI_API_ENDPOINT.
	if ep := os.Getenv("OPENAI_API_ENDPOINT"); ep != "" {
		endpoint = ep
	}
	if model == "" {
		model = "gpt-4.1-mini"
	}
	return &Oracle{apiKey: apiKey, model: model, endpoint: endpoint, http: api.NewClient()}
}

func (o *Oracle) Complete(ctx context.Context, prompt string) (string, error) {
	ctx, span := trace.StartSpan(ctx, "openai-api-call")
	defer span.End()

	if o.apiKey == "" {
		return "", errors.New("OPENAI_API_KEY missing")
	}

	body := map[string]any{
		"model": o.model,
		"input": prompt,
	}
	req, err := api.NewRequest("POST", o.endpoint).WithContext(ctx).WithJSONBody(body)
	if err != nil {
		return "", err
	}
	req.WithHeader("Authorization", "Bearer "+o.apiKey)

	resp, err := o.http.Do(req)
	if err != nil {
		return "", err
	}

	// The Responses API exposes the text either as a top-level
	// output_text or nested in output[0].content[0].text.
	var r struct {
		OutputText string `json:"output_text"`
		Output     []struct {
			Content []struct {
				Text string `json:"text"`
			} `json:"content"`
		} `json:"output"`
	}
	if err := json.Unmarshal(resp.Body, &r); err != nil {
		return "", fmt.Errorf("openai response decode: %w", err)
	}

	if txt := strings.TrimSpace(r.OutputText); txt != "" {
		return txt, nil
	}
	if len(r.Output) > 0 && len(r.Output[0].Content) > 0 {
		if txt := strings.TrimSpace(r.Output[0].Content[0].Text); txt != "" {
			return txt, nil
		}
	}
	return "", errors.New("openai response contained no text")
}
