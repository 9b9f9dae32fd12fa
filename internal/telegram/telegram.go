package telegram

import (
	"context"
	"fmt"

	"okx-signal-bot/internal/api"
	"okx-signal-bot/internal/interfaces"
)

const defaultBaseURL = "https://api.telegram.org"

// Client sends outbound messages through the Telegram Bot API.
type Client struct {
	token string
	http  *api.Client
}

var _ interfaces.Notifier = (*Client)(nil)

func NewClient(token string, baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		token: token,
		http:  api.NewClient(api.WithBaseURL(baseURL)),
	}
}

func (c *Client) SendMessage(ctx context.Context, chatID int64, text string) error {
	body := map[string]any{
		"chat_id":    chatID,
		"text":       text,
		"parse_mode": "Markdown",
	}
	_, err := c.http.POST(ctx, fmt.Sprintf("/bot%s/sendMessage", c.token), body)
	return err
}
