package interfaces

import "context"

// Notifier delivers outbound text to the chat transport.
type Notifier interface {
	SendMessage(ctx context.Context, chatID int64, text string) error
}
