package interfaces

import "context"

// Oracle is the free-text reasoning boundary. It enforces no schema;
// the signal engine owns all parsing of the returned text.
type Oracle interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
