// File: internal/services/anthropic/interface.go
package anthropic

import (
	"context"

	"github.com/skynavi/travel-assistant/internal/domain"
)

// CompletionRequest is one call to the text-generation endpoint: the
// conversation so far plus the generation parameters.
type CompletionRequest struct {
	Messages    []domain.ChatMessage
	System      string
	MaxTokens   int
	Temperature float64
}

// CompletionProvider sends a structured conversation to a remote
// text-generation endpoint and returns the response text.
type CompletionProvider interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}
