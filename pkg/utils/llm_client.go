package utils

import (
	"context"
	"time"
)

// CompletionRequest is a single system + user turn sent to a language model.
type CompletionRequest struct {
	System      string
	Prompt      string
	Temperature float32
	MaxTokens   int
}

// CompletionClientInterface is implemented by every language model provider.
type CompletionClientInterface interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
	Name() string
}

// LLMConfig holds configuration for completion clients
type LLMConfig struct {
	Provider string
	APIKey   string
	Model    string
	BaseURL  string
	Timeout  time.Duration
}

func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}
