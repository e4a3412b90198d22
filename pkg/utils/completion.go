package utils

import (
	"context"
	"fmt"
)

// CompletionClient sends one literal prompt to a text-completion model and
// returns the model's full answer. Implementations block until the provider
// responds; failures are wrapped with ErrCompletionTransport.
type CompletionClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// CompletionOptions holds the generation settings shared by every provider.
type CompletionOptions struct {
	Model           string
	MaxOutputTokens int
	Temperature     float32
}

func (o CompletionOptions) validate() error {
	if o.Model == "" {
		return fmt.Errorf("completion model is required")
	}
	if o.MaxOutputTokens <= 0 {
		return fmt.Errorf("max output tokens must be positive, got %d", o.MaxOutputTokens)
	}
	return nil
}
