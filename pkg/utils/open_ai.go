package utils

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

const DefaultOpenAIModel = openai.GPT3Dot5TurboInstruct

// OpenAICompletionClient implements CompletionClient on the OpenAI text
// completion endpoint.
type OpenAICompletionClient struct {
	client *openai.Client
	opts   CompletionOptions
}

// NewOpenAICompletionClient creates the client. baseURL may point at any
// OpenAI compatible server; empty keeps the public endpoint.
func NewOpenAICompletionClient(apiKey, baseURL string, opts CompletionOptions) (*OpenAICompletionClient, error) {
	if apiKey == "" {
		return nil, errors.New("missing the OpenAI API key, set it in the OPENAI_API_KEY environment variable")
	}
	if opts.Model == "" {
		opts.Model = DefaultOpenAIModel
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}

	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}

	return &OpenAICompletionClient{
		client: openai.NewClientWithConfig(config),
		opts:   opts,
	}, nil
}

func (c *OpenAICompletionClient) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.CreateCompletion(ctx, openai.CompletionRequest{
		Model:       c.opts.Model,
		Prompt:      prompt,
		MaxTokens:   c.opts.MaxOutputTokens,
		Temperature: c.opts.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("%w: openai: %w", ErrCompletionTransport, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: openai: no choices returned", ErrCompletionTransport)
	}

	text := resp.Choices[0].Text
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: openai: empty completion (finish_reason=%s)", ErrCompletionTransport, resp.Choices[0].FinishReason)
	}
	return text, nil
}
