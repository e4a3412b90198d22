package utils

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const DefaultGeminiModel = "gemini-1.5-flash"

// GeminiCompletionClient implements CompletionClient using Google's Gemini models
type GeminiCompletionClient struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGeminiCompletionClient creates a new Gemini client
func NewGeminiCompletionClient(ctx context.Context, apiKey string, opts CompletionOptions) (*GeminiCompletionClient, error) {
	if apiKey == "" {
		return nil, errors.New("missing the Gemini API key, set it in the GEMINI_API_KEY environment variable")
	}
	if opts.Model == "" {
		opts.Model = DefaultGeminiModel
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(opts.Model)
	// The prompts ask for bare JSON; JSON mode keeps Gemini from fencing it in markdown.
	model.ResponseMIMEType = "application/json"
	model.SetTemperature(opts.Temperature)
	model.SetMaxOutputTokens(int32(opts.MaxOutputTokens))

	return &GeminiCompletionClient{
		client: client,
		model:  model,
	}, nil
}

func (c *GeminiCompletionClient) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("%w: gemini: %w", ErrCompletionTransport, err)
	}
	return responseText(resp)
}

// Close closes the Gemini client
func (c *GeminiCompletionClient) Close() error {
	return c.client.Close()
}

// responseText joins the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("%w: gemini: no response candidates", ErrCompletionTransport)
	}

	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			text.WriteString(string(txt))
		}
	}
	if strings.TrimSpace(text.String()) == "" {
		return "", fmt.Errorf("%w: gemini: empty completion", ErrCompletionTransport)
	}
	return text.String(), nil
}
