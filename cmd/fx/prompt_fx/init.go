package prompt_fx

import (
	"context"
	"fmt"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"tripplanner/internal/config"
	"tripplanner/internal/prompts"
	"tripplanner/pkg/utils"
)

var Module = fx.Provide(
	prompts.LoadExampleStore,
	prompts.NewAssembler,
	ProvideCompletionClient)

// ProvideCompletionClient creates the completion client of the configured provider
func ProvideCompletionClient(lc fx.Lifecycle, cfg config.Config, logger *zap.Logger) (utils.CompletionClient, error) {
	opts := utils.CompletionOptions{
		MaxOutputTokens: cfg.LLM.MaxOutputTokens,
		Temperature:     cfg.LLM.Temperature,
	}

	var client utils.CompletionClient
	switch cfg.LLM.Provider {
	case config.ProviderOpenAI:
		opts.Model = cfg.LLM.OpenAIModel
		openAI, err := utils.NewOpenAICompletionClient(cfg.LLM.OpenAIKey, cfg.LLM.OpenAIBaseURL, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to create OpenAI client: %w", err)
		}
		client = openAI
	case config.ProviderGemini:
		opts.Model = cfg.LLM.GeminiModel
		gemini, err := utils.NewGeminiCompletionClient(context.Background(), cfg.LLM.GeminiKey, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to create Gemini client: %w", err)
		}
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				return gemini.Close()
			},
		})
		client = gemini
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s. Use 'openai' or 'gemini'", cfg.LLM.Provider)
	}

	logger.Info("completion client ready",
		zap.String("provider", cfg.LLM.Provider),
		zap.String("model", opts.Model),
		zap.Int("max_output_tokens", opts.MaxOutputTokens),
		zap.Float32("temperature", opts.Temperature))
	return client, nil
}
