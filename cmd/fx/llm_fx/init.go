package llm_fx

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"quill/internal/config"
	"quill/pkg/utils"
)

var Module = fx.Provide(
	ProvideCompletionClient)

// ProvideCompletionClient creates the language model client named by LLM_PROVIDER.
func ProvideCompletionClient(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger) (utils.CompletionClientInterface, error) {
	llmCfg := completionConfig(cfg.LLM)
	if llmCfg.APIKey == "" {
		log.Warn("no API key configured for language model provider", zap.String("provider", llmCfg.Provider))
	}

	var client utils.CompletionClientInterface
	switch llmCfg.Provider {
	case "openai":
		client = utils.NewOpenAICompletionClient(llmCfg)
	case "gemini":
		gemini, err := utils.NewGeminiCompletionClient(llmCfg)
		if err != nil {
			return nil, fmt.Errorf("failed to create Gemini client: %w", err)
		}
		client = gemini
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s. Use 'openai' or 'gemini'", llmCfg.Provider)
	}

	if closer, ok := client.(io.Closer); ok {
		lc.Append(fx.Hook{
			OnStop: func(context.Context) error { return closer.Close() },
		})
	}

	log.Info("language model client ready", zap.String("provider", client.Name()), zap.String("model", llmCfg.Model))
	return client, nil
}

func completionConfig(cfg config.LLMConfig) utils.LLMConfig {
	out := utils.LLMConfig{Provider: cfg.Provider, Timeout: cfg.Timeout}
	switch cfg.Provider {
	case "gemini":
		out.APIKey = cfg.GeminiAPIKey
		out.Model = cfg.GeminiModel
	default:
		out.APIKey = cfg.OpenAIAPIKey
		out.Model = cfg.OpenAIModel
		out.BaseURL = cfg.OpenAIBaseURL
	}
	return out
}
