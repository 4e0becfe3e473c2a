package openai

import (
	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/fernandoxavier02/Agente-Comercial-Jetbrains/internal/config"
	"github.com/fernandoxavier02/Agente-Comercial-Jetbrains/internal/core"
	"github.com/fernandoxavier02/Agente-Comercial-Jetbrains/internal/utils"
)

// Factory creates new instances of the OpenAI-compatible oracle client
type Factory struct {
	cfg           *config.Config
	logger        *zap.Logger
	textProcessor *utils.TextProcessor
}

// NewFactory creates a new factory for OpenAI-compatible clients
func NewFactory(cfg *config.Config, logger *zap.Logger, textProcessor *utils.TextProcessor) *Factory {
	return &Factory{
		cfg:           cfg,
		logger:        logger,
		textProcessor: textProcessor,
	}
}

// CreateClient creates a client for the given provider identifier
// (openai, openrouter or ollama; they share the wire protocol and differ
// only in base URL and credential)
func (f *Factory) CreateClient(provider string) (core.LLMClient, error) {
	llmCfg := f.cfg.GetLLM()
	providerCfg := f.cfg.GetOpenAI(provider)

	clientCfg := openai.DefaultConfig(providerCfg.APIKey)
	if providerCfg.BaseURL != "" {
		clientCfg.BaseURL = providerCfg.BaseURL
	}
	client := openai.NewClientWithConfig(clientCfg)

	return NewClient(
		client,
		llmCfg.Model,
		llmCfg.VisionModel,
		providerCfg.MaxTokens,
		providerCfg.Temperature,
		providerCfg.TopP,
		providerCfg.MaxTextSize,
		f.logger,
		f.textProcessor,
	), nil
}
