package gemini

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"github.com/fernandoxavier02/Agente-Comercial-Jetbrains/internal/config"
	"github.com/fernandoxavier02/Agente-Comercial-Jetbrains/internal/core"
	"github.com/fernandoxavier02/Agente-Comercial-Jetbrains/internal/utils"
)

// Factory creates new instances of the Gemini oracle client
type Factory struct {
	cfg           *config.Config
	logger        *zap.Logger
	textProcessor *utils.TextProcessor
}

// NewFactory creates a new factory for Gemini clients
func NewFactory(cfg *config.Config, logger *zap.Logger, textProcessor *utils.TextProcessor) *Factory {
	return &Factory{
		cfg:           cfg,
		logger:        logger,
		textProcessor: textProcessor,
	}
}

// CreateClient creates a new Gemini client
func (f *Factory) CreateClient() (core.LLMClient, error) {
	geminiCfg := f.cfg.GetGemini()

	client, err := genai.NewClient(context.Background(), option.WithAPIKey(geminiCfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return NewClient(
		client,
		geminiCfg.ModelName,
		geminiCfg.VisionModel,
		geminiCfg.MaxTokens,
		geminiCfg.Temperature,
		geminiCfg.TopP,
		geminiCfg.MaxTextSize,
		f.logger,
		f.textProcessor,
	), nil
}
