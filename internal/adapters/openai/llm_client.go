package openai

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/fernandoxavier02/Agente-Comercial-Jetbrains/internal/adapters/oracle"
	"github.com/fernandoxavier02/Agente-Comercial-Jetbrains/internal/core"
	"github.com/fernandoxavier02/Agente-Comercial-Jetbrains/internal/utils"
)

// Client is an implementation of the LLMClient interface for any
// OpenAI-compatible endpoint (OpenAI, OpenRouter, Ollama)
type Client struct {
	client        *openai.Client
	modelName     string
	visionModel   string
	maxTokens     int
	temperature   float32
	topP          float32
	maxTextSize   int
	logger        *zap.Logger
	textProcessor *utils.TextProcessor
}

// NewClient creates a new OpenAI-compatible oracle client
func NewClient(
	client *openai.Client,
	modelName string,
	visionModel string,
	maxTokens int,
	temperature float32,
	topP float32,
	maxTextSize int,
	logger *zap.Logger,
	textProcessor *utils.TextProcessor,
) *Client {
	return &Client{
		client:        client,
		modelName:     modelName,
		visionModel:   visionModel,
		maxTokens:     maxTokens,
		temperature:   temperature,
		topP:          topP,
		maxTextSize:   maxTextSize,
		logger:        logger,
		textProcessor: textProcessor,
	}
}

// ModelName returns the model identifier used for audit records
func (c *Client) ModelName() string {
	return c.modelName
}

// ClassifyText classifies raw signal text for buying intent
func (c *Client) ClassifyText(ctx context.Context, text string) (*core.Classification, error) {
	processedText := c.textProcessor.ProcessText(text, c.maxTextSize)
	prompt := oracle.ClassificationPrompt(processedText)

	req := openai.ChatCompletionRequest{
		Model: c.modelName,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: oracle.SystemPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
		TopP:        c.topP,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("empty response from oracle")
	}

	return oracle.ParseClassification(resp.Choices[0].Message.Content)
}

// AnalyzeImage audits a profile image for socioeconomic indicators
func (c *Client) AnalyzeImage(ctx context.Context, imageURL string) (*core.VisualAnalysis, error) {
	req := openai.ChatCompletionRequest{
		Model: c.visionModel,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{
						Type: openai.ChatMessagePartTypeText,
						Text: oracle.VisionPrompt,
					},
					{
						Type: openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{
							URL: imageURL,
						},
					},
				},
			},
		},
		MaxTokens: c.maxTokens,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create vision completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("empty vision response from oracle")
	}

	return oracle.ParseVisualAnalysis(resp.Choices[0].Message.Content)
}
