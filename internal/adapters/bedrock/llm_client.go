package bedrock

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"go.uber.org/zap"

	"github.com/fernandoxavier02/Agente-Comercial-Jetbrains/internal/adapters/oracle"
	"github.com/fernandoxavier02/Agente-Comercial-Jetbrains/internal/core"
	"github.com/fernandoxavier02/Agente-Comercial-Jetbrains/internal/utils"
)

const anthropicVersion = "bedrock-2023-05-31"

// Client is an implementation of the LLMClient interface using Amazon
// Bedrock with Anthropic Claude models (the messages API supports both text
// and image input)
type Client struct {
	client        *bedrockruntime.Client
	modelID       string
	maxTokens     int
	temperature   float32
	topP          float32
	maxTextSize   int
	httpClient    *http.Client
	logger        *zap.Logger
	textProcessor *utils.TextProcessor
}

// NewClient creates a new Bedrock oracle client
func NewClient(
	client *bedrockruntime.Client,
	modelID string,
	maxTokens int,
	temperature float32,
	topP float32,
	maxTextSize int,
	logger *zap.Logger,
	textProcessor *utils.TextProcessor,
) *Client {
	return &Client{
		client:        client,
		modelID:       modelID,
		maxTokens:     maxTokens,
		temperature:   temperature,
		topP:          topP,
		maxTextSize:   maxTextSize,
		httpClient:    &http.Client{Timeout: 15 * time.Second},
		logger:        logger,
		textProcessor: textProcessor,
	}
}

// ModelName returns the model identifier used for audit records
func (c *Client) ModelName() string {
	return c.modelID
}

type messageContent struct {
	Type   string       `json:"type"`
	Text   string       `json:"text,omitempty"`
	Source *imageSource `json:"source,omitempty"`
}

type imageSource struct {
	Type      string `json:"type"`
	MediaType string `json:"media_type"`
	Data      string `json:"data"`
}

type message struct {
	Role    string           `json:"role"`
	Content []messageContent `json:"content"`
}

type invokeRequest struct {
	AnthropicVersion string    `json:"anthropic_version"`
	System           string    `json:"system,omitempty"`
	MaxTokens        int       `json:"max_tokens"`
	Temperature      float32   `json:"temperature"`
	TopP             float32   `json:"top_p"`
	Messages         []message `json:"messages"`
}

type invokeResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

// ClassifyText classifies raw signal text for buying intent
func (c *Client) ClassifyText(ctx context.Context, text string) (*core.Classification, error) {
	processedText := c.textProcessor.ProcessText(text, c.maxTextSize)

	responseText, err := c.invoke(ctx, invokeRequest{
		AnthropicVersion: anthropicVersion,
		System:           oracle.SystemPrompt,
		MaxTokens:        c.maxTokens,
		Temperature:      c.temperature,
		TopP:             c.topP,
		Messages: []message{{
			Role: "user",
			Content: []messageContent{{
				Type: "text",
				Text: oracle.ClassificationPrompt(processedText),
			}},
		}},
	})
	if err != nil {
		return nil, err
	}

	return oracle.ParseClassification(responseText)
}

// AnalyzeImage audits a profile image for socioeconomic indicators. Bedrock
// takes base64 image bytes, so the referenced image is fetched first.
func (c *Client) AnalyzeImage(ctx context.Context, imageURL string) (*core.VisualAnalysis, error) {
	mediaType, data, err := c.fetchImage(ctx, imageURL)
	if err != nil {
		return nil, err
	}

	responseText, err := c.invoke(ctx, invokeRequest{
		AnthropicVersion: anthropicVersion,
		MaxTokens:        c.maxTokens,
		Messages: []message{{
			Role: "user",
			Content: []messageContent{
				{
					Type: "image",
					Source: &imageSource{
						Type:      "base64",
						MediaType: mediaType,
						Data:      base64.StdEncoding.EncodeToString(data),
					},
				},
				{
					Type: "text",
					Text: oracle.VisionPrompt,
				},
			},
		}},
	})
	if err != nil {
		return nil, err
	}

	return oracle.ParseVisualAnalysis(responseText)
}

// invoke sends one messages-API request to Bedrock and returns the text of
// the first content block
func (c *Client) invoke(ctx context.Context, req invokeRequest) (string, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("failed to marshal Bedrock request: %w", err)
	}

	output, err := c.client.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(c.modelID),
		ContentType: aws.String("application/json"),
		Accept:      aws.String("application/json"),
		Body:        payload,
	})
	if err != nil {
		return "", fmt.Errorf("failed to invoke Bedrock model: %w", err)
	}

	var resp invokeResponse
	if err := json.Unmarshal(output.Body, &resp); err != nil {
		return "", fmt.Errorf("failed to parse Bedrock response: %w", err)
	}
	for _, block := range resp.Content {
		if block.Type == "text" {
			return block.Text, nil
		}
	}
	return "", fmt.Errorf("empty response from Bedrock")
}

// fetchImage downloads the referenced image and returns its media type and bytes
func (c *Client) fetchImage(ctx context.Context, imageURL string) (string, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return "", nil, fmt.Errorf("failed to create image request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", nil, fmt.Errorf("failed to fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", nil, fmt.Errorf("unexpected status %d fetching image", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return "", nil, fmt.Errorf("failed to read image body: %w", err)
	}

	mediaType := resp.Header.Get("Content-Type")
	if !strings.HasPrefix(mediaType, "image/") {
		mediaType = "image/jpeg"
	}
	return mediaType, data, nil
}
