package gemini

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"

	"github.com/fernandoxavier02/Agente-Comercial-Jetbrains/internal/adapters/oracle"
	"github.com/fernandoxavier02/Agente-Comercial-Jetbrains/internal/core"
	"github.com/fernandoxavier02/Agente-Comercial-Jetbrains/internal/utils"
)

// Client is an implementation of the LLMClient interface using Google Gemini
type Client struct {
	client        *genai.Client
	model         *genai.GenerativeModel
	visionModel   *genai.GenerativeModel
	modelName     string
	maxTextSize   int
	httpClient    *http.Client
	logger        *zap.Logger
	textProcessor *utils.TextProcessor
}

// NewClient creates a new Gemini oracle client
func NewClient(
	client *genai.Client,
	modelName string,
	visionModelName string,
	maxTokens int,
	temperature float32,
	topP float32,
	maxTextSize int,
	logger *zap.Logger,
	textProcessor *utils.TextProcessor,
) *Client {
	model := client.GenerativeModel(modelName)
	model.SetTemperature(temperature)
	model.SetTopP(topP)
	model.SetMaxOutputTokens(int32(maxTokens))
	model.ResponseMIMEType = "application/json"

	visionModel := client.GenerativeModel(visionModelName)
	visionModel.SetMaxOutputTokens(int32(maxTokens))
	visionModel.ResponseMIMEType = "application/json"

	return &Client{
		client:        client,
		model:         model,
		visionModel:   visionModel,
		modelName:     modelName,
		maxTextSize:   maxTextSize,
		httpClient:    &http.Client{Timeout: 15 * time.Second},
		logger:        logger,
		textProcessor: textProcessor,
	}
}

// Close closes the Gemini client
func (c *Client) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// ModelName returns the model identifier used for audit records
func (c *Client) ModelName() string {
	return c.modelName
}

// ClassifyText classifies raw signal text for buying intent
func (c *Client) ClassifyText(ctx context.Context, text string) (*core.Classification, error) {
	processedText := c.textProcessor.ProcessText(text, c.maxTextSize)
	prompt := oracle.SystemPrompt + "\n\n" + oracle.ClassificationPrompt(processedText)

	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("failed to generate content with Gemini: %w", err)
	}
	responseText, err := firstCandidateText(resp)
	if err != nil {
		return nil, err
	}

	return oracle.ParseClassification(responseText)
}

// AnalyzeImage audits a profile image for socioeconomic indicators. Gemini
// takes inline image bytes, so the referenced image is fetched first.
func (c *Client) AnalyzeImage(ctx context.Context, imageURL string) (*core.VisualAnalysis, error) {
	format, data, err := c.fetchImage(ctx, imageURL)
	if err != nil {
		return nil, err
	}

	resp, err := c.visionModel.GenerateContent(ctx,
		genai.Text(oracle.VisionPrompt),
		genai.ImageData(format, data),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate vision content with Gemini: %w", err)
	}
	responseText, err := firstCandidateText(resp)
	if err != nil {
		return nil, err
	}

	return oracle.ParseVisualAnalysis(responseText)
}

// fetchImage downloads the referenced image and returns its format and bytes
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

	format := "jpeg"
	if ct := resp.Header.Get("Content-Type"); strings.HasPrefix(ct, "image/") {
		format = strings.TrimPrefix(ct, "image/")
	}
	return format, data, nil
}

func firstCandidateText(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty response from Gemini")
	}
	return fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0]), nil
}
