// Package search implements the signal acquisition providers. The primary
// provider is Serper.dev, which fronts Google Search with a JSON API.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/fernandoxavier02/Agente-Comercial-Jetbrains/internal/core"
)

const defaultBaseURL = "https://google.serper.dev"

// Option configures the Serper client
type Option func(*SerperClient)

// WithBaseURL overrides the default API base URL
func WithBaseURL(url string) Option {
	return func(c *SerperClient) {
		c.baseURL = url
	}
}

// WithHTTPClient overrides the default http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *SerperClient) {
		c.http = hc
	}
}

// SerperClient queries Serper.dev for buying-intent signals. It implements
// core.SignalSource.
type SerperClient struct {
	apiKey  string
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

// NewSerperClient creates a Serper.dev search client
func NewSerperClient(apiKey string, logger *zap.Logger, opts ...Option) *SerperClient {
	c := &SerperClient{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http: &http.Client{
			Timeout: 15 * time.Second,
		},
		logger: logger,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

type searchRequest struct {
	Q           string `json:"q"`
	GL          string `json:"gl"`
	HL          string `json:"hl"`
	Autocorrect bool   `json:"autocorrect"`
}

type searchResponse struct {
	Organic []organicResult `json:"organic"`
}

type organicResult struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
}

// Search issues one query scoped to São Paulo purchase-intent discussions
// and maps the organic results into raw signals
func (c *SerperClient) Search(ctx context.Context, query string) ([]core.RawSignal, error) {
	payload := searchRequest{
		Q:           fmt.Sprintf("%s \"são paulo\" (comentários OR fórum OR recomendação)", query),
		GL:          "br",
		HL:          "pt-br",
		Autocorrect: true,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("serper: failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/search", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("serper: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-KEY", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("serper: failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("serper: failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("serper: unexpected status %d: %s", resp.StatusCode, string(respBody))
	}

	var result searchResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("serper: failed to unmarshal response: %w", err)
	}

	signals := make([]core.RawSignal, 0, len(result.Organic))
	now := time.Now()
	for _, item := range result.Organic {
		signals = append(signals, core.RawSignal{
			Source:       "google_web",
			URL:          item.Link,
			AuthorHandle: "Web User",
			Text:         fmt.Sprintf("%s: %s", item.Title, item.Snippet),
			Timestamp:    now,
			RawMetadata:  map[string]any{"title": item.Title},
		})
	}

	c.logger.Debug("Serper search completed",
		zap.String("query", query),
		zap.Int("results", len(signals)))

	return signals, nil
}
