package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	gopenai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fernandoxavier02/Agente-Comercial-Jetbrains/internal/utils"
)

func completionResponse(content string) string {
	resp := map[string]any{
		"id":     "chatcmpl-test",
		"object": "chat.completion",
		"model":  "openai/gpt-4o",
		"choices": []map[string]any{
			{
				"index":         0,
				"finish_reason": "stop",
				"message":       map[string]any{"role": "assistant", "content": content},
			},
		},
	}
	b, _ := json.Marshal(resp)
	return string(b)
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := gopenai.DefaultConfig("test-key")
	cfg.BaseURL = server.URL + "/v1"
	logger := zap.NewNop()
	return NewClient(gopenai.NewClientWithConfig(cfg),
		"openai/gpt-4o", "openai/gpt-4o", 1000, 0.1, 0.9, 4096,
		logger, utils.NewTextProcessor(logger))
}

func TestClassifyText(t *testing.T) {
	var gotReq gopenai.ChatCompletionRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(completionResponse(`{
			"pain_point": {"label": "flacidez", "confidence": 0.9},
			"intent_stage": {"label": "decisão", "confidence": 0.8},
			"maturity": {"label": "experiente", "score": 75},
			"is_sp_region": true,
			"is_elite_neighborhood": true,
			"detected_location": "Itaim Bibi",
			"scores": {"fit": 85, "intent": 90, "urgency": 60, "risk": 5, "social_status_signal": 70},
			"subliminal_signals": [], "evidence": [], "risk_flags": []
		}`)))
	})

	c, err := client.ClassifyText(context.Background(), "quero fazer ultraformer no itaim")
	require.NoError(t, err)

	require.Len(t, gotReq.Messages, 2)
	assert.Equal(t, "system", gotReq.Messages[0].Role)
	assert.Contains(t, gotReq.Messages[1].Content, "quero fazer ultraformer no itaim")
	assert.Equal(t, "openai/gpt-4o", gotReq.Model)
	require.NotNil(t, gotReq.ResponseFormat)
	assert.Equal(t, gopenai.ChatCompletionResponseFormatTypeJSONObject, gotReq.ResponseFormat.Type)

	assert.Equal(t, "flacidez", c.PainPoint.Label)
	assert.True(t, c.IsEliteNeighborhood)
	assert.Equal(t, 75.0, c.Scores.Maturity)
}

func TestClassifyTextExtractsWrappedJSON(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(completionResponse(
			"Segue a análise:\n```json\n{\"pain_point\": {\"label\": \"melasma\", \"confidence\": 0.6}, \"scores\": {\"fit\": 40}}\n```")))
	})

	c, err := client.ClassifyText(context.Background(), "tenho manchas no rosto")
	require.NoError(t, err)
	assert.Equal(t, "melasma", c.PainPoint.Label)
	assert.True(t, c.IsSPRegion)
}

func TestClassifyTextOracleError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error": {"message": "rate limited"}}`, http.StatusTooManyRequests)
	})

	_, err := client.ClassifyText(context.Background(), "texto")
	assert.Error(t, err)
}

func TestAnalyzeImage(t *testing.T) {
	var gotReq gopenai.ChatCompletionRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(completionResponse(`{
			"visual_fit": 95,
			"asset_audit": {"high_value_objects": ["Rolex"], "luxury_environment": "iate", "brand_detection": []},
			"socioeconomic_tier": "VIP",
			"detected_luxury_indicators": ["relógio de luxo"],
			"justification": "patrimônio alto"
		}`)))
	})

	v, err := client.AnalyzeImage(context.Background(), "https://example.com/p.jpg")
	require.NoError(t, err)

	require.Len(t, gotReq.Messages, 1)
	require.Len(t, gotReq.Messages[0].MultiContent, 2)
	assert.Equal(t, gopenai.ChatMessagePartTypeImageURL, gotReq.Messages[0].MultiContent[1].Type)
	assert.Equal(t, "https://example.com/p.jpg", gotReq.Messages[0].MultiContent[1].ImageURL.URL)

	assert.Equal(t, 95.0, v.VisualFit)
	assert.Equal(t, "VIP", v.SocioeconomicTier)
}

func TestModelName(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {})
	assert.Equal(t, "openai/gpt-4o", client.ModelName())
}
