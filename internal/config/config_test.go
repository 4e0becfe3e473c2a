package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := NewFromViper(NewEmptyViper())

	llm := cfg.GetLLM()
	assert.Equal(t, "openrouter", llm.Provider)
	assert.Equal(t, "openai/gpt-4o", llm.Model)
	assert.Equal(t, "openai/gpt-4o", llm.VisionModel)

	timeout, err := cfg.GetDuration("llm.timeout")
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, timeout)

	store := cfg.GetStore()
	assert.Equal(t, "sqlite", store.Type)
	assert.Equal(t, "./data/leads.db", store.SQLitePath)

	assert.Equal(t, "0.0.0.0:8000", cfg.GetString("server.listen_address"))
	assert.Equal(t, 1, cfg.GetInt("mission.clinic_id"))
	assert.NotEmpty(t, cfg.GetStringSlice("mission.queries"))
	assert.False(t, cfg.GetNotifier().Enabled)
}

func TestGetOpenAIProviderSwitch(t *testing.T) {
	v := NewEmptyViper()
	v.Set("openai.api_key", "sk-direct")
	v.Set("openrouter.api_key", "sk-router")
	cfg := NewFromViper(v)

	direct := cfg.GetOpenAI("openai")
	assert.Equal(t, "sk-direct", direct.APIKey)

	router := cfg.GetOpenAI("openrouter")
	assert.Equal(t, "sk-router", router.APIKey)
	assert.Equal(t, "https://openrouter.ai/api/v1", router.BaseURL)

	ollama := cfg.GetOpenAI("ollama")
	assert.Equal(t, "ollama", ollama.APIKey)
	assert.Equal(t, "http://localhost:11434/v1", ollama.BaseURL)
}

func TestGetSerper(t *testing.T) {
	v := NewEmptyViper()
	v.Set("serper.api_key", "serper-key")
	cfg := NewFromViper(v)

	serper := cfg.GetSerper()
	assert.Equal(t, "serper-key", serper.APIKey)
	assert.Equal(t, "https://google.serper.dev", serper.BaseURL)
}

func TestGetDurationInvalid(t *testing.T) {
	v := NewEmptyViper()
	v.Set("llm.timeout", "not-a-duration")
	cfg := NewFromViper(v)

	_, err := cfg.GetDuration("llm.timeout")
	assert.Error(t, err)
}
