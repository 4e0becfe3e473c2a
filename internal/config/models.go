package config

// LLMConfig represents the configuration for the reasoning oracle
type LLMConfig struct {
	Provider    string
	Model       string
	VisionModel string
}

// OpenAIConfig represents the configuration for OpenAI-compatible providers
// (OpenAI itself, OpenRouter and Ollama share the same wire protocol)
type OpenAIConfig struct {
	APIKey      string
	BaseURL     string
	MaxTokens   int
	Temperature float32
	TopP        float32
	MaxTextSize int
}

// GeminiConfig represents the configuration for Google Gemini
type GeminiConfig struct {
	APIKey      string
	ModelName   string
	VisionModel string
	MaxTokens   int
	Temperature float32
	TopP        float32
	MaxTextSize int
}

// BedrockConfig represents the configuration for Amazon Bedrock
type BedrockConfig struct {
	Region      string
	ModelID     string
	MaxTokens   int
	Temperature float32
	TopP        float32
	MaxTextSize int
}

// SerperConfig represents the configuration for the Serper.dev search provider
type SerperConfig struct {
	APIKey  string
	BaseURL string
}

// StoreConfig represents the persistence configuration
type StoreConfig struct {
	Type       string
	SQLitePath string
	MySQLDSN   string
}

// NotifierConfig represents the SMTP alert configuration
type NotifierConfig struct {
	Enabled     bool
	SMTPAddress string
	Username    string
	Password    string
	From        string
	To          []string
}

// GetLLM returns the oracle configuration
func (c *Config) GetLLM() LLMConfig {
	return LLMConfig{
		Provider:    c.GetString("llm.provider"),
		Model:       c.GetString("llm.model"),
		VisionModel: c.GetString("vision.model"),
	}
}

// GetOpenAI returns the OpenAI-compatible provider configuration for the
// selected provider identifier
func (c *Config) GetOpenAI(provider string) OpenAIConfig {
	cfg := OpenAIConfig{
		APIKey:      c.GetString("openai.api_key"),
		BaseURL:     c.GetString("openai.base_url"),
		MaxTokens:   c.GetInt("openai.max_tokens"),
		Temperature: float32(c.GetFloat64("openai.temperature")),
		TopP:        float32(c.GetFloat64("openai.top_p")),
		MaxTextSize: c.GetInt("openai.max_text_size"),
	}
	switch provider {
	case "openrouter":
		cfg.APIKey = c.GetString("openrouter.api_key")
		cfg.BaseURL = c.GetString("openrouter.base_url")
	case "ollama":
		// Ollama does not require a key
		cfg.APIKey = "ollama"
		cfg.BaseURL = c.GetString("ollama.base_url")
	}
	return cfg
}

// GetGemini returns the Gemini configuration
func (c *Config) GetGemini() GeminiConfig {
	return GeminiConfig{
		APIKey:      c.GetString("gemini.api_key"),
		ModelName:   c.GetString("gemini.model_name"),
		VisionModel: c.GetString("vision.model"),
		MaxTokens:   c.GetInt("gemini.max_tokens"),
		Temperature: float32(c.GetFloat64("gemini.temperature")),
		TopP:        float32(c.GetFloat64("gemini.top_p")),
		MaxTextSize: c.GetInt("gemini.max_text_size"),
	}
}

// GetBedrock returns the Bedrock configuration
func (c *Config) GetBedrock() BedrockConfig {
	return BedrockConfig{
		Region:      c.GetString("bedrock.region"),
		ModelID:     c.GetString("bedrock.model_id"),
		MaxTokens:   c.GetInt("bedrock.max_tokens"),
		Temperature: float32(c.GetFloat64("bedrock.temperature")),
		TopP:        float32(c.GetFloat64("bedrock.top_p")),
		MaxTextSize: c.GetInt("bedrock.max_text_size"),
	}
}

// GetSerper returns the search provider configuration
func (c *Config) GetSerper() SerperConfig {
	return SerperConfig{
		APIKey:  c.GetString("serper.api_key"),
		BaseURL: c.GetString("serper.base_url"),
	}
}

// GetStore returns the persistence configuration
func (c *Config) GetStore() StoreConfig {
	return StoreConfig{
		Type:       c.GetString("store.type"),
		SQLitePath: c.GetString("store.sqlite_path"),
		MySQLDSN:   c.GetString("store.mysql_dsn"),
	}
}

// GetNotifier returns the SMTP alert configuration
func (c *Config) GetNotifier() NotifierConfig {
	return NotifierConfig{
		Enabled:     c.GetBool("notifier.enabled"),
		SMTPAddress: c.GetString("notifier.smtp_address"),
		Username:    c.GetString("notifier.username"),
		Password:    c.GetString("notifier.password"),
		From:        c.GetString("notifier.from"),
		To:          c.GetStringSlice("notifier.to"),
	}
}
