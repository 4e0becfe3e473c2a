package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/fernandoxavier02/Agente-Comercial-Jetbrains/internal/config"
	"github.com/fernandoxavier02/Agente-Comercial-Jetbrains/internal/core"
	"github.com/fernandoxavier02/Agente-Comercial-Jetbrains/internal/factory"
	"github.com/fernandoxavier02/Agente-Comercial-Jetbrains/internal/logging"
	"github.com/fernandoxavier02/Agente-Comercial-Jetbrains/internal/utils"
)

var (
	// LLM provider flags
	provider    = flag.String("provider", "openrouter", "LLM provider (openai, openrouter, ollama, gemini, bedrock)")
	model       = flag.String("model", "openai/gpt-4o", "Model for text classification")
	visionModel = flag.String("vision-model", "openai/gpt-4o", "Model for visual analysis")
	timeout     = flag.Duration("timeout", 30*time.Second, "Timeout per oracle call")

	// OpenAI-compatible flags
	openaiAPIKey     = flag.String("openai-api-key", "", "API key for OpenAI")
	openrouterAPIKey = flag.String("openrouter-api-key", "", "API key for OpenRouter")
	ollamaBaseURL    = flag.String("ollama-base-url", "http://localhost:11434/v1", "Base URL for Ollama")

	// Gemini flags
	geminiAPIKey = flag.String("gemini-api-key", "", "API key for Google Gemini")

	// Bedrock flags
	bedrockRegion  = flag.String("bedrock-region", "us-east-1", "AWS region for Bedrock")
	bedrockModelID = flag.String("bedrock-model", "anthropic.claude-3-haiku-20240307-v1:0", "Bedrock model ID")

	// Mission flags
	serperAPIKey = flag.String("serper-api-key", "", "Serper.dev API key (fixture signals when empty)")
	dbPath       = flag.String("db-path", "./data/leads.db", "SQLite database path")
	clinicID     = flag.Int("clinic-id", 1, "Clinic the captured leads belong to")
	queries      = flag.String("queries", "", "Comma-separated mission queries (configured defaults when empty)")

	verbose    = flag.Bool("verbose", false, "Enable verbose logging")
	jsonLog    = flag.Bool("json-log", false, "Output logs in JSON format")
	configFile = flag.String("config", "", "Path to config file (overrides command line flags)")
)

func main() {
	flag.Parse()

	var cfg *config.Config
	var err error

	// Initialize logger
	logger, err := logging.InitConsoleLogger(*verbose, *jsonLog)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// Load configuration from file if specified
	if *configFile != "" {
		cfg, err = config.New()
		if err != nil {
			logger.Fatal("Failed to load configuration", zap.Error(err))
		}
		logger.Info("Loaded configuration from file", zap.String("file", cfg.GetViper().ConfigFileUsed()))
	} else {
		// Create config from command line flags
		cfg = createConfigFromFlags()
	}

	textProcessor := utils.NewTextProcessor(logger)

	// Initialize oracle client
	llmFactory := factory.NewLLMFactory(cfg, logger, textProcessor)
	llmClient, err := llmFactory.CreateLLMClient()
	if err != nil {
		logger.Fatal("Failed to create LLM client", zap.Error(err))
	}

	// Initialize lead store
	storeFactory := factory.NewStoreFactory(cfg, logger)
	leadStore, err := storeFactory.CreateLeadStore()
	if err != nil {
		logger.Fatal("Failed to create lead store", zap.Error(err))
	}

	// Initialize signal source (nil falls back to fixture signals)
	searchFactory := factory.NewSearchFactory(cfg, logger)
	signalSource := searchFactory.CreateSignalSource()

	oracleTimeout, err := cfg.GetDuration("llm.timeout")
	if err != nil {
		logger.Fatal("Invalid oracle timeout", zap.Error(err))
	}

	scorer := core.NewLeadScorer()
	intent := core.NewIntentEngine(llmClient, scorer, oracleTimeout, logger)
	vision := core.NewVisionEngine(llmClient, oracleTimeout, logger)
	collector := core.NewCollector(intent, vision, scorer, leadStore,
		signalSource, nil, cfg.GetInt("mission.clinic_id"), logger)

	missionQueries := cfg.GetStringSlice("mission.queries")

	fmt.Printf("\n=== Missão de Captura Elite ===\n")
	fmt.Printf("Provider: %s\n", cfg.GetString("llm.provider"))
	fmt.Printf("Model: %s\n", cfg.GetString("llm.model"))
	fmt.Printf("Queries: %d\n", len(missionQueries))
	fmt.Printf("\n")

	startTime := time.Now()
	results := collector.FetchAndProcess(context.Background(), missionQueries)
	duration := time.Since(startTime)

	fmt.Printf("=== Results ===\n")
	fmt.Printf("Leads qualified: %d\n", len(results))
	fmt.Printf("Processing time: %v\n", duration)

	// Print the lead ranking
	top, err := leadStore.TopLeads(context.Background(), 10)
	if err != nil {
		logger.Error("Failed to load lead ranking", zap.Error(err))
	} else {
		fmt.Printf("\n=== Ranking ===\n")
		for i, lead := range top {
			marker := ""
			if lead.Scores.LeadScore > core.VIPScoreThreshold {
				marker = " 💎 VIP"
			}
			fmt.Printf("%d. [%.1f] %s / %s%s\n",
				i+1, lead.Scores.LeadScore, lead.Labels.Tier, lead.Labels.PainPoint, marker)
		}
	}

	// Close any resources that need closing
	if closer, ok := llmClient.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			logger.Error("Failed to close LLM client", zap.Error(err))
		}
	}
	if err := leadStore.Close(); err != nil {
		logger.Error("Failed to close lead store", zap.Error(err))
	}
}

// createConfigFromFlags creates a configuration from command line flags
func createConfigFromFlags() *config.Config {
	v := config.NewEmptyViper()

	// Set oracle provider and models
	v.Set("llm.provider", *provider)
	v.Set("llm.model", *model)
	v.Set("llm.timeout", timeout.String())
	v.Set("vision.model", *visionModel)

	// Set provider-specific configuration
	switch *provider {
	case "openai":
		v.Set("openai.api_key", *openaiAPIKey)
	case "openrouter":
		v.Set("openrouter.api_key", *openrouterAPIKey)
	case "ollama":
		v.Set("ollama.base_url", *ollamaBaseURL)
	case "gemini":
		v.Set("gemini.api_key", *geminiAPIKey)
		v.Set("gemini.model_name", *model)
	case "bedrock":
		v.Set("bedrock.region", *bedrockRegion)
		v.Set("bedrock.model_id", *bedrockModelID)
	}

	// Set mission configuration
	v.Set("serper.api_key", *serperAPIKey)
	v.Set("store.type", "sqlite")
	v.Set("store.sqlite_path", *dbPath)
	v.Set("mission.clinic_id", *clinicID)

	if *queries != "" {
		parts := strings.Split(*queries, ",")
		for i, q := range parts {
			parts[i] = strings.TrimSpace(q)
		}
		v.Set("mission.queries", parts)
	}

	return config.NewFromViper(v)
}
