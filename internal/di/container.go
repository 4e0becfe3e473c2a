package di

import (
	"time"

	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/fernandoxavier02/Agente-Comercial-Jetbrains/internal/api"
	"github.com/fernandoxavier02/Agente-Comercial-Jetbrains/internal/config"
	"github.com/fernandoxavier02/Agente-Comercial-Jetbrains/internal/core"
	"github.com/fernandoxavier02/Agente-Comercial-Jetbrains/internal/factory"
	"github.com/fernandoxavier02/Agente-Comercial-Jetbrains/internal/logging"
	"github.com/fernandoxavier02/Agente-Comercial-Jetbrains/internal/utils"
)

// BuildContainer creates and configures a dependency injection container
func BuildContainer() (*dig.Container, error) {
	container := dig.New()

	// Register configuration
	if err := container.Provide(config.New); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(logging.InitLogger); err != nil {
		return nil, err
	}

	// Register text processor
	if err := container.Provide(utils.NewTextProcessor); err != nil {
		return nil, err
	}

	// Register factories
	if err := container.Provide(factory.NewLLMFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewStoreFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewSearchFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewNotifierFactory); err != nil {
		return nil, err
	}

	// Register LLM client
	if err := container.Provide(func(f *factory.LLMFactory) (core.LLMClient, error) {
		return f.CreateLLMClient()
	}); err != nil {
		return nil, err
	}

	// Register lead store
	if err := container.Provide(func(f *factory.StoreFactory) (core.LeadStore, error) {
		return f.CreateLeadStore()
	}); err != nil {
		return nil, err
	}

	// Register signal source (nil when no search key is configured)
	if err := container.Provide(func(f *factory.SearchFactory) core.SignalSource {
		return f.CreateSignalSource()
	}); err != nil {
		return nil, err
	}

	// Register notifier (nil when alerts are disabled)
	if err := container.Provide(func(f *factory.NotifierFactory) core.Notifier {
		return f.CreateNotifier()
	}); err != nil {
		return nil, err
	}

	// Register oracle timeout
	if err := container.Provide(func(cfg *config.Config) (time.Duration, error) {
		return cfg.GetDuration("llm.timeout")
	}); err != nil {
		return nil, err
	}

	// Register clinic scope
	if err := container.Provide(func(cfg *config.Config) int {
		return cfg.GetInt("mission.clinic_id")
	}); err != nil {
		return nil, err
	}

	// Register mission queries
	if err := container.Provide(func(cfg *config.Config, logger *zap.Logger) []string {
		queries := cfg.GetStringSlice("mission.queries")
		logger.Info("Loaded mission queries", zap.Int("count", len(queries)))
		return queries
	}); err != nil {
		return nil, err
	}

	// Register scoring and qualification services
	if err := container.Provide(core.NewLeadScorer); err != nil {
		return nil, err
	}
	if err := container.Provide(core.NewIntentEngine); err != nil {
		return nil, err
	}
	if err := container.Provide(core.NewVisionEngine); err != nil {
		return nil, err
	}
	if err := container.Provide(core.NewCollector); err != nil {
		return nil, err
	}
	if err := container.Provide(core.NewRevenueEstimator); err != nil {
		return nil, err
	}
	if err := container.Provide(core.NewOutreachComposer); err != nil {
		return nil, err
	}
	if err := container.Provide(core.NewTriagePlanner); err != nil {
		return nil, err
	}

	// Register API handler
	if err := container.Provide(api.NewHandler); err != nil {
		return nil, err
	}

	return container, nil
}
