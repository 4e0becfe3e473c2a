package factory

import (
	"go.uber.org/zap"

	"github.com/fernandoxavier02/Agente-Comercial-Jetbrains/internal/adapters/search"
	"github.com/fernandoxavier02/Agente-Comercial-Jetbrains/internal/config"
	"github.com/fernandoxavier02/Agente-Comercial-Jetbrains/internal/core"
)

// SearchFactory creates the signal search provider
type SearchFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewSearchFactory creates a new search factory
func NewSearchFactory(cfg *config.Config, logger *zap.Logger) *SearchFactory {
	return &SearchFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateSignalSource returns the configured search provider, or nil when no
// API key is present. A nil provider makes the collector fall back to the
// fixture signals; missing credentials are not an error.
func (f *SearchFactory) CreateSignalSource() core.SignalSource {
	serperCfg := f.cfg.GetSerper()
	if serperCfg.APIKey == "" {
		f.logger.Warn("Serper API key absent, collector will use fixture signals")
		return nil
	}

	opts := []search.Option{}
	if serperCfg.BaseURL != "" {
		opts = append(opts, search.WithBaseURL(serperCfg.BaseURL))
	}
	return search.NewSerperClient(serperCfg.APIKey, f.logger, opts...)
}
