package factory

import (
	"go.uber.org/zap"

	"github.com/fernandoxavier02/Agente-Comercial-Jetbrains/internal/adapters/notify"
	"github.com/fernandoxavier02/Agente-Comercial-Jetbrains/internal/config"
	"github.com/fernandoxavier02/Agente-Comercial-Jetbrains/internal/core"
)

// NotifierFactory creates the VIP alert notifier
type NotifierFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewNotifierFactory creates a new notifier factory
func NewNotifierFactory(cfg *config.Config, logger *zap.Logger) *NotifierFactory {
	return &NotifierFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateNotifier returns the configured notifier, or nil when alerts are
// disabled
func (f *NotifierFactory) CreateNotifier() core.Notifier {
	notifierCfg := f.cfg.GetNotifier()
	if !notifierCfg.Enabled {
		return nil
	}
	return notify.NewSMTPNotifier(
		notifierCfg.SMTPAddress,
		notifierCfg.Username,
		notifierCfg.Password,
		notifierCfg.From,
		notifierCfg.To,
		f.logger,
	)
}
