package config_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"quill/internal/config"
	"quill/internal/infra"
)

var Module = fx.Provide(
	config.Load,
	provideLogger,
)

func provideLogger(cfg *config.Config) (*zap.Logger, error) {
	return infra.NewLogger(cfg)
}
