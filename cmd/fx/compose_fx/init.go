package compose_fx

import (
	"go.uber.org/fx"

	"quill/internal/config"
	"quill/internal/services"
	mem "quill/pkg/memcache"
)

var Module = fx.Provide(
	provideGuestLimiter,
	services.NewComposeService,
	services.NewStyleService)

func provideGuestLimiter(counter mem.UsageCounter, cfg *config.Config) *services.GuestLimiter {
	return services.NewGuestLimiter(counter, cfg.Guest)
}
