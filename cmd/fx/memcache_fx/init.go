package memcache_fx

import (
	"go.uber.org/fx"

	mem "quill/pkg/memcache"
)

var Module = fx.Provide(provideUsageCounter)

func provideUsageCounter() mem.UsageCounter {
	return mem.NewUsageCounters()
}
