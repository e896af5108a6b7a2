package bootstrap

import (
	"context"

	"access-scheduler/internal/infra/cache"
	"access-scheduler/internal/pkg/config"
	"access-scheduler/internal/usecase/commands"
	"access-scheduler/internal/usecase/queries"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var CacheModule = fx.Module("cache",
	fx.Provide(
		fx.Annotate(
			NewCacheStore,
			fx.As(new(queries.AvailabilityCache)),
			fx.As(new(commands.CacheInvalidator)),
		),
	),
)

// NewCacheStore wires the Redis-backed availability cache, or a noop store
// when REDIS_ADDR is unset.
func NewCacheStore(lc fx.Lifecycle, cfg config.Config) cache.Store {
	if cfg.Redis.Addr == "" {
		return cache.NewNoop()
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})

	return cache.NewAvailabilityCache(client, cfg.Redis.TTL)
}
