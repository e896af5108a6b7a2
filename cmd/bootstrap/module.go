package bootstrap

import (
	"access-scheduler/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	DBModule,
	CacheModule,
	components.RepositoryModule,
	components.UseCaseModule,
	components.HandlerModule,
)
