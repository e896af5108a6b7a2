package components

import (
	"access-scheduler/internal/pkg/clock"
	"access-scheduler/internal/pkg/timezone"
	"access-scheduler/internal/usecase/commands"
	"access-scheduler/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	fx.Annotate(
		timezone.NewSystemResolver,
		fx.As(new(timezone.Resolver)),
	),
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewBookingCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewBookingQueries,
		fx.Annotate(
			queries.NewAvailabilityQueries,
			fx.As(new(queries.AvailabilityQueries)),
			fx.As(new(commands.AvailabilityService)),
		),
	),
)
