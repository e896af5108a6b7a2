package components

import (
	"access-scheduler/internal/infra/readstore"
	"access-scheduler/internal/infra/repository"
	"access-scheduler/internal/usecase/commands"
	"access-scheduler/internal/usecase/queries"

	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		fx.Annotate(
			repository.NewBookingRepository,
			fx.As(new(commands.BookingRepository)),
		),
		// Read-side store serves the advisory pre-check, lookups and the
		// availability walk.
		fx.Annotate(
			readstore.NewBookingReadStore,
			fx.As(new(commands.BookingReads)),
			fx.As(new(queries.BookingFinder)),
			fx.As(new(queries.BookingLister)),
		),
	),
)
