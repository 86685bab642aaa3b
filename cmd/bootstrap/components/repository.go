package components

import (
	"stayhub/internal/infra/readstore"
	repo_impl "stayhub/internal/infra/repository"
	"stayhub/internal/usecase/commands"
	"stayhub/internal/usecase/queries"

	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		// Write side
		fx.Annotate(
			repo_impl.NewReservationRepository,
			fx.As(new(commands.ReservationRepository)),
		),
		fx.Annotate(
			repo_impl.NewListingRepository,
			fx.As(new(commands.ListingRepository)),
		),
		fx.Annotate(
			repo_impl.NewAvailabilityRepository,
			fx.As(new(commands.AvailabilityRepository)),
		),
		// Read side
		fx.Annotate(
			readstore.NewReservationReadStore,
			fx.As(new(queries.ReservationReadStore)),
		),
		fx.Annotate(
			readstore.NewAvailabilityReadStore,
			fx.As(new(queries.AvailabilityReadStore)),
		),
	),
)
