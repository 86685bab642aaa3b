package components

import (
	"stayhub/internal/domain/booking"
	"stayhub/internal/pkg/clock"
	"stayhub/internal/pkg/config"
	"stayhub/internal/usecase/commands"
	"stayhub/internal/usecase/queries"

	"github.com/shopspring/decimal"
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
		booking.NewRandomReferenceGenerator,
		fx.As(new(booking.ReferenceGenerator)),
	),
	NewFeePolicy,
)

// NewFeePolicy maps the validated fee config onto the matching policy.
func NewFeePolicy(cfg config.Config) booking.FeePolicy {
	value, err := decimal.NewFromString(cfg.Fee.Value)
	if err != nil {
		panic("invalid FEE_VALUE: " + err.Error())
	}
	if cfg.Fee.Mode == "flat" {
		return booking.FlatFeePolicy{Amount: value}
	}
	return booking.PercentFeePolicy{Percent: value}
}

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewReservationQueries,
		queries.NewAvailabilityQueries,
	),
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		NewBookingCommands,
		commands.NewAvailabilityCommands,
	),
)

func NewBookingCommands(
	cfg config.Config,
	reservationRepo commands.ReservationRepository,
	listingRepo commands.ListingRepository,
	availabilityRepo commands.AvailabilityRepository,
	referenceGen booking.ReferenceGenerator,
	feePolicy booking.FeePolicy,
	notifier commands.ConfirmationNotifier,
	reservationQueries queries.ReservationQueries,
	clk clock.Clock,
) commands.BookingCommands {
	return commands.NewBookingCommands(
		reservationRepo,
		listingRepo,
		availabilityRepo,
		referenceGen,
		feePolicy,
		notifier,
		reservationQueries,
		clk,
		cfg.Booking.MaxReferenceAttempts,
	)
}
