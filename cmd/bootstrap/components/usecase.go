package components

import (
	"servicemarket/internal/pkg/clock"
	"servicemarket/internal/pkg/config"
	"servicemarket/internal/usecase"
	"servicemarket/internal/usecase/commands"
	"servicemarket/internal/usecase/queries"
	"servicemarket/internal/usecase/shared"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseCommandsModule,
	usecaseQueriesModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	fx.Annotate(
		usecase.NewJWTTokenValidator,
		fx.As(new(usecase.TokenValidator)),
	),
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewAuthCommand,
		commands.NewCreateBookingCommand,
		newBookingStatusCommand,
		commands.NewCreateReviewCommand,
		commands.NewCreateAddressCommand,
		newGenerateSlotsCommand,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewBookingQueryService,
		queries.NewEstimateService,
		queries.NewSlotQueryService,
		queries.NewReviewQueryService,
		queries.NewAddressQueryService,
		queries.NewUserQueryService,
	),
)

func newBookingStatusCommand(u shared.UnitOfWork, clk clock.Clock, cfg config.Config) *commands.BookingStatusCommand {
	return commands.NewBookingStatusCommand(u, clk, cfg.Booking.CancellationLeadTime)
}

func newGenerateSlotsCommand(u shared.UnitOfWork, clk clock.Clock, cfg config.Config) *commands.GenerateSlotsCommand {
	return commands.NewGenerateSlotsCommand(u, clk, cfg.Booking.SlotHorizonDays)
}
