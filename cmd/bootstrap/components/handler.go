package components

import (
	"servicemarket/internal/handler"
	"servicemarket/internal/handler/api"
	"servicemarket/internal/handler/middleware"
	"servicemarket/internal/usecase/commands"
	"servicemarket/internal/usecase/queries"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		newAuthHandler,
		newBookingHandler,
		newAddressHandler,
		newSlotHandler,
		newReviewHandler,
		middleware.NewAuthMiddleware,
		middleware.NewMetrics,
		newHandlers,
	),
	fx.Invoke(handler.NewRouter),
)

func newAuthHandler(auth *commands.AuthCommand, users *queries.UserQueryService) *api.AuthHandler {
	return api.NewAuthHandler(auth, users)
}

func newBookingHandler(
	creator *commands.CreateBookingCommand,
	status *commands.BookingStatusCommand,
	reader *queries.BookingQueryService,
	estimator *queries.EstimateService,
) *api.BookingHandler {
	return api.NewBookingHandler(creator, status, reader, estimator)
}

func newAddressHandler(creator *commands.CreateAddressCommand, reader *queries.AddressQueryService) *api.AddressHandler {
	return api.NewAddressHandler(creator, reader)
}

func newSlotHandler(generator *commands.GenerateSlotsCommand, reader *queries.SlotQueryService) *api.SlotHandler {
	return api.NewSlotHandler(generator, reader)
}

func newReviewHandler(creator *commands.CreateReviewCommand, reader *queries.ReviewQueryService) *api.ReviewHandler {
	return api.NewReviewHandler(creator, reader)
}

func newHandlers(
	auth *api.AuthHandler,
	booking *api.BookingHandler,
	address *api.AddressHandler,
	slot *api.SlotHandler,
	review *api.ReviewHandler,
) handler.Handlers {
	return handler.Handlers{
		Auth:    auth,
		Booking: booking,
		Address: address,
		Slot:    slot,
		Review:  review,
	}
}
