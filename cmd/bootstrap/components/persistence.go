package components

import (
	"servicemarket/internal/infra/readstore"
	"servicemarket/internal/infra/uow"
	"servicemarket/internal/usecase/commands"
	"servicemarket/internal/usecase/queries"
	"servicemarket/internal/usecase/shared"

	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		fx.Annotate(
			uow.NewPostgresUnitOfWork,
			fx.As(new(shared.UnitOfWork)),
		),
		fx.Annotate(
			readstore.NewBookingReadStore,
			fx.As(new(queries.BookingReadStore)),
		),
		fx.Annotate(
			readstore.NewProfessionalReadStore,
			fx.As(new(queries.ProfessionalReadStore)),
		),
		fx.Annotate(
			readstore.NewCatalogReadStore,
			fx.As(new(queries.CatalogReadStore)),
		),
		fx.Annotate(
			readstore.NewSlotReadStore,
			fx.As(new(queries.SlotReadStore)),
		),
		fx.Annotate(
			readstore.NewReviewReadStore,
			fx.As(new(queries.ReviewReadStore)),
		),
		fx.Annotate(
			readstore.NewAddressReadStore,
			fx.As(new(queries.AddressReadStore)),
		),
		fx.Annotate(
			readstore.NewUserReadStore,
			fx.As(new(commands.CredentialReadStore)),
			fx.As(new(queries.UserReadStore)),
		),
	),
)
