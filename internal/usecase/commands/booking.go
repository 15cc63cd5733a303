package commands

import (
	"context"

	"servicemarket/internal/domain/booking"
	"servicemarket/internal/domain/pricing"
	"servicemarket/internal/infra"
	"servicemarket/internal/pkg/errs"
	"servicemarket/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreateBookingInput struct {
	CustomerID     uuid.UUID
	ProfessionalID uuid.UUID
	ServiceID      uuid.UUID
	SlotID         uuid.UUID
	AddressID      uuid.UUID
	AddonIDs       []uuid.UUID
	Notes          *string
}

type CreateBookingResult struct {
	BookingID uuid.UUID
	// Replayed is true when an idempotent retry matched an existing live
	// booking; no new state was written.
	Replayed bool
}

// CreateBookingCommand is the booking coordinator. All checks and writes of
// one request run inside a single transaction, so a booking either fully
// exists (slot claimed, row inserted, addons attached) or not at all.
type CreateBookingCommand struct {
	uow shared.UnitOfWork
}

func NewCreateBookingCommand(uow shared.UnitOfWork) *CreateBookingCommand {
	return &CreateBookingCommand{uow: uow}
}

func (c *CreateBookingCommand) Execute(ctx context.Context, in CreateBookingInput) (*CreateBookingResult, error) {
	var result CreateBookingResult

	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		reads := tx.Reads()

		// The slot gives us the scheduled window, which the idempotency
		// key is derived from.
		sl, err := reads.SlotByID(ctx, in.SlotID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, ErrSlotNotFound)
			}
			return err
		}
		if sl.ProfessionalID != in.ProfessionalID {
			return ErrSlotNotFound
		}

		key := booking.DeriveIdempotencyKey(in.CustomerID, in.ProfessionalID, in.ServiceID, in.SlotID, sl.StartAt)

		existing, err := reads.BookingByIdempotencyKey(ctx, key)
		switch {
		case err == nil:
			if existing.Status().IsReplayable() {
				result = CreateBookingResult{BookingID: existing.ID(), Replayed: true}
				return nil
			}
			return errs.Mark(
				errs.Newf("idempotency key matches a %s booking", existing.Status()),
				ErrBookingAlreadyProcessed,
			)
		case !infra.IsKind(err, infra.KindNotFound):
			return err
		}

		addr, err := reads.AddressByID(ctx, in.AddressID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, ErrAddressNotFound)
			}
			return err
		}
		if addr.UserID != in.CustomerID {
			return ErrForbiddenAddress
		}

		svc, err := reads.OfferedService(ctx, in.ProfessionalID, in.ServiceID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, ErrServiceNotOffered)
			}
			return err
		}
		addons := make([]pricing.OfferedAddon, 0, len(in.AddonIDs))
		for _, addonID := range in.AddonIDs {
			addon, err := reads.OfferedAddon(ctx, in.ProfessionalID, addonID)
			if err != nil {
				if infra.IsKind(err, infra.KindNotFound) {
					return errs.Mark(err, ErrAddonNotOffered)
				}
				return err
			}
			addons = append(addons, *addon)
		}

		// Point of contention: exactly one concurrent request for this
		// slot gets past here.
		claimed, err := tx.Slots().Claim(ctx, in.SlotID, in.ProfessionalID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, ErrSlotConflict)
			}
			return err
		}

		quote := pricing.BuildQuote(*svc, addons)

		b, err := booking.NewBooking(
			in.CustomerID, in.ProfessionalID, in.ServiceID, in.AddressID, in.SlotID,
			claimed.StartAt, claimed.EndAt,
			quote.TotalPrice,
			key, in.Notes,
		)
		if err != nil {
			return err
		}

		bookingID, err := tx.Bookings().Create(ctx, b)
		if err != nil {
			// A concurrent request with the same key can slip past the
			// replay check; the unique index is the backstop.
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return errs.Mark(err, ErrBookingAlreadyProcessed)
			}
			return err
		}

		for _, addonID := range in.AddonIDs {
			if err := tx.Bookings().UpsertAddon(ctx, bookingID, addonID); err != nil {
				return err
			}
		}

		result = CreateBookingResult{BookingID: bookingID}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}
