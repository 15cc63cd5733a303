package commands

import (
	"context"
	"time"

	"servicemarket/internal/domain/booking"
	"servicemarket/internal/domain/slot"
	"servicemarket/internal/infra"
	"servicemarket/internal/pkg/clock"
	"servicemarket/internal/pkg/errs"
	"servicemarket/internal/usecase/shared"

	"github.com/google/uuid"
)

type UpdateStatusInput struct {
	UserID    uuid.UUID // acting professional's user id
	BookingID uuid.UUID
	ToStatus  booking.Status
	// Reason is required when ToStatus is CANCELLED.
	Reason string
}

type CancelBookingInput struct {
	CustomerID uuid.UUID
	BookingID  uuid.UUID
	Reason     string
}

// BookingStatusCommand drives the booking state machine. Every change
// locks the booking row, applies the domain transition, persists it, and
// moves the calendar slot to the state the new status implies, all in one
// transaction.
type BookingStatusCommand struct {
	uow     shared.UnitOfWork
	clock   clock.Clock
	minLead time.Duration
}

func NewBookingStatusCommand(uow shared.UnitOfWork, clk clock.Clock, minLead time.Duration) *BookingStatusCommand {
	return &BookingStatusCommand{uow: uow, clock: clk, minLead: minLead}
}

func (c *BookingStatusCommand) UpdateByProfessional(ctx context.Context, in UpdateStatusInput) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		pro, err := tx.Reads().ProfessionalByUserID(ctx, in.UserID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, ErrProfessionalNotFound)
			}
			return err
		}

		b, err := tx.Bookings().FindByIDForUpdate(ctx, in.BookingID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, ErrBookingNotFound)
			}
			return err
		}
		if !b.IsAssignedTo(pro.ID) {
			return ErrBookingNotOwned
		}

		if err := b.TransitionByProfessional(in.ToStatus, in.Reason, c.clock.Now()); err != nil {
			return err
		}

		return c.persist(ctx, tx, b)
	})
}

func (c *BookingStatusCommand) CancelByCustomer(ctx context.Context, in CancelBookingInput) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := tx.Bookings().FindByIDForUpdate(ctx, in.BookingID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, ErrBookingNotFound)
			}
			return err
		}
		if !b.IsOwnedByCustomer(in.CustomerID) {
			return ErrBookingNotOwned
		}

		if err := b.CancelByCustomer(in.Reason, c.clock.Now(), c.minLead); err != nil {
			return err
		}

		return c.persist(ctx, tx, b)
	})
}

func (c *BookingStatusCommand) persist(ctx context.Context, tx shared.Tx, b *booking.Booking) error {
	if err := tx.Bookings().UpdateStatus(ctx, b); err != nil {
		return err
	}
	return tx.Slots().SyncForBookingStatus(
		ctx,
		b.ProfessionalID(),
		b.ScheduledAt(),
		slot.StateForBookingStatus(b.Status()),
	)
}
