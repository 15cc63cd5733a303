//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"servicemarket/internal/domain/booking"
	"servicemarket/internal/domain/slot"
	"servicemarket/internal/pkg/clock"
	"servicemarket/internal/usecase/commands"
	"servicemarket/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cancellationLeadTime = 3 * time.Hour

type statusFixture struct {
	customerID     uuid.UUID
	userID         uuid.UUID // professional's account
	professionalID uuid.UUID
	bookingID      uuid.UUID
	scheduledAt    time.Time

	tx  *fakeTx
	clk *clock.FixedClock
	cmd *commands.BookingStatusCommand
}

func newStatusFixture(t *testing.T, status booking.Status) *statusFixture {
	t.Helper()

	now := time.Date(2026, 9, 12, 9, 0, 0, 0, time.UTC)
	f := &statusFixture{
		customerID:     uuid.New(),
		userID:         uuid.New(),
		professionalID: uuid.New(),
		bookingID:      uuid.New(),
		scheduledAt:    now.Add(4 * time.Hour),
		tx:             newFakeTx(),
		clk:            clock.NewFixedClock(now),
	}

	f.tx.reads.professional = &shared.ProfessionalSnapshot{
		ID:     f.professionalID,
		UserID: f.userID,
	}
	f.tx.bookings.locked = booking.ReconstructBooking(
		f.bookingID, f.customerID, f.professionalID, uuid.New(), uuid.New(), uuid.New(),
		f.scheduledAt, f.scheduledAt.Add(time.Hour),
		mustMoney(t, "500.00"),
		status,
		nil, nil,
		"key", nil,
		now.Add(-time.Hour), now.Add(-time.Hour),
	)

	f.cmd = commands.NewBookingStatusCommand(&fakeUow{tx: f.tx}, f.clk, cancellationLeadTime)
	return f
}

func TestBookingStatusCommand_UpdateByProfessional(t *testing.T) {
	ctx := context.Background()

	t.Run("confirms a pending booking and books the slot", func(t *testing.T) {
		f := newStatusFixture(t, booking.StatusPending)

		err := f.cmd.UpdateByProfessional(ctx, commands.UpdateStatusInput{
			UserID:    f.userID,
			BookingID: f.bookingID,
			ToStatus:  booking.StatusConfirmed,
		})

		require.NoError(t, err)
		require.NotNil(t, f.tx.bookings.updated)
		assert.Equal(t, booking.StatusConfirmed, f.tx.bookings.updated.Status())
		assert.Equal(t, 1, f.tx.slots.syncCalls)
		assert.Equal(t, slot.StateBooked, f.tx.slots.syncedState)
		assert.Equal(t, f.professionalID, f.tx.slots.syncedPro)
		assert.Equal(t, f.scheduledAt, f.tx.slots.syncedStart)
	})

	t.Run("completes a confirmed booking and frees the slot", func(t *testing.T) {
		f := newStatusFixture(t, booking.StatusConfirmed)

		err := f.cmd.UpdateByProfessional(ctx, commands.UpdateStatusInput{
			UserID:    f.userID,
			BookingID: f.bookingID,
			ToStatus:  booking.StatusCompleted,
		})

		require.NoError(t, err)
		assert.Equal(t, booking.StatusCompleted, f.tx.bookings.updated.Status())
		require.NotNil(t, f.tx.bookings.updated.CompletedAt())
		assert.Equal(t, f.clk.Now(), *f.tx.bookings.updated.CompletedAt())
		assert.Equal(t, slot.StateAvailable, f.tx.slots.syncedState)
	})

	t.Run("cannot complete a booking that was never confirmed", func(t *testing.T) {
		f := newStatusFixture(t, booking.StatusPending)

		err := f.cmd.UpdateByProfessional(ctx, commands.UpdateStatusInput{
			UserID:    f.userID,
			BookingID: f.bookingID,
			ToStatus:  booking.StatusCompleted,
		})

		assert.ErrorIs(t, err, booking.ErrInvalidStatusTransition)
		assert.Nil(t, f.tx.bookings.updated)
		assert.Zero(t, f.tx.slots.syncCalls)
	})

	t.Run("cancellation requires a reason", func(t *testing.T) {
		f := newStatusFixture(t, booking.StatusPending)

		err := f.cmd.UpdateByProfessional(ctx, commands.UpdateStatusInput{
			UserID:    f.userID,
			BookingID: f.bookingID,
			ToStatus:  booking.StatusCancelled,
		})

		assert.ErrorIs(t, err, booking.ErrEmptyCancellationReason)
	})

	t.Run("booking assigned to another professional", func(t *testing.T) {
		f := newStatusFixture(t, booking.StatusPending)
		f.tx.reads.professional.ID = uuid.New()

		err := f.cmd.UpdateByProfessional(ctx, commands.UpdateStatusInput{
			UserID:    f.userID,
			BookingID: f.bookingID,
			ToStatus:  booking.StatusConfirmed,
		})

		assert.ErrorIs(t, err, commands.ErrBookingNotOwned)
	})

	t.Run("actor without a professional profile", func(t *testing.T) {
		f := newStatusFixture(t, booking.StatusPending)
		f.tx.reads.professionalErr = notFoundErr()

		err := f.cmd.UpdateByProfessional(ctx, commands.UpdateStatusInput{
			UserID:    f.userID,
			BookingID: f.bookingID,
			ToStatus:  booking.StatusConfirmed,
		})

		assert.ErrorIs(t, err, commands.ErrProfessionalNotFound)
	})

	t.Run("unknown booking", func(t *testing.T) {
		f := newStatusFixture(t, booking.StatusPending)
		f.tx.bookings.findErr = notFoundErr()

		err := f.cmd.UpdateByProfessional(ctx, commands.UpdateStatusInput{
			UserID:    f.userID,
			BookingID: f.bookingID,
			ToStatus:  booking.StatusConfirmed,
		})

		assert.ErrorIs(t, err, commands.ErrBookingNotFound)
	})
}

func TestBookingStatusCommand_CancelByCustomer(t *testing.T) {
	ctx := context.Background()

	t.Run("cancels ahead of the lead time and frees the slot", func(t *testing.T) {
		f := newStatusFixture(t, booking.StatusConfirmed)

		err := f.cmd.CancelByCustomer(ctx, commands.CancelBookingInput{
			CustomerID: f.customerID,
			BookingID:  f.bookingID,
			Reason:     "change of plans",
		})

		require.NoError(t, err)
		require.NotNil(t, f.tx.bookings.updated)
		assert.Equal(t, booking.StatusCancelled, f.tx.bookings.updated.Status())
		require.NotNil(t, f.tx.bookings.updated.CancellationReason())
		assert.Equal(t, "change of plans", *f.tx.bookings.updated.CancellationReason())
		assert.Equal(t, slot.StateAvailable, f.tx.slots.syncedState)
	})

	t.Run("too close to the scheduled start", func(t *testing.T) {
		f := newStatusFixture(t, booking.StatusConfirmed)
		f.clk.Set(f.scheduledAt.Add(-2 * time.Hour))

		err := f.cmd.CancelByCustomer(ctx, commands.CancelBookingInput{
			CustomerID: f.customerID,
			BookingID:  f.bookingID,
			Reason:     "change of plans",
		})

		assert.ErrorIs(t, err, booking.ErrCancellationTooLate)
		assert.Nil(t, f.tx.bookings.updated)
	})

	t.Run("exactly at the lead time boundary is allowed", func(t *testing.T) {
		f := newStatusFixture(t, booking.StatusConfirmed)
		f.clk.Set(f.scheduledAt.Add(-cancellationLeadTime))

		err := f.cmd.CancelByCustomer(ctx, commands.CancelBookingInput{
			CustomerID: f.customerID,
			BookingID:  f.bookingID,
			Reason:     "change of plans",
		})

		assert.NoError(t, err)
	})

	t.Run("completed booking cannot be cancelled", func(t *testing.T) {
		f := newStatusFixture(t, booking.StatusCompleted)

		err := f.cmd.CancelByCustomer(ctx, commands.CancelBookingInput{
			CustomerID: f.customerID,
			BookingID:  f.bookingID,
			Reason:     "change of plans",
		})

		assert.ErrorIs(t, err, booking.ErrCannotCancel)
	})

	t.Run("booking owned by another customer", func(t *testing.T) {
		f := newStatusFixture(t, booking.StatusConfirmed)

		err := f.cmd.CancelByCustomer(ctx, commands.CancelBookingInput{
			CustomerID: uuid.New(),
			BookingID:  f.bookingID,
			Reason:     "change of plans",
		})

		assert.ErrorIs(t, err, commands.ErrBookingNotOwned)
	})
}
