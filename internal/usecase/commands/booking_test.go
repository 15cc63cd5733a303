//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"servicemarket/internal/domain/booking"
	"servicemarket/internal/domain/pricing"
	"servicemarket/internal/domain/slot"
	"servicemarket/internal/usecase/commands"
	"servicemarket/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type createBookingFixture struct {
	customerID     uuid.UUID
	professionalID uuid.UUID
	serviceID      uuid.UUID
	slotID         uuid.UUID
	addressID      uuid.UUID
	addonID        uuid.UUID
	startAt        time.Time

	tx  *fakeTx
	cmd *commands.CreateBookingCommand
}

func newCreateBookingFixture(t *testing.T) *createBookingFixture {
	t.Helper()

	f := &createBookingFixture{
		customerID:     uuid.New(),
		professionalID: uuid.New(),
		serviceID:      uuid.New(),
		slotID:         uuid.New(),
		addressID:      uuid.New(),
		addonID:        uuid.New(),
		startAt:        time.Date(2026, 9, 12, 10, 0, 0, 0, time.UTC),
		tx:             newFakeTx(),
	}

	f.tx.reads.slot = &slot.Slot{
		ID:             f.slotID,
		ProfessionalID: f.professionalID,
		StartAt:        f.startAt,
		EndAt:          f.startAt.Add(time.Hour),
		State:          slot.StateAvailable,
	}
	f.tx.reads.address = &shared.AddressSnapshot{
		ID:     f.addressID,
		UserID: f.customerID,
	}
	f.tx.reads.service = &pricing.OfferedService{
		ServiceID:       f.serviceID,
		Name:            "Deep Cleaning",
		DurationMinutes: 60,
		BasePrice:       mustMoney(t, "500.00"),
	}
	f.tx.reads.addons = map[uuid.UUID]*pricing.OfferedAddon{
		f.addonID: {
			AddonID:   f.addonID,
			Name:      "Balcony Cleaning",
			BasePrice: mustMoney(t, "100.00"),
		},
	}
	f.tx.slots.claimed = &slot.Slot{
		ID:             f.slotID,
		ProfessionalID: f.professionalID,
		StartAt:        f.startAt,
		EndAt:          f.startAt.Add(time.Hour),
		State:          slot.StateBooked,
	}

	f.cmd = commands.NewCreateBookingCommand(&fakeUow{tx: f.tx})
	return f
}

func (f *createBookingFixture) input() commands.CreateBookingInput {
	return commands.CreateBookingInput{
		CustomerID:     f.customerID,
		ProfessionalID: f.professionalID,
		ServiceID:      f.serviceID,
		SlotID:         f.slotID,
		AddressID:      f.addressID,
		AddonIDs:       []uuid.UUID{f.addonID},
	}
}

func (f *createBookingFixture) existingBooking(status booking.Status) *booking.Booking {
	key := booking.DeriveIdempotencyKey(f.customerID, f.professionalID, f.serviceID, f.slotID, f.startAt)
	return booking.ReconstructBooking(
		uuid.New(), f.customerID, f.professionalID, f.serviceID, f.addressID, f.slotID,
		f.startAt, f.startAt.Add(time.Hour),
		pricing.Money{},
		status,
		nil, nil,
		key, nil,
		f.startAt.Add(-24*time.Hour), f.startAt.Add(-24*time.Hour),
	)
}

func TestCreateBookingCommand_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("creates booking with claimed slot and addons", func(t *testing.T) {
		f := newCreateBookingFixture(t)

		result, err := f.cmd.Execute(ctx, f.input())

		require.NoError(t, err)
		assert.Equal(t, f.tx.bookings.createdID, result.BookingID)
		assert.False(t, result.Replayed)
		assert.Equal(t, 1, f.tx.slots.claimCalls)

		require.NotNil(t, f.tx.bookings.created)
		assert.Equal(t, "600.00", f.tx.bookings.created.Price().String())
		assert.Equal(t, booking.StatusPending, f.tx.bookings.created.Status())
		assert.Equal(t, f.startAt, f.tx.bookings.created.ScheduledAt())
		assert.Equal(t, []uuid.UUID{f.addonID}, f.tx.bookings.addonCalls)
	})

	t.Run("replays a live booking without claiming again", func(t *testing.T) {
		f := newCreateBookingFixture(t)
		existing := f.existingBooking(booking.StatusConfirmed)
		f.tx.reads.existing = existing

		result, err := f.cmd.Execute(ctx, f.input())

		require.NoError(t, err)
		assert.True(t, result.Replayed)
		assert.Equal(t, existing.ID(), result.BookingID)
		assert.Zero(t, f.tx.slots.claimCalls)
		assert.Nil(t, f.tx.bookings.created)
	})

	t.Run("rejects retry of a terminal booking", func(t *testing.T) {
		f := newCreateBookingFixture(t)
		f.tx.reads.existing = f.existingBooking(booking.StatusCancelled)

		_, err := f.cmd.Execute(ctx, f.input())

		assert.ErrorIs(t, err, commands.ErrBookingAlreadyProcessed)
		assert.Zero(t, f.tx.slots.claimCalls)
	})

	t.Run("unknown slot", func(t *testing.T) {
		f := newCreateBookingFixture(t)
		f.tx.reads.slotErr = notFoundErr()

		_, err := f.cmd.Execute(ctx, f.input())

		assert.ErrorIs(t, err, commands.ErrSlotNotFound)
	})

	t.Run("slot belonging to another professional reads as missing", func(t *testing.T) {
		f := newCreateBookingFixture(t)
		f.tx.reads.slot.ProfessionalID = uuid.New()

		_, err := f.cmd.Execute(ctx, f.input())

		assert.ErrorIs(t, err, commands.ErrSlotNotFound)
	})

	t.Run("address owned by another customer", func(t *testing.T) {
		f := newCreateBookingFixture(t)
		f.tx.reads.address.UserID = uuid.New()

		_, err := f.cmd.Execute(ctx, f.input())

		assert.ErrorIs(t, err, commands.ErrForbiddenAddress)
		assert.Zero(t, f.tx.slots.claimCalls)
	})

	t.Run("service not offered by the professional", func(t *testing.T) {
		f := newCreateBookingFixture(t)
		f.tx.reads.serviceErr = notFoundErr()

		_, err := f.cmd.Execute(ctx, f.input())

		assert.ErrorIs(t, err, commands.ErrServiceNotOffered)
	})

	t.Run("addon not offered by the professional", func(t *testing.T) {
		f := newCreateBookingFixture(t)
		in := f.input()
		in.AddonIDs = append(in.AddonIDs, uuid.New())

		_, err := f.cmd.Execute(ctx, in)

		assert.ErrorIs(t, err, commands.ErrAddonNotOffered)
	})

	t.Run("lost slot race surfaces as conflict", func(t *testing.T) {
		f := newCreateBookingFixture(t)
		f.tx.slots.claimErr = notFoundErr()

		_, err := f.cmd.Execute(ctx, f.input())

		assert.ErrorIs(t, err, commands.ErrSlotConflict)
		assert.Nil(t, f.tx.bookings.created)
	})

	t.Run("duplicate key on insert means a concurrent identical request won", func(t *testing.T) {
		f := newCreateBookingFixture(t)
		f.tx.bookings.createErr = duplicateKeyErr()

		_, err := f.cmd.Execute(ctx, f.input())

		assert.ErrorIs(t, err, commands.ErrBookingAlreadyProcessed)
	})

	t.Run("derives key from the slot's scheduled time", func(t *testing.T) {
		f := newCreateBookingFixture(t)

		_, err := f.cmd.Execute(ctx, f.input())

		require.NoError(t, err)
		want := booking.DeriveIdempotencyKey(f.customerID, f.professionalID, f.serviceID, f.slotID, f.startAt)
		assert.Equal(t, want, f.tx.reads.lastKey)
	})
}
