//go:build unit

package booking_test

import (
	"testing"
	"time"

	"servicemarket/internal/domain/booking"
	"servicemarket/internal/domain/pricing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBooking(t *testing.T, status booking.Status) *booking.Booking {
	t.Helper()

	scheduledAt := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	return booking.ReconstructBooking(
		uuid.New(), uuid.New(), uuid.New(), uuid.New(), uuid.New(), uuid.New(),
		scheduledAt, scheduledAt.Add(time.Hour),
		pricing.NewMoney(decimal.NewFromInt(600)),
		status,
		nil, nil,
		"test-key", nil,
		scheduledAt.Add(-48*time.Hour), scheduledAt.Add(-48*time.Hour),
	)
}

func TestNewBooking(t *testing.T) {
	scheduledAt := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	price := pricing.NewMoney(decimal.NewFromInt(500))

	b, err := booking.NewBooking(
		uuid.New(), uuid.New(), uuid.New(), uuid.New(), uuid.New(),
		scheduledAt, scheduledAt.Add(time.Hour),
		price, "key", nil,
	)
	require.NoError(t, err)
	assert.Equal(t, booking.StatusPending, b.Status())
	assert.Equal(t, "key", b.IdempotencyKey())

	_, err = booking.NewBooking(
		uuid.New(), uuid.New(), uuid.New(), uuid.New(), uuid.New(),
		scheduledAt, scheduledAt,
		price, "key", nil,
	)
	assert.ErrorIs(t, err, booking.ErrInvalidSchedule)
}

func TestBooking_TransitionByProfessional(t *testing.T) {
	now := time.Date(2026, 3, 13, 12, 0, 0, 0, time.UTC)

	t.Run("confirm pending", func(t *testing.T) {
		b := newTestBooking(t, booking.StatusPending)
		require.NoError(t, b.TransitionByProfessional(booking.StatusConfirmed, "", now))
		assert.Equal(t, booking.StatusConfirmed, b.Status())
	})

	t.Run("complete confirmed stamps completion time", func(t *testing.T) {
		b := newTestBooking(t, booking.StatusConfirmed)
		require.NoError(t, b.TransitionByProfessional(booking.StatusCompleted, "", now))
		assert.Equal(t, booking.StatusCompleted, b.Status())
		require.NotNil(t, b.CompletedAt())
		assert.Equal(t, now, *b.CompletedAt())
	})

	t.Run("complete pending rejected", func(t *testing.T) {
		b := newTestBooking(t, booking.StatusPending)
		err := b.TransitionByProfessional(booking.StatusCompleted, "", now)
		assert.ErrorIs(t, err, booking.ErrInvalidStatusTransition)
		assert.Equal(t, booking.StatusPending, b.Status())
	})

	t.Run("cancel requires reason", func(t *testing.T) {
		b := newTestBooking(t, booking.StatusPending)
		err := b.TransitionByProfessional(booking.StatusCancelled, "   ", now)
		assert.ErrorIs(t, err, booking.ErrEmptyCancellationReason)

		require.NoError(t, b.TransitionByProfessional(booking.StatusCancelled, "equipment failure", now))
		assert.Equal(t, booking.StatusCancelled, b.Status())
		require.NotNil(t, b.CancellationReason())
		assert.Equal(t, "equipment failure", *b.CancellationReason())
	})

	t.Run("terminal booking rejects any transition", func(t *testing.T) {
		b := newTestBooking(t, booking.StatusCancelled)
		err := b.TransitionByProfessional(booking.StatusConfirmed, "", now)
		assert.ErrorIs(t, err, booking.ErrInvalidStatusTransition)
	})
}

func TestBooking_CancelByCustomer(t *testing.T) {
	const minLead = 3 * time.Hour
	scheduledAt := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

	t.Run("cancel with enough lead time", func(t *testing.T) {
		b := newTestBooking(t, booking.StatusConfirmed)
		now := scheduledAt.Add(-4 * time.Hour)
		require.NoError(t, b.CancelByCustomer("change of plans", now, minLead))
		assert.Equal(t, booking.StatusCancelled, b.Status())
	})

	t.Run("cancel exactly at lead time boundary", func(t *testing.T) {
		b := newTestBooking(t, booking.StatusPending)
		now := scheduledAt.Add(-minLead)
		assert.NoError(t, b.CancelByCustomer("change of plans", now, minLead))
	})

	t.Run("cancel inside lead time rejected", func(t *testing.T) {
		b := newTestBooking(t, booking.StatusConfirmed)
		now := scheduledAt.Add(-2 * time.Hour)
		err := b.CancelByCustomer("change of plans", now, minLead)
		assert.ErrorIs(t, err, booking.ErrCancellationTooLate)
		assert.Equal(t, booking.StatusConfirmed, b.Status())
	})

	t.Run("cancel completed booking rejected", func(t *testing.T) {
		b := newTestBooking(t, booking.StatusCompleted)
		err := b.CancelByCustomer("too late", scheduledAt.Add(-24*time.Hour), minLead)
		assert.ErrorIs(t, err, booking.ErrCannotCancel)
	})

	t.Run("reason required", func(t *testing.T) {
		b := newTestBooking(t, booking.StatusPending)
		err := b.CancelByCustomer("", scheduledAt.Add(-24*time.Hour), minLead)
		assert.ErrorIs(t, err, booking.ErrEmptyCancellationReason)
	})
}

func TestBooking_Ownership(t *testing.T) {
	b := newTestBooking(t, booking.StatusPending)

	assert.True(t, b.IsOwnedByCustomer(b.CustomerID()))
	assert.False(t, b.IsOwnedByCustomer(uuid.New()))
	assert.True(t, b.IsAssignedTo(b.ProfessionalID()))
	assert.False(t, b.IsAssignedTo(uuid.New()))
}
