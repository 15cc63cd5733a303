package repository

import (
	"context"

	"servicemarket/internal/domain/booking"
	"servicemarket/internal/infra"
	"servicemarket/internal/infra/db"

	"github.com/google/uuid"
)

type BookingRepository struct {
	db db.DBTX
}

func NewBookingRepository(dbtx db.DBTX) *BookingRepository {
	return &BookingRepository{db: dbtx}
}

func (r *BookingRepository) Create(ctx context.Context, b *booking.Booking) (uuid.UUID, error) {
	const query = `
		INSERT INTO bookings (
			id, customer_id, professional_id, service_id, address_id, slot_id,
			scheduled_at, scheduled_end_at, price, status,
			idempotency_key, notes
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id
	`

	var id uuid.UUID
	err := r.db.QueryRow(ctx, query,
		b.ID(), b.CustomerID(), b.ProfessionalID(), b.ServiceID(), b.AddressID(), b.SlotID(),
		b.ScheduledAt(), b.ScheduledEndAt(), b.Price().String(), b.Status().String(),
		b.IdempotencyKey(), b.Notes(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to insert booking", err)
	}
	return id, nil
}

// FindByIDForUpdate loads a booking with a row lock so status transitions
// serialize within the surrounding transaction.
func (r *BookingRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	const query = bookingSelectColumns + `
		FROM bookings
		WHERE id = $1
		FOR UPDATE
	`

	b, err := scanBooking(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find booking for update", err)
	}
	return b, nil
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, b *booking.Booking) error {
	const query = `
		UPDATE bookings
		SET status = $2,
		    cancellation_reason = $3,
		    completed_at = $4,
		    updated_at = now()
		WHERE id = $1
	`

	tag, err := r.db.Exec(ctx, query, b.ID(), b.Status().String(), b.CancellationReason(), b.CompletedAt())
	if err != nil {
		return infra.WrapRepoErr("failed to update booking status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return nil
}

// UpsertAddon attaches an addon to a booking. A repeated (booking, addon)
// pair increments quantity instead of inserting a second row.
func (r *BookingRepository) UpsertAddon(ctx context.Context, bookingID, addonID uuid.UUID) error {
	const query = `
		INSERT INTO booking_addons (booking_id, addon_id, quantity)
		VALUES ($1, $2, 1)
		ON CONFLICT (booking_id, addon_id)
		DO UPDATE SET quantity = booking_addons.quantity + 1
	`

	if _, err := r.db.Exec(ctx, query, bookingID, addonID); err != nil {
		return infra.WrapRepoErr("failed to upsert booking addon", err)
	}
	return nil
}
