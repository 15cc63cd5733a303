package repository

import (
	"time"

	"servicemarket/internal/domain/booking"
	"servicemarket/internal/domain/pricing"
	"servicemarket/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Prices are NUMERIC(10,2) in storage and cross the driver as text to
// avoid any float step on the way into Money.
const bookingSelectColumns = `
	SELECT id, customer_id, professional_id, service_id, address_id, slot_id,
	       scheduled_at, scheduled_end_at, price::text, status,
	       cancellation_reason, completed_at, idempotency_key, notes,
	       created_at, updated_at
`

func scanBooking(row pgx.Row) (*booking.Booking, error) {
	var (
		id, customerID, professionalID uuid.UUID
		serviceID, addressID, slotID   uuid.UUID
		scheduledAt, scheduledEndAt    time.Time
		priceText, statusText          string
		cancellationReason, notes      *string
		completedAt                    *time.Time
		idempotencyKey                 string
		createdAt, updatedAt           time.Time
	)

	err := row.Scan(
		&id, &customerID, &professionalID, &serviceID, &addressID, &slotID,
		&scheduledAt, &scheduledEndAt, &priceText, &statusText,
		&cancellationReason, &completedAt, &idempotencyKey, &notes,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	price, err := pricing.NewMoneyFromString(priceText)
	if err != nil {
		return nil, errs.Wrap(err, "invalid stored price")
	}
	status, err := booking.NewStatus(statusText)
	if err != nil {
		return nil, errs.Wrap(err, "invalid stored status")
	}

	return booking.ReconstructBooking(
		id, customerID, professionalID, serviceID, addressID, slotID,
		scheduledAt, scheduledEndAt,
		price, status,
		cancellationReason, completedAt,
		idempotencyKey, notes,
		createdAt, updatedAt,
	), nil
}
