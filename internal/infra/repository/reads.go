package repository

import (
	"context"
	"time"

	"servicemarket/internal/domain/booking"
	"servicemarket/internal/domain/pricing"
	"servicemarket/internal/domain/slot"
	"servicemarket/internal/infra"
	"servicemarket/internal/infra/db"
	"servicemarket/internal/infra/readstore"
	"servicemarket/internal/usecase/shared"

	"github.com/google/uuid"
)

// CommandReads serves the write-side lookups. It runs on the same DBTX as
// the repositories, so inside a transaction these reads see the
// transaction's own writes.
type CommandReads struct {
	db db.DBTX
}

func NewCommandReads(dbtx db.DBTX) *CommandReads {
	return &CommandReads{db: dbtx}
}

func (r *CommandReads) SlotByID(ctx context.Context, id uuid.UUID) (*slot.Slot, error) {
	const query = `
		SELECT id, professional_id, start_at, end_at, state
		FROM slots
		WHERE id = $1
	`

	s, err := scanSlot(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find slot", err)
	}
	return s, nil
}

func (r *CommandReads) AddressByID(ctx context.Context, id uuid.UUID) (*shared.AddressSnapshot, error) {
	const query = `
		SELECT id, user_id, line1, city, pincode, latitude, longitude, is_default
		FROM addresses
		WHERE id = $1
	`

	var a shared.AddressSnapshot
	err := r.db.QueryRow(ctx, query, id).Scan(
		&a.ID, &a.UserID, &a.Line1, &a.City, &a.Pincode,
		&a.Latitude, &a.Longitude, &a.IsDefault,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find address", err)
	}
	return &a, nil
}

func (r *CommandReads) BookingByIdempotencyKey(ctx context.Context, key string) (*booking.Booking, error) {
	const query = bookingSelectColumns + `
		FROM bookings
		WHERE idempotency_key = $1
	`

	b, err := scanBooking(r.db.QueryRow(ctx, query, key))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find booking by idempotency key", err)
	}
	return b, nil
}

func (r *CommandReads) BookingByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	const query = bookingSelectColumns + `
		FROM bookings
		WHERE id = $1
	`

	b, err := scanBooking(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find booking", err)
	}
	return b, nil
}

func (r *CommandReads) ProfessionalByUserID(ctx context.Context, userID uuid.UUID) (*shared.ProfessionalSnapshot, error) {
	const query = `
		SELECT id, user_id, business_name
		FROM professionals
		WHERE user_id = $1
	`

	var p shared.ProfessionalSnapshot
	if err := r.db.QueryRow(ctx, query, userID).Scan(&p.ID, &p.UserID, &p.BusinessName); err != nil {
		return nil, infra.WrapRepoErr("failed to find professional", err)
	}
	return &p, nil
}

// OfferedService only matches when the professional actually offers the
// service; a catalog entry alone is not enough. Catalog lookups share the
// read-store implementation, bound here to the transaction's connection.
func (r *CommandReads) OfferedService(ctx context.Context, professionalID, serviceID uuid.UUID) (*pricing.OfferedService, error) {
	return readstore.NewCatalogReadStore(r.db).OfferedService(ctx, professionalID, serviceID)
}

func (r *CommandReads) OfferedAddon(ctx context.Context, professionalID, addonID uuid.UUID) (*pricing.OfferedAddon, error) {
	return readstore.NewCatalogReadStore(r.db).OfferedAddon(ctx, professionalID, addonID)
}

func (r *CommandReads) AvailabilityForProfessional(ctx context.Context, professionalID uuid.UUID) ([]slot.AvailabilityWindow, error) {
	const query = `
		SELECT weekday, start_hour, end_hour
		FROM availabilities
		WHERE professional_id = $1
		ORDER BY weekday, start_hour
	`

	rows, err := r.db.Query(ctx, query, professionalID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list availability", err)
	}
	defer rows.Close()

	var windows []slot.AvailabilityWindow
	for rows.Next() {
		var weekday int
		var w slot.AvailabilityWindow
		if err := rows.Scan(&weekday, &w.StartHour, &w.EndHour); err != nil {
			return nil, infra.WrapRepoErr("failed to scan availability", err)
		}
		w.Weekday = time.Weekday(weekday)
		windows = append(windows, w)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate availability", err)
	}
	return windows, nil
}
