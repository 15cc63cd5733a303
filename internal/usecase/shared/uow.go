package shared

import (
	"context"
	"time"

	"servicemarket/internal/domain/booking"
	"servicemarket/internal/domain/pricing"
	"servicemarket/internal/domain/review"
	"servicemarket/internal/domain/slot"
	"servicemarket/internal/domain/user"

	"github.com/google/uuid"
)

// UnitOfWork runs fn inside one storage transaction; fn sees repositories
// bound to that transaction. Commit on nil, rollback otherwise.
type UnitOfWork interface {
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

type Tx interface {
	Bookings() BookingRepository
	Slots() SlotRepository
	Addresses() AddressRepository
	Reviews() ReviewRepository
	Users() UserRepository
	Professionals() ProfessionalRepository
	Reads() CommandReads
}

type BookingRepository interface {
	Create(ctx context.Context, b *booking.Booking) (uuid.UUID, error)
	// FindByIDForUpdate locks the booking row for the rest of the
	// transaction so concurrent status changes serialize.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	UpdateStatus(ctx context.Context, b *booking.Booking) error
	// UpsertAddon attaches an addon to a booking, incrementing quantity on
	// the (booking, addon) pair when it already exists.
	UpsertAddon(ctx context.Context, bookingID, addonID uuid.UUID) error
}

type SlotRepository interface {
	// Claim atomically moves a slot from AVAILABLE to BOOKED, only if it is
	// currently AVAILABLE and belongs to the professional. A single
	// conditional write; zero affected rows is a conflict.
	Claim(ctx context.Context, slotID, professionalID uuid.UUID) (*slot.Slot, error)
	// SyncForBookingStatus moves the booked slot matching the scheduled
	// window to the state implied by the new booking status.
	SyncForBookingStatus(ctx context.Context, professionalID uuid.UUID, startAt time.Time, state slot.State) error
	// BulkInsert adds generated slots, skipping windows that already exist.
	BulkInsert(ctx context.Context, slots []slot.Slot) (int64, error)
}

type AddressRepository interface {
	Create(ctx context.Context, userID uuid.UUID, params AddressParams) (uuid.UUID, error)
}

type ReviewRepository interface {
	Create(ctx context.Context, r *review.Review) (uuid.UUID, error)
}

type UserRepository interface {
	Create(ctx context.Context, u *user.User) (uuid.UUID, error)
}

type ProfessionalRepository interface {
	Create(ctx context.Context, userID uuid.UUID, businessName string) (uuid.UUID, error)
}

// CommandReads are the write-side lookups commands need inside (or right
// before) a transaction. They return snapshots, not read models, to keep
// the command side independent of query DTOs.
type CommandReads interface {
	SlotByID(ctx context.Context, id uuid.UUID) (*slot.Slot, error)
	AddressByID(ctx context.Context, id uuid.UUID) (*AddressSnapshot, error)
	BookingByIdempotencyKey(ctx context.Context, key string) (*booking.Booking, error)
	BookingByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	ProfessionalByUserID(ctx context.Context, userID uuid.UUID) (*ProfessionalSnapshot, error)
	OfferedService(ctx context.Context, professionalID, serviceID uuid.UUID) (*pricing.OfferedService, error)
	OfferedAddon(ctx context.Context, professionalID, addonID uuid.UUID) (*pricing.OfferedAddon, error)
	AvailabilityForProfessional(ctx context.Context, professionalID uuid.UUID) ([]slot.AvailabilityWindow, error)
}
