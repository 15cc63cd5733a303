package booking

import (
	"strings"
	"time"

	"servicemarket/internal/domain/pricing"
	"servicemarket/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrInvalidStatusTransition = errs.New("invalid status transition")
	ErrCannotCancel            = errs.New("booking cannot be cancelled")
	ErrCancellationTooLate     = errs.New("cancellation lead time not met")
	ErrEmptyCancellationReason = errs.New("cancellation reason is required")
	ErrInvalidSchedule         = errs.New("scheduled end must be after start")
)

// Booking is a reservation of one slot by a customer for a service at a
// professional. The scheduled window is a snapshot of the slot taken at
// creation time; the slot row may be freed and reused later while the
// booking keeps the original times for audit.
type Booking struct {
	id                 uuid.UUID
	customerID         uuid.UUID
	professionalID     uuid.UUID
	serviceID          uuid.UUID
	addressID          uuid.UUID
	slotID             uuid.UUID
	scheduledAt        time.Time
	scheduledEndAt     time.Time
	price              pricing.Money
	status             Status
	cancellationReason *string
	completedAt        *time.Time
	idempotencyKey     string
	notes              *string
	createdAt          time.Time
	updatedAt          time.Time
}

func NewBooking(
	customerID, professionalID, serviceID, addressID, slotID uuid.UUID,
	scheduledAt, scheduledEndAt time.Time,
	price pricing.Money,
	idempotencyKey string,
	notes *string,
) (*Booking, error) {
	if !scheduledEndAt.After(scheduledAt) {
		return nil, ErrInvalidSchedule
	}
	if price.IsNegative() {
		return nil, pricing.ErrNegativeAmount
	}

	return &Booking{
		id:             uuid.New(),
		customerID:     customerID,
		professionalID: professionalID,
		serviceID:      serviceID,
		addressID:      addressID,
		slotID:         slotID,
		scheduledAt:    scheduledAt,
		scheduledEndAt: scheduledEndAt,
		price:          price,
		status:         StatusPending,
		idempotencyKey: idempotencyKey,
		notes:          notes,
	}, nil
}

func ReconstructBooking(
	id, customerID, professionalID, serviceID, addressID, slotID uuid.UUID,
	scheduledAt, scheduledEndAt time.Time,
	price pricing.Money,
	status Status,
	cancellationReason *string,
	completedAt *time.Time,
	idempotencyKey string,
	notes *string,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:                 id,
		customerID:         customerID,
		professionalID:     professionalID,
		serviceID:          serviceID,
		addressID:          addressID,
		slotID:             slotID,
		scheduledAt:        scheduledAt,
		scheduledEndAt:     scheduledEndAt,
		price:              price,
		status:             status,
		cancellationReason: cancellationReason,
		completedAt:        completedAt,
		idempotencyKey:     idempotencyKey,
		notes:              notes,
		createdAt:          createdAt,
		updatedAt:          updatedAt,
	}
}

// TransitionByProfessional applies one step of the professional-side state
// machine. Cancellation requires a non-empty reason; completion stamps the
// completion time.
func (b *Booking) TransitionByProfessional(to Status, cancellationReason string, now time.Time) error {
	if !b.status.CanTransitionByProfessional(to) {
		return errs.Mark(
			errs.Newf("cannot change booking from %s to %s", b.status, to),
			ErrInvalidStatusTransition,
		)
	}

	switch to {
	case StatusCancelled:
		reason := strings.TrimSpace(cancellationReason)
		if reason == "" {
			return ErrEmptyCancellationReason
		}
		b.cancellationReason = &reason
	case StatusCompleted:
		t := now
		b.completedAt = &t
	}

	b.status = to
	b.updatedAt = now
	return nil
}

// CancelByCustomer enforces the customer cancellation policy: only a
// PENDING or CONFIRMED booking, only with a reason, and only while the
// scheduled start is at least minLead away.
func (b *Booking) CancelByCustomer(cancellationReason string, now time.Time, minLead time.Duration) error {
	if !b.status.CanBeCancelledByCustomer() {
		return errs.Mark(
			errs.Newf("cannot cancel booking with status %s", b.status),
			ErrCannotCancel,
		)
	}

	reason := strings.TrimSpace(cancellationReason)
	if reason == "" {
		return ErrEmptyCancellationReason
	}

	if b.scheduledAt.Sub(now) < minLead {
		return ErrCancellationTooLate
	}

	b.status = StatusCancelled
	b.cancellationReason = &reason
	b.updatedAt = now
	return nil
}

func (b *Booking) IsOwnedByCustomer(customerID uuid.UUID) bool {
	return b.customerID == customerID
}

func (b *Booking) IsAssignedTo(professionalID uuid.UUID) bool {
	return b.professionalID == professionalID
}

func (b *Booking) ID() uuid.UUID               { return b.id }
func (b *Booking) CustomerID() uuid.UUID       { return b.customerID }
func (b *Booking) ProfessionalID() uuid.UUID   { return b.professionalID }
func (b *Booking) ServiceID() uuid.UUID        { return b.serviceID }
func (b *Booking) AddressID() uuid.UUID        { return b.addressID }
func (b *Booking) SlotID() uuid.UUID           { return b.slotID }
func (b *Booking) ScheduledAt() time.Time      { return b.scheduledAt }
func (b *Booking) ScheduledEndAt() time.Time   { return b.scheduledEndAt }
func (b *Booking) Price() pricing.Money        { return b.price }
func (b *Booking) Status() Status              { return b.status }
func (b *Booking) CancellationReason() *string { return b.cancellationReason }
func (b *Booking) CompletedAt() *time.Time     { return b.completedAt }
func (b *Booking) IdempotencyKey() string      { return b.idempotencyKey }
func (b *Booking) Notes() *string              { return b.notes }
func (b *Booking) CreatedAt() time.Time        { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time        { return b.updatedAt }
