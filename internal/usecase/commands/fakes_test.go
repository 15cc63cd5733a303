//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"servicemarket/internal/domain/booking"
	"servicemarket/internal/domain/pricing"
	"servicemarket/internal/domain/review"
	"servicemarket/internal/domain/slot"
	"servicemarket/internal/domain/user"
	"servicemarket/internal/infra"
	"servicemarket/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func notFoundErr() error {
	return infra.WrapRepoErr("row not found", nil, infra.KindNotFound)
}

func duplicateKeyErr() error {
	return infra.WrapRepoErr("unique violation", nil, infra.KindDuplicateKey)
}

func mustMoney(t *testing.T, s string) pricing.Money {
	t.Helper()
	m, err := pricing.NewMoneyFromString(s)
	require.NoError(t, err)
	return m
}

// fakeUow runs the transactional function against an in-memory Tx with no
// transaction semantics; tests assert on what the function did.
type fakeUow struct {
	tx *fakeTx
}

func (u *fakeUow) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return fn(ctx, u.tx)
}

type fakeTx struct {
	bookings      *fakeBookingRepo
	slots         *fakeSlotRepo
	reviews       *fakeReviewRepo
	users         *fakeUserRepo
	professionals *fakeProfessionalRepo
	reads         *fakeReads
}

func (t *fakeTx) Bookings() shared.BookingRepository           { return t.bookings }
func (t *fakeTx) Slots() shared.SlotRepository                 { return t.slots }
func (t *fakeTx) Addresses() shared.AddressRepository          { return nil }
func (t *fakeTx) Reviews() shared.ReviewRepository             { return t.reviews }
func (t *fakeTx) Users() shared.UserRepository                 { return t.users }
func (t *fakeTx) Professionals() shared.ProfessionalRepository { return t.professionals }
func (t *fakeTx) Reads() shared.CommandReads                   { return t.reads }

type fakeBookingRepo struct {
	created   *booking.Booking
	createdID uuid.UUID
	createErr error

	locked  *booking.Booking
	findErr error

	updated    *booking.Booking
	updateErr  error
	addonCalls []uuid.UUID
}

func (r *fakeBookingRepo) Create(_ context.Context, b *booking.Booking) (uuid.UUID, error) {
	if r.createErr != nil {
		return uuid.Nil, r.createErr
	}
	r.created = b
	return r.createdID, nil
}

func (r *fakeBookingRepo) FindByIDForUpdate(_ context.Context, _ uuid.UUID) (*booking.Booking, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	return r.locked, nil
}

func (r *fakeBookingRepo) UpdateStatus(_ context.Context, b *booking.Booking) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	r.updated = b
	return nil
}

func (r *fakeBookingRepo) UpsertAddon(_ context.Context, _, addonID uuid.UUID) error {
	r.addonCalls = append(r.addonCalls, addonID)
	return nil
}

type fakeSlotRepo struct {
	claimed    *slot.Slot
	claimErr   error
	claimCalls int

	syncedState slot.State
	syncedStart time.Time
	syncedPro   uuid.UUID
	syncCalls   int

	inserted  []slot.Slot
	insertedN int64
}

func (r *fakeSlotRepo) Claim(_ context.Context, _, _ uuid.UUID) (*slot.Slot, error) {
	r.claimCalls++
	if r.claimErr != nil {
		return nil, r.claimErr
	}
	return r.claimed, nil
}

func (r *fakeSlotRepo) SyncForBookingStatus(_ context.Context, professionalID uuid.UUID, startAt time.Time, state slot.State) error {
	r.syncCalls++
	r.syncedPro = professionalID
	r.syncedStart = startAt
	r.syncedState = state
	return nil
}

func (r *fakeSlotRepo) BulkInsert(_ context.Context, slots []slot.Slot) (int64, error) {
	r.inserted = slots
	return r.insertedN, nil
}

type fakeReviewRepo struct {
	created   *review.Review
	createdID uuid.UUID
	createErr error
}

func (r *fakeReviewRepo) Create(_ context.Context, rv *review.Review) (uuid.UUID, error) {
	if r.createErr != nil {
		return uuid.Nil, r.createErr
	}
	r.created = rv
	return r.createdID, nil
}

type fakeUserRepo struct {
	createdID uuid.UUID
	created   *user.User
	createErr error
}

func (r *fakeUserRepo) Create(_ context.Context, u *user.User) (uuid.UUID, error) {
	if r.createErr != nil {
		return uuid.Nil, r.createErr
	}
	r.created = u
	return r.createdID, nil
}

type fakeProfessionalRepo struct {
	createdID    uuid.UUID
	createdUser  uuid.UUID
	businessName string
	createErr    error
}

func (r *fakeProfessionalRepo) Create(_ context.Context, userID uuid.UUID, businessName string) (uuid.UUID, error) {
	if r.createErr != nil {
		return uuid.Nil, r.createErr
	}
	r.createdUser = userID
	r.businessName = businessName
	return r.createdID, nil
}

type fakeReads struct {
	slot    *slot.Slot
	slotErr error

	address    *shared.AddressSnapshot
	addressErr error

	existing    *booking.Booking
	existingErr error
	lastKey     string

	found   *booking.Booking
	foundErr error

	professional    *shared.ProfessionalSnapshot
	professionalErr error

	service    *pricing.OfferedService
	serviceErr error

	addons map[uuid.UUID]*pricing.OfferedAddon

	windows    []slot.AvailabilityWindow
	windowsErr error
}

func (r *fakeReads) SlotByID(_ context.Context, _ uuid.UUID) (*slot.Slot, error) {
	if r.slotErr != nil {
		return nil, r.slotErr
	}
	return r.slot, nil
}

func (r *fakeReads) AddressByID(_ context.Context, _ uuid.UUID) (*shared.AddressSnapshot, error) {
	if r.addressErr != nil {
		return nil, r.addressErr
	}
	return r.address, nil
}

func (r *fakeReads) BookingByIdempotencyKey(_ context.Context, key string) (*booking.Booking, error) {
	r.lastKey = key
	if r.existingErr != nil {
		return nil, r.existingErr
	}
	if r.existing != nil {
		return r.existing, nil
	}
	return nil, notFoundErr()
}

func (r *fakeReads) BookingByID(_ context.Context, _ uuid.UUID) (*booking.Booking, error) {
	if r.foundErr != nil {
		return nil, r.foundErr
	}
	return r.found, nil
}

func (r *fakeReads) ProfessionalByUserID(_ context.Context, _ uuid.UUID) (*shared.ProfessionalSnapshot, error) {
	if r.professionalErr != nil {
		return nil, r.professionalErr
	}
	return r.professional, nil
}

func (r *fakeReads) OfferedService(_ context.Context, _, _ uuid.UUID) (*pricing.OfferedService, error) {
	if r.serviceErr != nil {
		return nil, r.serviceErr
	}
	return r.service, nil
}

func (r *fakeReads) OfferedAddon(_ context.Context, _, addonID uuid.UUID) (*pricing.OfferedAddon, error) {
	addon, ok := r.addons[addonID]
	if !ok {
		return nil, notFoundErr()
	}
	return addon, nil
}

func (r *fakeReads) AvailabilityForProfessional(_ context.Context, _ uuid.UUID) ([]slot.AvailabilityWindow, error) {
	if r.windowsErr != nil {
		return nil, r.windowsErr
	}
	return r.windows, nil
}

func newFakeTx() *fakeTx {
	return &fakeTx{
		bookings:      &fakeBookingRepo{createdID: uuid.New()},
		slots:         &fakeSlotRepo{},
		reviews:       &fakeReviewRepo{createdID: uuid.New()},
		users:         &fakeUserRepo{createdID: uuid.New()},
		professionals: &fakeProfessionalRepo{createdID: uuid.New()},
		reads:         &fakeReads{},
	}
}
