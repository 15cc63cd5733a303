//go:build integration

package integration

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"servicemarket/internal/domain/booking"
	"servicemarket/internal/domain/pricing"
	"servicemarket/internal/infra"
	"servicemarket/internal/infra/readstore"
	"servicemarket/internal/infra/uow"
	"servicemarket/internal/usecase/commands"
	"servicemarket/internal/usecase/queries"
	"servicemarket/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/suite"
)

type BookingStorageSuite struct {
	suite.Suite
	pool    *pgxpool.Pool
	unit    *uow.PostgresUnitOfWork
	creator *commands.CreateBookingCommand
}

func TestBookingStorageSuite(t *testing.T) {
	suite.Run(t, new(BookingStorageSuite))
}

func (s *BookingStorageSuite) SetupSuite() {
	s.pool = setupPool(s.T())
	s.unit = uow.NewPostgresUnitOfWork(s.pool)
	s.creator = commands.NewCreateBookingCommand(s.unit)
}

func (s *BookingStorageSuite) mustMoney(raw string) pricing.Money {
	m, err := pricing.NewMoneyFromString(raw)
	s.Require().NoError(err)
	return m
}

func (s *BookingStorageSuite) TestConcurrentCreateClaimsSlotOnce() {
	t := s.T()
	_, proID := seedProfessional(t, s.pool)
	serviceID := seedOfferedService(t, s.pool, proID, "500.00")
	startAt := time.Now().Add(48 * time.Hour).UTC().Truncate(time.Hour)
	slotID := seedSlot(t, s.pool, proID, startAt)

	const workers = 8
	inputs := make([]commands.CreateBookingInput, 0, workers)
	for range workers {
		customerID := seedUser(t, s.pool, "CUSTOMER")
		inputs = append(inputs, commands.CreateBookingInput{
			CustomerID:     customerID,
			ProfessionalID: proID,
			ServiceID:      serviceID,
			SlotID:         slotID,
			AddressID:      seedAddress(t, s.pool, customerID),
		})
	}

	results := make(chan error, workers)
	var wg sync.WaitGroup
	for _, in := range inputs {
		wg.Add(1)
		go func(in commands.CreateBookingInput) {
			defer wg.Done()
			_, err := s.creator.Execute(context.Background(), in)
			results <- err
		}(in)
	}
	wg.Wait()
	close(results)

	var wins, conflicts int
	for err := range results {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, commands.ErrSlotConflict):
			conflicts++
		default:
			s.Failf("unexpected create error", "%v", err)
		}
	}

	s.Equal(1, wins)
	s.Equal(workers-1, conflicts)
	s.Equal("BOOKED", slotState(t, s.pool, slotID))
	s.Equal(1, countBookingsForSlot(t, s.pool, slotID))
}

func (s *BookingStorageSuite) TestDisjointSlotsBookIndependently() {
	t := s.T()
	_, proID := seedProfessional(t, s.pool)
	serviceID := seedOfferedService(t, s.pool, proID, "500.00")
	startAt := time.Now().Add(72 * time.Hour).UTC().Truncate(time.Hour)

	type outcome struct {
		slotID uuid.UUID
		err    error
	}
	results := make(chan outcome, 2)
	var wg sync.WaitGroup
	for i := range 2 {
		customerID := seedUser(t, s.pool, "CUSTOMER")
		addressID := seedAddress(t, s.pool, customerID)
		slotID := seedSlot(t, s.pool, proID, startAt.Add(time.Duration(i)*time.Hour))

		wg.Add(1)
		go func(customerID, addressID, slotID uuid.UUID) {
			defer wg.Done()
			_, err := s.creator.Execute(context.Background(), commands.CreateBookingInput{
				CustomerID:     customerID,
				ProfessionalID: proID,
				ServiceID:      serviceID,
				SlotID:         slotID,
				AddressID:      addressID,
			})
			results <- outcome{slotID: slotID, err: err}
		}(customerID, addressID, slotID)
	}
	wg.Wait()
	close(results)

	for out := range results {
		s.NoError(out.err)
		s.Equal("BOOKED", slotState(t, s.pool, out.slotID))
	}
}

func (s *BookingStorageSuite) TestIdempotentReplayReturnsSameBooking() {
	t := s.T()
	_, proID := seedProfessional(t, s.pool)
	serviceID := seedOfferedService(t, s.pool, proID, "500.00")
	customerID := seedUser(t, s.pool, "CUSTOMER")
	addressID := seedAddress(t, s.pool, customerID)
	startAt := time.Now().Add(96 * time.Hour).UTC().Truncate(time.Hour)
	slotID := seedSlot(t, s.pool, proID, startAt)

	in := commands.CreateBookingInput{
		CustomerID:     customerID,
		ProfessionalID: proID,
		ServiceID:      serviceID,
		SlotID:         slotID,
		AddressID:      addressID,
	}

	first, err := s.creator.Execute(context.Background(), in)
	s.Require().NoError(err)
	s.False(first.Replayed)

	second, err := s.creator.Execute(context.Background(), in)
	s.Require().NoError(err)
	s.True(second.Replayed)
	s.Equal(first.BookingID, second.BookingID)
	s.Equal(1, countBookingsForSlot(t, s.pool, slotID))
}

func (s *BookingStorageSuite) TestDuplicateIdempotencyKeyIsRejected() {
	t := s.T()
	_, proID := seedProfessional(t, s.pool)
	serviceID := seedOfferedService(t, s.pool, proID, "500.00")
	customerID := seedUser(t, s.pool, "CUSTOMER")
	addressID := seedAddress(t, s.pool, customerID)
	startAt := time.Now().Add(120 * time.Hour).UTC().Truncate(time.Hour)
	slotA := seedSlot(t, s.pool, proID, startAt)
	slotB := seedSlot(t, s.pool, proID, startAt.Add(time.Hour))

	key := booking.DeriveIdempotencyKey(customerID, proID, serviceID, slotA, startAt)
	price := s.mustMoney("500.00")

	makeBooking := func(slotID uuid.UUID, at time.Time) *booking.Booking {
		b, err := booking.NewBooking(
			customerID, proID, serviceID, addressID, slotID,
			at, at.Add(time.Hour), price, key, nil,
		)
		s.Require().NoError(err)
		return b
	}

	err := s.unit.Within(context.Background(), func(ctx context.Context, tx shared.Tx) error {
		_, err := tx.Bookings().Create(ctx, makeBooking(slotA, startAt))
		return err
	})
	s.Require().NoError(err)

	err = s.unit.Within(context.Background(), func(ctx context.Context, tx shared.Tx) error {
		_, err := tx.Bookings().Create(ctx, makeBooking(slotB, startAt.Add(time.Hour)))
		return err
	})
	s.Require().Error(err)
	s.True(infra.IsKind(err, infra.KindDuplicateKey))
}

func (s *BookingStorageSuite) TestFailureAfterClaimReleasesSlot() {
	t := s.T()
	_, proID := seedProfessional(t, s.pool)
	startAt := time.Now().Add(144 * time.Hour).UTC().Truncate(time.Hour)
	slotID := seedSlot(t, s.pool, proID, startAt)

	boom := errors.New("booking insert failed")
	err := s.unit.Within(context.Background(), func(ctx context.Context, tx shared.Tx) error {
		claimed, err := tx.Slots().Claim(ctx, slotID, proID)
		s.Require().NoError(err)
		s.Equal(slotID, claimed.ID)
		return boom
	})

	s.Require().ErrorIs(err, boom)
	s.Equal("AVAILABLE", slotState(t, s.pool, slotID))
}

func (s *BookingStorageSuite) TestCustomerListOrdersByLifecycle() {
	t := s.T()
	customerID := seedUser(t, s.pool, "CUSTOMER")
	_, proID := seedProfessional(t, s.pool)
	serviceID := seedOfferedService(t, s.pool, proID, "500.00")
	addressID := seedAddress(t, s.pool, customerID)

	// Insert in alphabetical status order so a plain text sort on the
	// status column would pass by accident only if lifecycle order and
	// alphabetical order agreed, which they do not.
	base := time.Now().Add(240 * time.Hour).UTC().Truncate(time.Hour)
	for i, status := range []string{"CANCELLED", "COMPLETED", "CONFIRMED", "NO_SHOW", "PENDING"} {
		seedBookingWithStatus(t, s.pool, customerID, proID, serviceID, addressID,
			base.Add(time.Duration(i)*time.Hour), status)
	}

	store := readstore.NewBookingReadStore(s.pool)
	items, total, err := store.ListForCustomer(context.Background(), customerID, queries.ListFilter{Page: 1, Limit: 10})
	s.Require().NoError(err)
	s.EqualValues(5, total)

	got := make([]string, 0, len(items))
	for _, item := range items {
		got = append(got, item.Status.String())
	}
	s.Equal([]string{"PENDING", "CONFIRMED", "COMPLETED", "CANCELLED", "NO_SHOW"}, got)
}
