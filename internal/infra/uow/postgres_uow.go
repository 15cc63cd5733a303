package uow

import (
	"context"
	"crypto/rand"
	"errors"
	"math/big"
	"time"

	"servicemarket/internal/infra/repository"
	"servicemarket/internal/pkg/errs"
	"servicemarket/internal/usecase/shared"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	maxRetries     = 3
	baseRetryDelay = 10 * time.Millisecond

	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
)

type PostgresUnitOfWork struct {
	pool *pgxpool.Pool
}

func NewPostgresUnitOfWork(pool *pgxpool.Pool) *PostgresUnitOfWork {
	return &PostgresUnitOfWork{pool: pool}
}

// Within runs fn in a transaction, retrying on serialization failures and
// deadlocks with jittered exponential backoff.
func (u *PostgresUnitOfWork) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			if err := sleepWithJitter(ctx, attempt); err != nil {
				return err
			}
		}

		lastErr = u.runOnce(ctx, fn)
		if lastErr == nil || !isRetryable(lastErr) {
			return lastErr
		}
	}
	return errs.Wrap(lastErr, "transaction retries exhausted")
}

func (u *PostgresUnitOfWork) runOnce(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	pgxTx, err := u.pool.Begin(ctx)
	if err != nil {
		return errs.Wrap(err, "failed to begin transaction")
	}
	defer func() { _ = pgxTx.Rollback(ctx) }()

	if err := fn(ctx, newTx(pgxTx)); err != nil {
		return err
	}
	if err := pgxTx.Commit(ctx); err != nil {
		return errs.Wrap(err, "failed to commit transaction")
	}
	return nil
}

func isRetryable(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgSerializationFailure || pgErr.Code == pgDeadlockDetected
	}
	return false
}

func sleepWithJitter(ctx context.Context, attempt int) error {
	delay := baseRetryDelay << (attempt - 1)
	if n, err := rand.Int(rand.Reader, big.NewInt(int64(delay))); err == nil {
		delay += time.Duration(n.Int64())
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(delay):
		return nil
	}
}

// tx binds the repository set to one pgx transaction. Repositories are
// built lazily so a command pays only for the ones it touches.
type tx struct {
	pgxTx pgx.Tx

	bookings      *repository.BookingRepository
	slots         *repository.SlotRepository
	addresses     *repository.AddressRepository
	reviews       *repository.ReviewRepository
	users         *repository.UserRepository
	professionals *repository.ProfessionalRepository
	reads         *repository.CommandReads
}

func newTx(pgxTx pgx.Tx) *tx {
	return &tx{pgxTx: pgxTx}
}

func (t *tx) Bookings() shared.BookingRepository {
	if t.bookings == nil {
		t.bookings = repository.NewBookingRepository(t.pgxTx)
	}
	return t.bookings
}

func (t *tx) Slots() shared.SlotRepository {
	if t.slots == nil {
		t.slots = repository.NewSlotRepository(t.pgxTx)
	}
	return t.slots
}

func (t *tx) Addresses() shared.AddressRepository {
	if t.addresses == nil {
		t.addresses = repository.NewAddressRepository(t.pgxTx)
	}
	return t.addresses
}

func (t *tx) Reviews() shared.ReviewRepository {
	if t.reviews == nil {
		t.reviews = repository.NewReviewRepository(t.pgxTx)
	}
	return t.reviews
}

func (t *tx) Users() shared.UserRepository {
	if t.users == nil {
		t.users = repository.NewUserRepository(t.pgxTx)
	}
	return t.users
}

func (t *tx) Professionals() shared.ProfessionalRepository {
	if t.professionals == nil {
		t.professionals = repository.NewProfessionalRepository(t.pgxTx)
	}
	return t.professionals
}

func (t *tx) Reads() shared.CommandReads {
	if t.reads == nil {
		t.reads = repository.NewCommandReads(t.pgxTx)
	}
	return t.reads
}
