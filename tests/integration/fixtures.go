//go:build integration

package integration

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

func seedUser(t *testing.T, pool *pgxpool.Pool, role string) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := pool.Exec(context.Background(), `
		INSERT INTO users (id, email, password_hash, first_name, last_name, role)
		VALUES ($1, $2, 'x', 'Test', 'User', $3)
	`, id, id.String()+"@example.com", role)
	require.NoError(t, err, "seed user")
	return id
}

func seedProfessional(t *testing.T, pool *pgxpool.Pool) (userID, professionalID uuid.UUID) {
	t.Helper()

	userID = seedUser(t, pool, "PROFESSIONAL")
	professionalID = uuid.New()
	_, err := pool.Exec(context.Background(), `
		INSERT INTO professionals (id, user_id, business_name)
		VALUES ($1, $2, 'Sparkle Cleaning')
	`, professionalID, userID)
	require.NoError(t, err, "seed professional")
	return userID, professionalID
}

func seedOfferedService(t *testing.T, pool *pgxpool.Pool, professionalID uuid.UUID, basePrice string) uuid.UUID {
	t.Helper()

	serviceID := uuid.New()
	ctx := context.Background()
	_, err := pool.Exec(ctx, `
		INSERT INTO services (id, name, duration_minutes, base_price)
		VALUES ($1, 'Deep Cleaning', 60, $2)
	`, serviceID, basePrice)
	require.NoError(t, err, "seed service")

	_, err = pool.Exec(ctx, `
		INSERT INTO professional_services (professional_id, service_id)
		VALUES ($1, $2)
	`, professionalID, serviceID)
	require.NoError(t, err, "offer service")
	return serviceID
}

func seedAddress(t *testing.T, pool *pgxpool.Pool, userID uuid.UUID) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := pool.Exec(context.Background(), `
		INSERT INTO addresses (id, user_id, line1, city, pincode)
		VALUES ($1, $2, '12 Test Lane', 'Pune', '411001')
	`, id, userID)
	require.NoError(t, err, "seed address")
	return id
}

func seedSlot(t *testing.T, pool *pgxpool.Pool, professionalID uuid.UUID, startAt time.Time) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := pool.Exec(context.Background(), `
		INSERT INTO slots (id, professional_id, start_at, end_at, state)
		VALUES ($1, $2, $3, $4, 'AVAILABLE')
	`, id, professionalID, startAt, startAt.Add(time.Hour))
	require.NoError(t, err, "seed slot")
	return id
}

func slotState(t *testing.T, pool *pgxpool.Pool, slotID uuid.UUID) string {
	t.Helper()

	var state string
	err := pool.QueryRow(context.Background(),
		`SELECT state FROM slots WHERE id = $1`, slotID).Scan(&state)
	require.NoError(t, err, "read slot state")
	return state
}

func countBookingsForSlot(t *testing.T, pool *pgxpool.Pool, slotID uuid.UUID) int {
	t.Helper()

	var n int
	err := pool.QueryRow(context.Background(),
		`SELECT count(*) FROM bookings WHERE slot_id = $1`, slotID).Scan(&n)
	require.NoError(t, err, "count bookings")
	return n
}

// seedBookingWithStatus writes a booking row directly, claiming its own
// slot so the schema's uniqueness rules hold.
func seedBookingWithStatus(t *testing.T, pool *pgxpool.Pool, customerID, professionalID, serviceID, addressID uuid.UUID, startAt time.Time, status string) uuid.UUID {
	t.Helper()

	slotID := seedSlot(t, pool, professionalID, startAt)
	bookingID := uuid.New()
	_, err := pool.Exec(context.Background(), `
		INSERT INTO bookings (
			id, customer_id, professional_id, service_id, address_id, slot_id,
			scheduled_at, scheduled_end_at, price, status, idempotency_key
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 500.00, $9, $10)
	`, bookingID, customerID, professionalID, serviceID, addressID, slotID,
		startAt, startAt.Add(time.Hour), status, uuid.New().String())
	require.NoError(t, err, "seed booking")
	return bookingID
}
