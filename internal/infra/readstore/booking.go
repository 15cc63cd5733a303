package readstore

import (
	"context"

	"servicemarket/internal/domain/booking"
	"servicemarket/internal/domain/pricing"
	"servicemarket/internal/infra"
	"servicemarket/internal/infra/db"
	"servicemarket/internal/usecase/queries"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type BookingReadStore struct {
	db db.DBTX
}

func NewBookingReadStore(dbtx db.DBTX) *BookingReadStore {
	return &BookingReadStore{db: dbtx}
}

func (s *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	query, args, err := bookingSelect().Where(sq.Eq{"b.id": id}).ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build booking query", err)
	}

	view, err := scanBookingView(s.db.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find booking", err)
	}

	addons, err := s.addonsFor(ctx, view.ID)
	if err != nil {
		return nil, err
	}
	view.Addons = addons
	return view, nil
}

func (s *BookingReadStore) ListForCustomer(ctx context.Context, customerID uuid.UUID, f queries.ListFilter) ([]queries.BookingView, int64, error) {
	return s.list(ctx, sq.Eq{"b.customer_id": customerID}, f)
}

func (s *BookingReadStore) ListForProfessional(ctx context.Context, professionalID uuid.UUID, f queries.ListFilter) ([]queries.BookingView, int64, error) {
	return s.list(ctx, sq.Eq{"b.professional_id": professionalID}, f)
}

// statusLifecycleOrder sorts bookings by how much they still need from
// the actor: PENDING first, then CONFIRMED, then the terminal statuses.
// status is a text column, so plain ASC would sort alphabetically and
// push PENDING behind the terminal ones.
const statusLifecycleOrder = `CASE b.status
	WHEN 'PENDING' THEN 0
	WHEN 'CONFIRMED' THEN 1
	WHEN 'COMPLETED' THEN 2
	WHEN 'CANCELLED' THEN 3
	ELSE 4
END`

// list pages one actor's bookings in lifecycle order, earliest schedule
// first within a status.
func (s *BookingReadStore) list(ctx context.Context, owner sq.Eq, f queries.ListFilter) ([]queries.BookingView, int64, error) {
	base := bookingSelect().Where(owner)
	countQ := psql.Select("COUNT(*)").From("bookings b").Where(owner)

	if f.Status != nil {
		base = base.Where(sq.Eq{"b.status": f.Status.String()})
		countQ = countQ.Where(sq.Eq{"b.status": f.Status.String()})
	}

	query, args, err := base.
		OrderBy(statusLifecycleOrder, "b.scheduled_at ASC").
		Limit(uint64(f.Limit)).
		Offset(uint64(f.Offset())).
		ToSql()
	if err != nil {
		return nil, 0, infra.WrapRepoErr("failed to build booking list query", err)
	}

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, infra.WrapRepoErr("failed to list bookings", err)
	}
	defer rows.Close()

	items := make([]queries.BookingView, 0, f.Limit)
	for rows.Next() {
		view, err := scanBookingView(rows)
		if err != nil {
			return nil, 0, infra.WrapRepoErr("failed to scan booking", err)
		}
		items = append(items, *view)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, infra.WrapRepoErr("failed to iterate bookings", err)
	}

	countSQL, countArgs, err := countQ.ToSql()
	if err != nil {
		return nil, 0, infra.WrapRepoErr("failed to build booking count query", err)
	}
	var total int64
	if err := s.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, infra.WrapRepoErr("failed to count bookings", err)
	}

	return items, total, nil
}

func (s *BookingReadStore) addonsFor(ctx context.Context, bookingID uuid.UUID) ([]queries.BookingAddonView, error) {
	const query = `
		SELECT ba.addon_id, a.name, ba.quantity,
		       COALESCE(pa.custom_price, a.base_price)::text
		FROM booking_addons ba
		JOIN addons a ON a.id = ba.addon_id
		JOIN bookings b ON b.id = ba.booking_id
		LEFT JOIN professional_addons pa
		       ON pa.professional_id = b.professional_id AND pa.addon_id = ba.addon_id
		WHERE ba.booking_id = $1
		ORDER BY a.name
	`

	rows, err := s.db.Query(ctx, query, bookingID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list booking addons", err)
	}
	defer rows.Close()

	var addons []queries.BookingAddonView
	for rows.Next() {
		var (
			a         queries.BookingAddonView
			priceText string
		)
		if err := rows.Scan(&a.AddonID, &a.Name, &a.Quantity, &priceText); err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking addon", err)
		}
		if a.Price, err = pricing.NewMoneyFromString(priceText); err != nil {
			return nil, infra.WrapRepoErr("invalid stored addon price", err)
		}
		addons = append(addons, a)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate booking addons", err)
	}
	return addons, nil
}

func bookingSelect() sq.SelectBuilder {
	return psql.Select(
		"b.id", "b.customer_id", "b.professional_id", "b.service_id", "s.name",
		"b.address_id", "b.slot_id", "b.status",
		"b.scheduled_at", "b.scheduled_end_at", "b.price::text",
		"b.notes", "b.cancellation_reason", "b.completed_at",
		"b.created_at", "b.updated_at",
	).
		From("bookings b").
		Join("services s ON s.id = b.service_id")
}

func scanBookingView(row pgx.Row) (*queries.BookingView, error) {
	var (
		v          queries.BookingView
		statusText string
		priceText  string
	)
	err := row.Scan(
		&v.ID, &v.CustomerID, &v.ProfessionalID, &v.ServiceID, &v.ServiceName,
		&v.AddressID, &v.SlotID, &statusText,
		&v.ScheduledAt, &v.ScheduledEndAt, &priceText,
		&v.Notes, &v.CancellationReason, &v.CompletedAt,
		&v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if v.Status, err = booking.NewStatus(statusText); err != nil {
		return nil, err
	}
	if v.Price, err = pricing.NewMoneyFromString(priceText); err != nil {
		return nil, err
	}
	v.Addons = []queries.BookingAddonView{}
	return &v, nil
}
