package readstore

import (
	"context"

	"servicemarket/internal/infra"
	"servicemarket/internal/infra/db"
	"servicemarket/internal/usecase/queries"

	"github.com/google/uuid"
)

type ReviewReadStore struct {
	db db.DBTX
}

func NewReviewReadStore(dbtx db.DBTX) *ReviewReadStore {
	return &ReviewReadStore{db: dbtx}
}

func (s *ReviewReadStore) ListForProfessional(ctx context.Context, professionalID uuid.UUID, limit, offset int) ([]queries.ReviewView, int64, error) {
	const query = `
		SELECT r.id, r.booking_id, u.first_name || ' ' || u.last_name,
		       r.rating, r.comment, r.created_at
		FROM reviews r
		JOIN users u ON u.id = r.customer_id
		WHERE r.professional_id = $1
		ORDER BY r.created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := s.db.Query(ctx, query, professionalID, limit, offset)
	if err != nil {
		return nil, 0, infra.WrapRepoErr("failed to list reviews", err)
	}
	defer rows.Close()

	views := make([]queries.ReviewView, 0)
	for rows.Next() {
		var v queries.ReviewView
		if err := rows.Scan(&v.ID, &v.BookingID, &v.CustomerName, &v.Rating, &v.Comment, &v.CreatedAt); err != nil {
			return nil, 0, infra.WrapRepoErr("failed to scan review", err)
		}
		views = append(views, v)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, infra.WrapRepoErr("failed to iterate reviews", err)
	}

	const countQuery = `SELECT count(*) FROM reviews WHERE professional_id = $1`

	var total int64
	if err := s.db.QueryRow(ctx, countQuery, professionalID).Scan(&total); err != nil {
		return nil, 0, infra.WrapRepoErr("failed to count reviews", err)
	}

	return views, total, nil
}
