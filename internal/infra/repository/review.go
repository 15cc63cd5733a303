package repository

import (
	"context"

	"servicemarket/internal/domain/review"
	"servicemarket/internal/infra"
	"servicemarket/internal/infra/db"

	"github.com/google/uuid"
)

type ReviewRepository struct {
	db db.DBTX
}

func NewReviewRepository(dbtx db.DBTX) *ReviewRepository {
	return &ReviewRepository{db: dbtx}
}

// Create inserts a review. The unique index on booking_id turns a second
// review of the same booking into a DuplicateKey error.
func (r *ReviewRepository) Create(ctx context.Context, rv *review.Review) (uuid.UUID, error) {
	const query = `
		INSERT INTO reviews (id, booking_id, customer_id, professional_id, rating, comment)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	var id uuid.UUID
	err := r.db.QueryRow(ctx, query,
		rv.ID(), rv.BookingID(), rv.CustomerID(), rv.ProfessionalID(),
		rv.Rating().Value(), rv.Comment().String(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to insert review", err)
	}
	return id, nil
}
