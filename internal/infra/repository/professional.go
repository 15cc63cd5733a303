package repository

import (
	"context"

	"servicemarket/internal/infra"
	"servicemarket/internal/infra/db"

	"github.com/google/uuid"
)

type ProfessionalRepository struct {
	db db.DBTX
}

func NewProfessionalRepository(dbtx db.DBTX) *ProfessionalRepository {
	return &ProfessionalRepository{db: dbtx}
}

func (r *ProfessionalRepository) Create(ctx context.Context, userID uuid.UUID, businessName string) (uuid.UUID, error) {
	const query = `
		INSERT INTO professionals (id, user_id, business_name)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	var id uuid.UUID
	if err := r.db.QueryRow(ctx, query, uuid.New(), userID, businessName).Scan(&id); err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to insert professional", err)
	}
	return id, nil
}
