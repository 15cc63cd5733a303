package readstore

import (
	"context"

	"servicemarket/internal/infra"
	"servicemarket/internal/infra/db"
	"servicemarket/internal/usecase/shared"

	"github.com/google/uuid"
)

type ProfessionalReadStore struct {
	db db.DBTX
}

func NewProfessionalReadStore(dbtx db.DBTX) *ProfessionalReadStore {
	return &ProfessionalReadStore{db: dbtx}
}

func (s *ProfessionalReadStore) ByUserID(ctx context.Context, userID uuid.UUID) (*shared.ProfessionalSnapshot, error) {
	const query = `
		SELECT id, user_id, business_name
		FROM professionals
		WHERE user_id = $1
	`

	var p shared.ProfessionalSnapshot
	if err := s.db.QueryRow(ctx, query, userID).Scan(&p.ID, &p.UserID, &p.BusinessName); err != nil {
		return nil, infra.WrapRepoErr("failed to find professional", err)
	}
	return &p, nil
}
