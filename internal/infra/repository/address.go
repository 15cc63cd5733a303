package repository

import (
	"context"

	"servicemarket/internal/infra"
	"servicemarket/internal/infra/db"
	"servicemarket/internal/usecase/shared"

	"github.com/google/uuid"
)

type AddressRepository struct {
	db db.DBTX
}

func NewAddressRepository(dbtx db.DBTX) *AddressRepository {
	return &AddressRepository{db: dbtx}
}

func (r *AddressRepository) Create(ctx context.Context, userID uuid.UUID, params shared.AddressParams) (uuid.UUID, error) {
	const query = `
		INSERT INTO addresses (id, user_id, line1, city, pincode, latitude, longitude, is_default)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	var id uuid.UUID
	err := r.db.QueryRow(ctx, query,
		uuid.New(), userID,
		params.Line1, params.City, params.Pincode,
		params.Latitude, params.Longitude, params.IsDefault,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to insert address", err)
	}
	return id, nil
}
