package readstore

import (
	"context"

	"servicemarket/internal/infra"
	"servicemarket/internal/infra/db"
	"servicemarket/internal/usecase/queries"

	"github.com/google/uuid"
)

type AddressReadStore struct {
	db db.DBTX
}

func NewAddressReadStore(dbtx db.DBTX) *AddressReadStore {
	return &AddressReadStore{db: dbtx}
}

func (s *AddressReadStore) ListForUser(ctx context.Context, userID uuid.UUID) ([]queries.AddressView, error) {
	const query = `
		SELECT id, line1, city, pincode, latitude, longitude, is_default
		FROM addresses
		WHERE user_id = $1
		ORDER BY is_default DESC, created_at DESC
	`

	rows, err := s.db.Query(ctx, query, userID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list addresses", err)
	}
	defer rows.Close()

	views := make([]queries.AddressView, 0)
	for rows.Next() {
		var v queries.AddressView
		if err := rows.Scan(&v.ID, &v.Line1, &v.City, &v.Pincode, &v.Latitude, &v.Longitude, &v.IsDefault); err != nil {
			return nil, infra.WrapRepoErr("failed to scan address", err)
		}
		views = append(views, v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate addresses", err)
	}
	return views, nil
}
