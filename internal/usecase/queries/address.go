package queries

import (
	"context"

	"github.com/google/uuid"
)

type AddressReadStore interface {
	ListForUser(ctx context.Context, userID uuid.UUID) ([]AddressView, error)
}

type AddressQueryService struct {
	addresses AddressReadStore
}

func NewAddressQueryService(addresses AddressReadStore) *AddressQueryService {
	return &AddressQueryService{addresses: addresses}
}

func (s *AddressQueryService) ListForUser(ctx context.Context, userID uuid.UUID) ([]AddressView, error) {
	return s.addresses.ListForUser(ctx, userID)
}
