package queries

import (
	"context"

	"servicemarket/internal/domain/pricing"
	"servicemarket/internal/infra"
	"servicemarket/internal/pkg/errs"

	"github.com/google/uuid"
)

type CatalogReadStore interface {
	OfferedService(ctx context.Context, professionalID, serviceID uuid.UUID) (*pricing.OfferedService, error)
	OfferedAddon(ctx context.Context, professionalID, addonID uuid.UUID) (*pricing.OfferedAddon, error)
}

// EstimateService prices a prospective booking without touching any slot
// or booking state. The same quote logic runs again inside the booking
// transaction, so an estimate equals the final price as long as the
// catalog has not changed in between.
type EstimateService struct {
	catalog CatalogReadStore
}

func NewEstimateService(catalog CatalogReadStore) *EstimateService {
	return &EstimateService{catalog: catalog}
}

func (s *EstimateService) Estimate(ctx context.Context, professionalID, serviceID uuid.UUID, addonIDs []uuid.UUID) (*pricing.Quote, error) {
	svc, err := s.catalog.OfferedService(ctx, professionalID, serviceID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrServiceNotOffered)
		}
		return nil, err
	}

	addons := make([]pricing.OfferedAddon, 0, len(addonIDs))
	for _, id := range addonIDs {
		addon, err := s.catalog.OfferedAddon(ctx, professionalID, id)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return nil, errs.Mark(err, ErrAddonNotOffered)
			}
			return nil, err
		}
		addons = append(addons, *addon)
	}

	quote := pricing.BuildQuote(*svc, addons)
	return &quote, nil
}
