package readstore

import (
	"context"

	"servicemarket/internal/domain/pricing"
	"servicemarket/internal/infra"
	"servicemarket/internal/infra/db"

	"github.com/google/uuid"
)

// CatalogReadStore resolves a professional's service and addon offerings
// with their effective prices.
type CatalogReadStore struct {
	db db.DBTX
}

func NewCatalogReadStore(dbtx db.DBTX) *CatalogReadStore {
	return &CatalogReadStore{db: dbtx}
}

func (s *CatalogReadStore) OfferedService(ctx context.Context, professionalID, serviceID uuid.UUID) (*pricing.OfferedService, error) {
	const query = `
		SELECT sv.id, sv.name, sv.description, sv.duration_minutes,
		       sv.base_price::text, ps.custom_price::text
		FROM professional_services ps
		JOIN services sv ON sv.id = ps.service_id
		WHERE ps.professional_id = $1
		  AND ps.service_id = $2
	`

	var (
		o               pricing.OfferedService
		basePriceText   string
		customPriceText *string
	)
	err := s.db.QueryRow(ctx, query, professionalID, serviceID).Scan(
		&o.ServiceID, &o.Name, &o.Description, &o.DurationMinutes,
		&basePriceText, &customPriceText,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find offered service", err)
	}

	if o.BasePrice, err = pricing.NewMoneyFromString(basePriceText); err != nil {
		return nil, infra.WrapRepoErr("invalid stored service price", err)
	}
	if o.CustomPrice, err = parseOptionalMoney(customPriceText); err != nil {
		return nil, err
	}
	return &o, nil
}

func (s *CatalogReadStore) OfferedAddon(ctx context.Context, professionalID, addonID uuid.UUID) (*pricing.OfferedAddon, error) {
	const query = `
		SELECT a.id, a.name, a.description,
		       a.base_price::text, pa.custom_price::text
		FROM professional_addons pa
		JOIN addons a ON a.id = pa.addon_id
		WHERE pa.professional_id = $1
		  AND pa.addon_id = $2
	`

	var (
		o               pricing.OfferedAddon
		basePriceText   string
		customPriceText *string
	)
	err := s.db.QueryRow(ctx, query, professionalID, addonID).Scan(
		&o.AddonID, &o.Name, &o.Description,
		&basePriceText, &customPriceText,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find offered addon", err)
	}

	if o.BasePrice, err = pricing.NewMoneyFromString(basePriceText); err != nil {
		return nil, infra.WrapRepoErr("invalid stored addon price", err)
	}
	if o.CustomPrice, err = parseOptionalMoney(customPriceText); err != nil {
		return nil, err
	}
	return &o, nil
}

func parseOptionalMoney(text *string) (*pricing.Money, error) {
	if text == nil {
		return nil, nil
	}
	m, err := pricing.NewMoneyFromString(*text)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid stored custom price", err)
	}
	return &m, nil
}
