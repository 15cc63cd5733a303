//go:build unit

package queries_test

import (
	"context"
	"testing"

	"servicemarket/internal/domain/pricing"
	"servicemarket/internal/infra"
	"servicemarket/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCatalog struct {
	service *pricing.OfferedService
	addons  map[uuid.UUID]*pricing.OfferedAddon
}

func (c *fakeCatalog) OfferedService(_ context.Context, _, _ uuid.UUID) (*pricing.OfferedService, error) {
	if c.service == nil {
		return nil, infra.WrapRepoErr("service offering not found", nil, infra.KindNotFound)
	}
	return c.service, nil
}

func (c *fakeCatalog) OfferedAddon(_ context.Context, _, addonID uuid.UUID) (*pricing.OfferedAddon, error) {
	addon, ok := c.addons[addonID]
	if !ok {
		return nil, infra.WrapRepoErr("addon offering not found", nil, infra.KindNotFound)
	}
	return addon, nil
}

func money(t *testing.T, s string) pricing.Money {
	t.Helper()
	m, err := pricing.NewMoneyFromString(s)
	require.NoError(t, err)
	return m
}

func TestEstimateService_Estimate(t *testing.T) {
	ctx := context.Background()
	professionalID := uuid.New()
	serviceID := uuid.New()
	addonID := uuid.New()

	customPrice := money(t, "450.00")

	t.Run("itemizes service and addons", func(t *testing.T) {
		catalog := &fakeCatalog{
			service: &pricing.OfferedService{
				ServiceID:       serviceID,
				Name:            "Deep Cleaning",
				DurationMinutes: 60,
				BasePrice:       money(t, "500.00"),
			},
			addons: map[uuid.UUID]*pricing.OfferedAddon{
				addonID: {AddonID: addonID, Name: "Balcony Cleaning", BasePrice: money(t, "100.00")},
			},
		}
		svc := queries.NewEstimateService(catalog)

		quote, err := svc.Estimate(ctx, professionalID, serviceID, []uuid.UUID{addonID})

		require.NoError(t, err)
		assert.Equal(t, "600.00", quote.TotalPrice.String())
		require.Len(t, quote.Addons, 1)
		assert.Equal(t, "100.00", quote.Addons[0].AppliedPrice.String())
		assert.Equal(t, "500.00", quote.Service.AppliedPrice.String())
	})

	t.Run("custom price overrides the base price", func(t *testing.T) {
		catalog := &fakeCatalog{
			service: &pricing.OfferedService{
				ServiceID:   serviceID,
				Name:        "Deep Cleaning",
				BasePrice:   money(t, "500.00"),
				CustomPrice: &customPrice,
			},
		}
		svc := queries.NewEstimateService(catalog)

		quote, err := svc.Estimate(ctx, professionalID, serviceID, nil)

		require.NoError(t, err)
		assert.Equal(t, "450.00", quote.TotalPrice.String())
		assert.Equal(t, "500.00", quote.Service.BasePrice.String())
	})

	t.Run("service not offered", func(t *testing.T) {
		svc := queries.NewEstimateService(&fakeCatalog{})

		_, err := svc.Estimate(ctx, professionalID, serviceID, nil)

		assert.ErrorIs(t, err, queries.ErrServiceNotOffered)
	})

	t.Run("addon not offered", func(t *testing.T) {
		catalog := &fakeCatalog{
			service: &pricing.OfferedService{ServiceID: serviceID, BasePrice: money(t, "500.00")},
		}
		svc := queries.NewEstimateService(catalog)

		_, err := svc.Estimate(ctx, professionalID, serviceID, []uuid.UUID{uuid.New()})

		assert.ErrorIs(t, err, queries.ErrAddonNotOffered)
	})
}
