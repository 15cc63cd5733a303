package pricing

import (
	"github.com/google/uuid"
)

// OfferedService is the snapshot of a professional's service offering:
// the catalog entry plus an optional professional-specific price override.
type OfferedService struct {
	ServiceID       uuid.UUID
	Name            string
	Description     string
	DurationMinutes int
	BasePrice       Money
	CustomPrice     *Money
}

// OfferedAddon mirrors OfferedService for an addon offering.
type OfferedAddon struct {
	AddonID     uuid.UUID
	Name        string
	Description string
	BasePrice   Money
	CustomPrice *Money
}

func (o OfferedService) AppliedPrice() Money {
	if o.CustomPrice != nil {
		return *o.CustomPrice
	}
	return o.BasePrice
}

func (o OfferedAddon) AppliedPrice() Money {
	if o.CustomPrice != nil {
		return *o.CustomPrice
	}
	return o.BasePrice
}

type ServiceLine struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	DurationMinutes int       `json:"duration_minutes"`
	BasePrice       Money     `json:"base_price"`
	CustomPrice     *Money    `json:"custom_price,omitempty"`
	AppliedPrice    Money     `json:"applied_price"`
}

type AddonLine struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	BasePrice    Money     `json:"base_price"`
	CustomPrice  *Money    `json:"custom_price,omitempty"`
	AppliedPrice Money     `json:"applied_price"`
}

// Quote is an itemized, deterministic price for one
// (professional, service, addon-set) triple.
type Quote struct {
	Service    ServiceLine `json:"service"`
	Addons     []AddonLine `json:"addons"`
	TotalPrice Money       `json:"total_price"`
}

// BuildQuote prices a service offering with its addons. Addons keep input
// order; duplicates are each priced independently. Pure: same inputs, same
// quote.
func BuildQuote(svc OfferedService, addons []OfferedAddon) Quote {
	total := svc.AppliedPrice()

	addonLines := make([]AddonLine, len(addons))
	for i, a := range addons {
		applied := a.AppliedPrice()
		total = total.Add(applied)
		addonLines[i] = AddonLine{
			ID:           a.AddonID,
			Name:         a.Name,
			Description:  a.Description,
			BasePrice:    a.BasePrice,
			CustomPrice:  a.CustomPrice,
			AppliedPrice: applied,
		}
	}

	return Quote{
		Service: ServiceLine{
			ID:              svc.ServiceID,
			Name:            svc.Name,
			Description:     svc.Description,
			DurationMinutes: svc.DurationMinutes,
			BasePrice:       svc.BasePrice,
			CustomPrice:     svc.CustomPrice,
			AppliedPrice:    svc.AppliedPrice(),
		},
		Addons:     addonLines,
		TotalPrice: total,
	}
}
