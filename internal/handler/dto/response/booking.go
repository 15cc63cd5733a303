package response

import (
	"time"

	"servicemarket/internal/domain/pricing"
	"servicemarket/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingAddonResponse struct {
	AddonID  uuid.UUID     `json:"addonId"`
	Name     string        `json:"name"`
	Quantity int           `json:"quantity"`
	Price    pricing.Money `json:"price"`
}

type BookingResponse struct {
	ID                 uuid.UUID              `json:"id"`
	CustomerID         uuid.UUID              `json:"customerId"`
	ProfessionalID     uuid.UUID              `json:"professionalId"`
	ServiceID          uuid.UUID              `json:"serviceId"`
	ServiceName        string                 `json:"serviceName"`
	AddressID          uuid.UUID              `json:"addressId"`
	SlotID             uuid.UUID              `json:"slotId"`
	Status             string                 `json:"status"`
	ScheduledAt        time.Time              `json:"scheduledAt"`
	ScheduledEndAt     time.Time              `json:"scheduledEndAt"`
	Price              pricing.Money          `json:"price"`
	Notes              *string                `json:"notes,omitempty"`
	CancellationReason *string                `json:"cancellationReason,omitempty"`
	CompletedAt        *time.Time             `json:"completedAt,omitempty"`
	Addons             []BookingAddonResponse `json:"addons"`
	CreatedAt          time.Time              `json:"createdAt"`
	UpdatedAt          time.Time              `json:"updatedAt"`
}

type BookingListResponse struct {
	Items      []BookingResponse  `json:"items"`
	Pagination queries.Pagination `json:"pagination"`
}

func FromBookingView(rm *queries.BookingView) *BookingResponse {
	addons := make([]BookingAddonResponse, len(rm.Addons))
	for i, a := range rm.Addons {
		addons[i] = BookingAddonResponse{
			AddonID:  a.AddonID,
			Name:     a.Name,
			Quantity: a.Quantity,
			Price:    a.Price,
		}
	}

	return &BookingResponse{
		ID:                 rm.ID,
		CustomerID:         rm.CustomerID,
		ProfessionalID:     rm.ProfessionalID,
		ServiceID:          rm.ServiceID,
		ServiceName:        rm.ServiceName,
		AddressID:          rm.AddressID,
		SlotID:             rm.SlotID,
		Status:             rm.Status.String(),
		ScheduledAt:        rm.ScheduledAt,
		ScheduledEndAt:     rm.ScheduledEndAt,
		Price:              rm.Price,
		Notes:              rm.Notes,
		CancellationReason: rm.CancellationReason,
		CompletedAt:        rm.CompletedAt,
		Addons:             addons,
		CreatedAt:          rm.CreatedAt,
		UpdatedAt:          rm.UpdatedAt,
	}
}

func FromBookingList(list *queries.BookingList) *BookingListResponse {
	items := make([]BookingResponse, len(list.Items))
	for i := range list.Items {
		items[i] = *FromBookingView(&list.Items[i])
	}
	return &BookingListResponse{
		Items:      items,
		Pagination: list.Pagination,
	}
}
