package request

import (
	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	ProfessionalID uuid.UUID   `json:"professional_id" binding:"required"`
	ServiceID      uuid.UUID   `json:"service_id" binding:"required"`
	SlotID         uuid.UUID   `json:"slot_id" binding:"required"`
	AddressID      uuid.UUID   `json:"address_id" binding:"required"`
	AddonIDs       []uuid.UUID `json:"addon_ids"`
	Notes          *string     `json:"notes,omitempty"`
}

type EstimateRequest struct {
	ProfessionalID uuid.UUID   `json:"professional_id" binding:"required"`
	ServiceID      uuid.UUID   `json:"service_id" binding:"required"`
	AddonIDs       []uuid.UUID `json:"addon_ids"`
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=CONFIRMED COMPLETED CANCELLED"`
	// Reason is required when Status is CANCELLED.
	Reason string `json:"reason"`
}

type CancelBookingRequest struct {
	Reason string `json:"reason" binding:"required"`
}
