package queries

import (
	"time"

	"servicemarket/internal/domain/booking"
	"servicemarket/internal/domain/pricing"

	"github.com/google/uuid"
)

type BookingAddonView struct {
	AddonID  uuid.UUID     `json:"addon_id"`
	Name     string        `json:"name"`
	Quantity int           `json:"quantity"`
	Price    pricing.Money `json:"price"`
}

type BookingView struct {
	ID                 uuid.UUID          `json:"id"`
	CustomerID         uuid.UUID          `json:"customer_id"`
	ProfessionalID     uuid.UUID          `json:"professional_id"`
	ServiceID          uuid.UUID          `json:"service_id"`
	ServiceName        string             `json:"service_name"`
	AddressID          uuid.UUID          `json:"address_id"`
	SlotID             uuid.UUID          `json:"slot_id"`
	Status             booking.Status     `json:"status"`
	ScheduledAt        time.Time          `json:"scheduled_at"`
	ScheduledEndAt     time.Time          `json:"scheduled_end_at"`
	Price              pricing.Money      `json:"price"`
	Notes              *string            `json:"notes,omitempty"`
	CancellationReason *string            `json:"cancellation_reason,omitempty"`
	CompletedAt        *time.Time         `json:"completed_at,omitempty"`
	Addons             []BookingAddonView `json:"addons"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
}

// ListFilter narrows and pages a booking list. Page is 1-based.
type ListFilter struct {
	Status *booking.Status
	Page   int
	Limit  int
}

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// Normalize clamps paging to sane bounds so callers can pass zero values.
func (f ListFilter) Normalize() ListFilter {
	if f.Page < 1 {
		f.Page = DefaultPage
	}
	if f.Limit < 1 {
		f.Limit = DefaultLimit
	}
	if f.Limit > MaxLimit {
		f.Limit = MaxLimit
	}
	return f
}

func (f ListFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}

type Pagination struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

func NewPagination(total int64, page, limit int) Pagination {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return Pagination{Total: total, Page: page, Limit: limit, TotalPages: totalPages}
}

type BookingList struct {
	Items      []BookingView `json:"items"`
	Pagination Pagination    `json:"pagination"`
}

type SlotView struct {
	ID      uuid.UUID `json:"id"`
	StartAt time.Time `json:"start_at"`
	EndAt   time.Time `json:"end_at"`
}

type ReviewList struct {
	Items      []ReviewView `json:"items"`
	Pagination Pagination   `json:"pagination"`
}

type ReviewView struct {
	ID           uuid.UUID `json:"id"`
	BookingID    uuid.UUID `json:"booking_id"`
	CustomerName string    `json:"customer_name"`
	Rating       int       `json:"rating"`
	Comment      string    `json:"comment"`
	CreatedAt    time.Time `json:"created_at"`
}

type AddressView struct {
	ID        uuid.UUID `json:"id"`
	Line1     string    `json:"line1"`
	City      string    `json:"city"`
	Pincode   string    `json:"pincode"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	IsDefault bool      `json:"is_default"`
}

type UserView struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Phone     string    `json:"phone"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}
