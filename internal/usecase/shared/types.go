package shared

import "github.com/google/uuid"

// AddressSnapshot is the write-side view of a stored address. Ownership
// checks compare UserID against the acting customer.
type AddressSnapshot struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Line1     string
	City      string
	Pincode   string
	Latitude  float64
	Longitude float64
	IsDefault bool
}

// ProfessionalSnapshot links a professional profile to its user account.
type ProfessionalSnapshot struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	BusinessName string
}

type AddressParams struct {
	Line1     string
	City      string
	Pincode   string
	Latitude  float64
	Longitude float64
	IsDefault bool
}
