package commands

import "servicemarket/internal/pkg/errs"

var (
	ErrSlotNotFound            = errs.New("slot not found")
	ErrSlotConflict            = errs.New("slot is no longer available")
	ErrAddressNotFound         = errs.New("address not found")
	ErrForbiddenAddress        = errs.New("address belongs to another user")
	ErrServiceNotOffered       = errs.New("service not offered by professional")
	ErrAddonNotOffered         = errs.New("addon not offered by professional")
	ErrBookingAlreadyProcessed = errs.New("booking request was already processed")
	ErrBookingNotFound         = errs.New("booking not found")
	ErrBookingNotOwned         = errs.New("booking belongs to another actor")
	ErrProfessionalNotFound    = errs.New("professional not found")
	ErrNoAvailability          = errs.New("professional has no recurring availability")
	ErrEmailAlreadyRegistered  = errs.New("email already registered")
	ErrInvalidCredentials      = errs.New("invalid email or password")
	ErrReviewAlreadyExists     = errs.New("booking already reviewed")
)
