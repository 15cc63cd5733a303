package queries

import "servicemarket/internal/pkg/errs"

var (
	ErrBookingNotFound      = errs.New("booking not found")
	ErrForbidden            = errs.New("actor may not view this resource")
	ErrProfessionalNotFound = errs.New("professional not found")
	ErrServiceNotOffered    = errs.New("service not offered by professional")
	ErrAddonNotOffered      = errs.New("addon not offered by professional")
	ErrUserNotFound         = errs.New("user not found")
)
