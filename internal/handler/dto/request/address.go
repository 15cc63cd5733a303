package request

import "servicemarket/internal/usecase/shared"

type CreateAddressRequest struct {
	Line1     string  `json:"line1" binding:"required"`
	City      string  `json:"city" binding:"required"`
	Pincode   string  `json:"pincode" binding:"required"`
	Latitude  float64 `json:"latitude" binding:"min=-90,max=90"`
	Longitude float64 `json:"longitude" binding:"min=-180,max=180"`
	IsDefault bool    `json:"is_default"`
}

func (r CreateAddressRequest) ToParams() shared.AddressParams {
	return shared.AddressParams{
		Line1:     r.Line1,
		City:      r.City,
		Pincode:   r.Pincode,
		Latitude:  r.Latitude,
		Longitude: r.Longitude,
		IsDefault: r.IsDefault,
	}
}
