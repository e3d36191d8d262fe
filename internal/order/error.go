package order

import "errors"

var (
	ErrUnauthorized    = errors.New("unauthorized")
	ErrCartEmpty       = errors.New("cart is empty")
	ErrAddressRequired = errors.New("delivery address is required")
	ErrFailedCreate    = errors.New("failed to create order")
)
