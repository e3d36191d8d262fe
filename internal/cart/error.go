package cart

import "errors"

var (
	// -- Authentication/Authorization --
	ErrUserNotAuthenticated = errors.New("user not authenticated")
	ErrForbidden            = errors.New("admin role required")

	// -- Validation & Input --
	ErrInvalidQuantity      = errors.New("quantity must be at least 1")
	ErrInvalidPrice         = errors.New("price must not be negative")
	ErrInvalidAddOnQuantity = errors.New("add-on quantity must be between 0 and 10")
	ErrInvalidProduct       = errors.New("product id is required")

	// -- Persistence --
	ErrFailedLoadCart  = errors.New("failed to load cart snapshot")
	ErrFailedSaveCart  = errors.New("failed to save cart snapshot")
	ErrCorruptSnapshot = errors.New("cart snapshot is not valid json")
)
