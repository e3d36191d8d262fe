package address

import "errors"

var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrFailedToList    = errors.New("failed to list addresses")
)
