package location

import "errors"

var (
	// -- Validation & Input --
	ErrInvalidDistrictID = errors.New("district_id is required and must be a number")

	// -- Upstream --
	ErrRequestFailed       = errors.New("request failed")
	ErrProviderUnreachable = errors.New("unable to reach the shipping provider, please try again later")
)
