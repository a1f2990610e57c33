package errors

import "errors"

var (
	ErrListingNotFound        = errors.New("marketplace listing not found")
	ErrInvalidListingInput    = errors.New("invalid marketplace listing input")
	ErrMarketplaceUnavailable = errors.New("marketplace store unavailable")
)
