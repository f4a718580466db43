package leads

import "errors"

var (
	// ErrInvalidName is returned when the first name is missing
	ErrInvalidName = errors.New("firstName is required")

	// ErrMissingPhone is returned when the phone number is missing
	ErrMissingPhone = errors.New("phone is required")

	// ErrLeadNotFound is returned when a lead is not found
	ErrLeadNotFound = errors.New("lead not found")
)
