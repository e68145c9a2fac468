package booking

import "errors"

var (
	ErrBookingNotFound     = errors.New("booking not found")
	ErrNoAvailability      = errors.New("no rooms available for the requested range")
	ErrInvalidState        = errors.New("operation not permitted in current booking state")
	ErrValidation          = errors.New("validation error")
	ErrPriceOverrideTooLow = errors.New("price override below the permitted floor")
	ErrPaymentIncomplete   = errors.New("booking is not fully paid")
)
