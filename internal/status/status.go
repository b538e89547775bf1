package status

import "errors"

var (
	ErrInvalidBooking       = errors.New("booking: invalid booking details")
	ErrInvalidOrder         = errors.New("payment: amount and currency are required")
	ErrMissingConfirmFields = errors.New("payment: missing required fields")
	ErrSignatureMismatch    = errors.New("payment: invalid payment signature")
	ErrBookingNotFound      = errors.New("booking: booking not found")
	ErrConfirmConflict      = errors.New("booking: already confirmed with different payment details")
)
