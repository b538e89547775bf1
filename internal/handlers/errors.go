package handlers

import (
	"errors"
	"net/http"

	"github.com/pocketbase/pocketbase/apis"

	"ticket-booking/internal/status"
)

// apiError maps service errors to the HTTP error taxonomy. Unknown errors
// become 500s; fallback carries the operation message for diagnostics.
func apiError(err error, fallback string) error {
	switch {
	case errors.Is(err, status.ErrInvalidBooking),
		errors.Is(err, status.ErrInvalidOrder),
		errors.Is(err, status.ErrMissingConfirmFields):
		return apis.NewBadRequestError(err.Error(), nil)

	case errors.Is(err, status.ErrSignatureMismatch):
		return apis.NewBadRequestError("Invalid payment signature", nil)

	case errors.Is(err, status.ErrBookingNotFound):
		return apis.NewNotFoundError("Booking not found", nil)

	case errors.Is(err, status.ErrConfirmConflict):
		return apis.NewApiError(http.StatusConflict, "Booking already confirmed with a different payment", nil)

	default:
		return apis.NewInternalServerError(fallback, err)
	}
}
