package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"ticket-booking/internal/services"
)

type BookingHandler struct {
	service *services.BookingService
}

func NewBookingHandler(service *services.BookingService) *BookingHandler {
	return &BookingHandler{service: service}
}

// Create - Create a new booking with a pending payment
func (h *BookingHandler) Create(e *core.RequestEvent) error {
	var req services.CreateBookingRequest
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}

	res, err := h.service.Create(e.Request.Context(), &req)
	if err != nil {
		return apiError(err, "Booking failed")
	}

	return e.JSON(http.StatusOK, res)
}

// List - Fetch all bookings
func (h *BookingHandler) List(e *core.RequestEvent) error {
	bookings, err := h.service.List(e.Request.Context())
	if err != nil {
		return apiError(err, "Error fetching bookings")
	}

	return e.JSON(http.StatusOK, bookings)
}
