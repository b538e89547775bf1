package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"ticket-booking/internal/services"
)

type PaymentHandler struct {
	service *services.BookingService
}

func NewPaymentHandler(service *services.BookingService) *PaymentHandler {
	return &PaymentHandler{service: service}
}

// CreateOrder - Initiate a payment-provider order for a booking amount
func (h *PaymentHandler) CreateOrder(e *core.RequestEvent) error {
	var req services.CreateOrderRequest
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}

	order, err := h.service.CreateOrder(e.Request.Context(), &req)
	if err != nil {
		return apiError(err, "Payment initiation failed")
	}

	return e.JSON(http.StatusOK, order)
}

// Confirm - Verify the provider signature and complete the booking
func (h *PaymentHandler) Confirm(e *core.RequestEvent) error {
	var req services.ConfirmPaymentRequest
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}

	booking, err := h.service.Confirm(e.Request.Context(), &req)
	if err != nil {
		return apiError(err, "Payment confirmation failed")
	}

	return e.JSON(http.StatusOK, map[string]any{
		"message": "Payment confirmed",
		"booking": booking,
	})
}
