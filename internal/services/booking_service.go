package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"ticket-booking/internal/services/payment/razorpay"
	"ticket-booking/internal/status"
	"ticket-booking/models"
	"ticket-booking/monitoring"
	"ticket-booking/utils"
)

// BookingStore is the persistence surface the service needs. Implemented by
// store.BookingStore; tests substitute an in-memory fake.
type BookingStore interface {
	FindByID(ctx context.Context, id string) (*models.Booking, error)
	Insert(ctx context.Context, booking *models.Booking) error
	Update(ctx context.Context, booking *models.Booking) error
	List(ctx context.Context) ([]models.Booking, error)
}

// PaymentProvider is the externally-owned payment collaborator, injected at
// startup so it can be substituted with a test double.
type PaymentProvider interface {
	CreateOrder(ctx context.Context, req *razorpay.OrderRequest) (*razorpay.Order, error)
	VerifySignature(orderID, paymentID, signature string) bool
}

type BookingConfig struct {
	UnitPrice    int64
	Currency     string
	OrderReceipt string
}

type BookingService struct {
	store    BookingStore
	provider PaymentProvider
	notifier *Notifier
	breaker  *utils.CircuitBreaker
	cfg      BookingConfig
}

func NewBookingService(store BookingStore, provider PaymentProvider, notifier *Notifier, cfg BookingConfig) *BookingService {
	return &BookingService{
		store:    store,
		provider: provider,
		notifier: notifier,
		breaker:  utils.NewCircuitBreaker("razorpay"),
		cfg:      cfg,
	}
}

type CreateBookingRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Quantity int    `json:"quantity"`
}

type CreateBookingResponse struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// Create validates the attendee details and persists a pending booking.
// The amount is quantity times the fixed unit price.
func (s *BookingService) Create(ctx context.Context, req *CreateBookingRequest) (*CreateBookingResponse, error) {
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" || req.Quantity < 1 {
		return nil, status.ErrInvalidBooking
	}

	amount := decimal.NewFromInt(int64(req.Quantity)).
		Mul(decimal.NewFromInt(s.cfg.UnitPrice)).
		IntPart()

	booking := &models.Booking{
		Name:          req.Name,
		Email:         req.Email,
		Quantity:      req.Quantity,
		Amount:        amount,
		PaymentStatus: models.PaymentPending,
	}

	if err := s.store.Insert(ctx, booking); err != nil {
		slog.Error("bookingService.Create: store.Insert", "error", err)
		return nil, err
	}

	monitoring.TrackBookingCreated(amount)

	return &CreateBookingResponse{
		ID:       booking.ID,
		Amount:   amount,
		Currency: s.cfg.Currency,
	}, nil
}

func (s *BookingService) List(ctx context.Context) ([]models.Booking, error) {
	return s.store.List(ctx)
}

type CreateOrderRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// CreateOrder delegates to the payment provider, converting the amount to
// the provider's minor currency unit. Nothing is persisted locally.
func (s *BookingService) CreateOrder(ctx context.Context, req *CreateOrderRequest) (*razorpay.Order, error) {
	if req.Amount == 0 || req.Currency == "" {
		return nil, status.ErrInvalidOrder
	}

	minorAmount := decimal.NewFromInt(req.Amount).
		Mul(decimal.NewFromInt(100)).
		IntPart()

	result, err := s.breaker.Execute(ctx, func() (any, error) {
		return s.provider.CreateOrder(ctx, &razorpay.OrderRequest{
			Amount:   minorAmount,
			Currency: req.Currency,
			Receipt:  s.cfg.OrderReceipt,
		})
	})
	if err != nil {
		slog.Error("bookingService.CreateOrder: provider.CreateOrder", "amount", minorAmount, "error", err)
		monitoring.TrackOrder("error")
		return nil, err
	}

	monitoring.TrackOrder("created")
	return result.(*razorpay.Order), nil
}

type ConfirmPaymentRequest struct {
	PaymentID string `json:"razorpay_payment_id"`
	OrderID   string `json:"razorpay_order_id"`
	Signature string `json:"razorpay_signature"`
	BookingID string `json:"bookingId"`
}

// Confirm verifies the provider signature and marks the booking completed.
// A repeated confirmation with identical provider identifiers succeeds
// without re-writing; one with different identifiers is a conflict.
func (s *BookingService) Confirm(ctx context.Context, req *ConfirmPaymentRequest) (*models.Booking, error) {
	if req.PaymentID == "" || req.OrderID == "" || req.Signature == "" || req.BookingID == "" {
		return nil, status.ErrMissingConfirmFields
	}

	if !s.provider.VerifySignature(req.OrderID, req.PaymentID, req.Signature) {
		monitoring.TrackConfirmation("signature_mismatch")
		return nil, status.ErrSignatureMismatch
	}

	booking, err := s.store.FindByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, status.ErrBookingNotFound) {
			monitoring.TrackConfirmation("not_found")
		}
		return nil, err
	}

	if booking.Completed() {
		if booking.PaymentID == req.PaymentID && booking.OrderID == req.OrderID {
			monitoring.TrackConfirmation("duplicate")
			return booking, nil
		}
		monitoring.TrackConfirmation("conflict")
		return nil, status.ErrConfirmConflict
	}

	booking.PaymentID = req.PaymentID
	booking.OrderID = req.OrderID
	booking.PaymentStatus = models.PaymentCompleted

	if err := s.store.Update(ctx, booking); err != nil {
		slog.Error("bookingService.Confirm: store.Update", "bookingId", booking.ID, "error", err)
		return nil, err
	}

	monitoring.TrackConfirmation("completed")
	s.notifier.PaymentConfirmed(booking)

	return booking, nil
}
