package models

import (
	"time"
)

// PaymentStatus is the payment lifecycle of a booking. A booking starts
// pending and moves to completed exactly once, via a verified confirmation.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
)

// Valid reports whether s is one of the known statuses.
func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentCompleted:
		return true
	}
	return false
}

type Booking struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Email         string        `json:"email"`
	Quantity      int           `json:"quantity"`
	Amount        int64         `json:"amount"` // whole currency units
	PaymentID     string        `json:"paymentId,omitempty"`
	OrderID       string        `json:"orderId,omitempty"`
	PaymentStatus PaymentStatus `json:"paymentStatus"`
	CreatedAt     time.Time     `json:"createdAt"`
}

// Completed reports whether the booking has a verified payment.
func (b *Booking) Completed() bool {
	return b.PaymentStatus == PaymentCompleted
}
