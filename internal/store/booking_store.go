// Package store persists bookings in the PocketBase "bookings" collection.
package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/pocketbase/pocketbase/core"

	"ticket-booking/internal/status"
	"ticket-booking/models"
)

const bookingsCollection = "bookings"

type BookingStore struct {
	app core.App
}

func NewBookingStore(app core.App) *BookingStore {
	return &BookingStore{app: app}
}

func (s *BookingStore) FindByID(ctx context.Context, id string) (*models.Booking, error) {
	record, err := s.app.FindRecordById(bookingsCollection, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, status.ErrBookingNotFound
		}
		return nil, err
	}

	booking := bookingFromRecord(record)
	return &booking, nil
}

func (s *BookingStore) Insert(ctx context.Context, booking *models.Booking) error {
	collection, err := s.app.FindCollectionByNameOrId(bookingsCollection)
	if err != nil {
		return err
	}

	record := core.NewRecord(collection)
	record.Set("name", booking.Name)
	record.Set("email", booking.Email)
	record.Set("quantity", booking.Quantity)
	record.Set("amount", booking.Amount)
	record.Set("payment_status", string(booking.PaymentStatus))

	if err := s.app.SaveWithContext(ctx, record); err != nil {
		return err
	}

	booking.ID = record.Id
	booking.CreatedAt = record.GetDateTime("created").Time()
	return nil
}

// Update persists the confirmation fields of an existing booking.
func (s *BookingStore) Update(ctx context.Context, booking *models.Booking) error {
	record, err := s.app.FindRecordById(bookingsCollection, booking.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return status.ErrBookingNotFound
		}
		return err
	}

	record.Set("payment_id", booking.PaymentID)
	record.Set("order_id", booking.OrderID)
	record.Set("payment_status", string(booking.PaymentStatus))

	return s.app.SaveWithContext(ctx, record)
}

// List returns every booking in store-native order.
func (s *BookingStore) List(ctx context.Context) ([]models.Booking, error) {
	records, err := s.app.FindAllRecords(bookingsCollection)
	if err != nil {
		return nil, err
	}

	bookings := make([]models.Booking, 0, len(records))
	for _, record := range records {
		bookings = append(bookings, bookingFromRecord(record))
	}
	return bookings, nil
}

func bookingFromRecord(r *core.Record) models.Booking {
	return models.Booking{
		ID:            r.Id,
		Name:          r.GetString("name"),
		Email:         r.GetString("email"),
		Quantity:      r.GetInt("quantity"),
		Amount:        int64(r.GetInt("amount")),
		PaymentID:     r.GetString("payment_id"),
		OrderID:       r.GetString("order_id"),
		PaymentStatus: models.PaymentStatus(r.GetString("payment_status")),
		CreatedAt:     r.GetDateTime("created").Time(),
	}
}
