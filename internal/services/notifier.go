package services

import (
	"log/slog"

	pubnub "github.com/pubnub/go"

	"ticket-booking/models"
	"ticket-booking/utils"
)

// Notifier publishes booking confirmations to a PubNub channel. A nil
// Notifier is a no-op, so the service works without PubNub credentials.
type Notifier struct {
	pn      *pubnub.PubNub
	channel string
}

func NewNotifier(pn *pubnub.PubNub, channel string) *Notifier {
	if pn == nil {
		return nil
	}
	return &Notifier{pn: pn, channel: channel}
}

// PaymentConfirmed announces a confirmed booking. Publish failures are
// logged, never surfaced to the confirmation request.
func (n *Notifier) PaymentConfirmed(booking *models.Booking) {
	if n == nil {
		return
	}

	messageID, err := utils.GenerateCode(8)
	if err != nil {
		messageID = booking.ID
	}

	go func() {
		_, _, err := n.pn.Publish().
			Channel(n.channel).
			Message(map[string]any{
				"type":       "payment_confirmed",
				"message_id": messageID,
				"booking_id": booking.ID,
				"order_id":   booking.OrderID,
			}).
			Execute()
		if err != nil {
			slog.Error("notifier: publish payment_confirmed", "bookingId", booking.ID, "error", err)
		}
	}()
}
