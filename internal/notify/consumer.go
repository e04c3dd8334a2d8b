package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/Mio254/spacer/pkg/mq"
)

const (
	rkBookingCreated   = "booking.created"
	rkBookingCancelled = "booking.cancelled"
	rkStatusChanged    = "booking.status_changed"
	rkPaymentPaid      = "payment.paid"
)

// RoutingKeys are what the consumer queue binds to.
var RoutingKeys = []string{rkBookingCreated, rkBookingCancelled, rkStatusChanged, rkPaymentPaid}

type bookingCreated struct {
	BookingID string  `json:"booking_id"`
	UserID    string  `json:"user_id"`
	SpaceID   string  `json:"space_id"`
	Start     int64   `json:"start"`
	End       int64   `json:"end"`
	TotalCost float64 `json:"total_cost"`
}

type bookingSimple struct {
	BookingID string `json:"booking_id"`
	Status    string `json:"status,omitempty"`
}

type paymentPaid struct {
	BookingID string  `json:"booking_id"`
	InvoiceID string  `json:"invoice_id"`
	Amount    float64 `json:"amount"`
	Currency  string  `json:"currency"`
}

// Consumer turns booking/payment events into notifications. Undecodable
// payloads are dropped, not requeued; delivery failures requeue once via
// nack.
type Consumer struct {
	cons *mq.Consumer
	n    Notifier
}

func NewConsumer(cons *mq.Consumer, n Notifier) *Consumer {
	return &Consumer{cons: cons, n: n}
}

func (c *Consumer) Run(ctx context.Context) error {
	msgs, err := c.cons.Deliveries(ctx)
	if err != nil {
		return err
	}
	go func() {
		for d := range msgs {
			subject, message, err := c.render(d.RoutingKey, d.Body)
			if err != nil {
				log.Printf("[notify] decode %s: %v", d.RoutingKey, err)
				_ = d.Nack(false, false)
				continue
			}
			if subject == "" {
				_ = d.Ack(false)
				continue
			}
			if err := c.n.Notify(subject, message); err != nil {
				log.Printf("[notify] deliver: %v", err)
				_ = d.Nack(false, true)
				continue
			}
			_ = d.Ack(false)
		}
	}()
	return nil
}

func (c *Consumer) render(key string, body []byte) (string, string, error) {
	switch key {
	case rkBookingCreated:
		var e bookingCreated
		if err := json.Unmarshal(body, &e); err != nil {
			return "", "", err
		}
		return "Booking received",
			fmt.Sprintf("booking %s for space %s, %s, total %.2f",
				e.BookingID, e.SpaceID, humanTimeRange(e.Start, e.End), e.TotalCost), nil
	case rkBookingCancelled:
		var e bookingSimple
		if err := json.Unmarshal(body, &e); err != nil {
			return "", "", err
		}
		return "Booking cancelled", fmt.Sprintf("booking %s was cancelled", e.BookingID), nil
	case rkStatusChanged:
		var e bookingSimple
		if err := json.Unmarshal(body, &e); err != nil {
			return "", "", err
		}
		return "Booking updated", fmt.Sprintf("booking %s is now %s", e.BookingID, e.Status), nil
	case rkPaymentPaid:
		var e paymentPaid
		if err := json.Unmarshal(body, &e); err != nil {
			return "", "", err
		}
		return "Payment received",
			fmt.Sprintf("booking %s paid, invoice %s, %.2f %s",
				e.BookingID, e.InvoiceID, e.Amount, e.Currency), nil
	default:
		return "", "", nil
	}
}
