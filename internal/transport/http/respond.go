package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Mio254/spacer/internal/domain"
	"github.com/Mio254/spacer/pkg/apperror"
)

// writeErr translates a typed service error; anything untyped is a plain 500
// so internals never leak.
func writeErr(c *gin.Context, err error) {
	if ae, ok := apperror.From(err); ok {
		c.JSON(ae.Status, gin.H{"error": ae})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"code": "internal", "message": "internal error"}})
}

// bookingView is the wire shape of a booking. Status carries the
// time-derived effective status; stored_status keeps the raw row visible
// for admins and debugging.
type bookingView struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	SpaceID       string    `json:"space_id"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	DurationHours int64     `json:"duration_hours"`
	TotalCost     float64   `json:"total_cost"`
	Status        string    `json:"status"`
	StoredStatus  string    `json:"stored_status"`
	PaymentStatus string    `json:"payment_status"`
	InvoiceID     *string   `json:"invoice_id,omitempty"`
}

func viewBooking(b *domain.Booking) bookingView {
	return bookingView{
		ID:            b.ID,
		UserID:        b.UserID,
		SpaceID:       b.SpaceID,
		StartTime:     b.StartTime,
		EndTime:       b.EndTime,
		DurationHours: b.DurationHours,
		TotalCost:     b.TotalCost,
		Status:        string(b.EffectiveStatus(time.Now().UTC())),
		StoredStatus:  string(b.Status),
		PaymentStatus: string(b.PaymentStatus),
		InvoiceID:     b.InvoiceID,
	}
}

func viewBookings(bs []domain.Booking) []bookingView {
	out := make([]bookingView, 0, len(bs))
	for i := range bs {
		out = append(out, viewBooking(&bs[i]))
	}
	return out
}
