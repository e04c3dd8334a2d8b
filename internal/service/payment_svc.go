package service

import (
	"context"
	"errors"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/Mio254/spacer/internal/domain"
	"github.com/Mio254/spacer/internal/pricing"
	"github.com/Mio254/spacer/internal/processor"
	"github.com/Mio254/spacer/internal/repository"
)

// PaymentSvc reconciles bookings against the external processor. Processor
// calls are the only network I/O in the core and always run under a
// deadline; a timeout is an unknown outcome, never a success.
type PaymentSvc struct {
	bookings *repository.BookingRepo
	payments *repository.PaymentRepo
	proc     processor.Processor
	pub      Publisher

	currency string
	timeout  time.Duration
	dueIn    time.Duration // 0 means invoices are due on issue
}

func NewPaymentSvc(bookings *repository.BookingRepo, payments *repository.PaymentRepo, proc processor.Processor, pub Publisher, currency string, timeout, dueIn time.Duration) *PaymentSvc {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &PaymentSvc{
		bookings: bookings,
		payments: payments,
		proc:     proc,
		pub:      pub,
		currency: currency,
		timeout:  timeout,
		dueIn:    dueIn,
	}
}

// IntentResult is what the client needs to finish the charge.
type IntentResult struct {
	IntentID     string `json:"payment_intent_id"`
	ClientSecret string `json:"client_secret"`
	Amount       float64
	Currency     string
}

// CreateIntent is idempotent: a live unpaid intent for the booking is
// refreshed from the processor and returned instead of a second charge.
func (s *PaymentSvc) CreateIntent(ctx context.Context, actor domain.Actor, bookingID string) (*IntentResult, error) {
	b, err := s.bookings.ByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, err
	}
	if actor.ID != b.UserID {
		return nil, domain.ErrNotAuthorized
	}
	if b.PaymentStatus == domain.PaymentPaid {
		return nil, domain.ErrAlreadyPaid
	}
	if b.Status == domain.StatusCancelled {
		return nil, domain.ErrInvalidTransition
	}

	if existing, err := s.payments.UnpaidByBooking(ctx, b.ID); err == nil {
		intent, rerr := s.retrieve(ctx, existing.ProcessorIntentID)
		if rerr != nil {
			return nil, rerr
		}
		return &IntentResult{
			IntentID:     intent.ID,
			ClientSecret: intent.ClientSecret,
			Amount:       existing.Amount,
			Currency:     existing.Currency,
		}, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	cctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	intent, err := s.proc.CreateIntent(cctx, pricing.MinorUnits(b.TotalCost), s.currency, map[string]interface{}{
		"booking_id": b.ID,
	})
	if err != nil {
		log.Printf("[payment] create intent booking=%s: %v", b.ID, err)
		return nil, domain.ErrUpstream
	}

	p := &domain.Payment{
		BookingID:         b.ID,
		Amount:            b.TotalCost,
		Currency:          s.currency,
		Status:            domain.PaymentUnpaid,
		ProcessorIntentID: intent.ID,
	}
	if err := s.payments.Create(ctx, p); err != nil {
		return nil, err
	}
	return &IntentResult{
		IntentID:     intent.ID,
		ClientSecret: intent.ClientSecret,
		Amount:       b.TotalCost,
		Currency:     s.currency,
	}, nil
}

// Confirm verifies the intent with the processor and settles the booking:
// payment_status paid, status confirmed if still pending, exactly one
// invoice. Confirming an already-invoiced booking returns that invoice.
func (s *PaymentSvc) Confirm(ctx context.Context, actor domain.Actor, intentID string) (*domain.Invoice, error) {
	p, err := s.payments.ByIntentID(ctx, intentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, err
	}
	b, err := s.bookings.ByID(ctx, p.BookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, err
	}
	if !actor.IsAdmin() && !actor.IsSystem() && actor.ID != b.UserID {
		return nil, domain.ErrNotAuthorized
	}

	intent, err := s.retrieve(ctx, intentID)
	if err != nil {
		return nil, err
	}
	if intent.Status != processor.IntentSucceeded {
		return nil, domain.ErrPaymentNotSucceeded
	}

	var dueAt *time.Time
	if s.dueIn > 0 {
		d := time.Now().UTC().Add(s.dueIn)
		dueAt = &d
	}
	inv, err := s.payments.MarkPaidAndInvoice(ctx, intentID, dueAt)
	if err != nil {
		return nil, err
	}

	if s.pub != nil {
		if perr := s.pub.PublishJSON(ctx, "payment.paid", map[string]any{
			"payment_intent_id": intentID,
			"booking_id":        inv.BookingID,
			"invoice_id":        inv.ID,
			"amount":            inv.Amount,
			"currency":          inv.Currency,
		}); perr != nil {
			log.Printf("[payment] publish payment.paid: %v", perr)
		}
	}
	return inv, nil
}

// ConfirmFromEvent is the webhook entry point. The event is re-fetched from
// the processor before anything is trusted, then deduped by its id, then
// funneled into the same Confirm path the client uses.
func (s *PaymentSvc) ConfirmFromEvent(ctx context.Context, eventID string) error {
	cctx, cancel := context.WithTimeout(ctx, s.timeout)
	ev, err := s.proc.RetrieveEvent(cctx, eventID)
	cancel()
	if err != nil {
		log.Printf("[payment] retrieve event %s: %v", eventID, err)
		return domain.ErrUpstream
	}
	if ev.IntentID == "" || !ev.Paid {
		return nil // not a settlement event; ack and move on
	}
	fresh, err := s.bookings.ConsumeEventOnce(ctx, ev.ID, "payment.paid")
	if err != nil {
		return err
	}
	if !fresh {
		return nil
	}
	_, err = s.Confirm(ctx, domain.SystemActor, ev.IntentID)
	if errors.Is(err, domain.ErrBookingNotFound) {
		// a charge we never issued; nothing to settle
		return nil
	}
	return err
}

func (s *PaymentSvc) GetInvoice(ctx context.Context, actor domain.Actor, invoiceID string) (*domain.Invoice, error) {
	inv, err := s.payments.InvoiceByID(ctx, invoiceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInvoiceNotFound
		}
		return nil, err
	}
	if !actor.IsAdmin() && actor.ID != inv.UserID {
		return nil, domain.ErrNotAuthorized
	}
	return inv, nil
}

func (s *PaymentSvc) retrieve(ctx context.Context, intentID string) (*processor.Intent, error) {
	cctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	intent, err := s.proc.RetrieveIntent(cctx, intentID)
	if err != nil {
		log.Printf("[payment] retrieve intent %s: %v", intentID, err)
		return nil, domain.ErrUpstream
	}
	return intent, nil
}
