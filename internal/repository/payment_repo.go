package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Mio254/spacer/internal/domain"
)

type PaymentRepo struct{ db *gorm.DB }

func NewPaymentRepo(db *gorm.DB) *PaymentRepo {
	return &PaymentRepo{db: db}
}

func (r *PaymentRepo) Migrate() error {
	return r.db.AutoMigrate(&domain.Payment{}, &domain.Invoice{})
}

func (r *PaymentRepo) Create(ctx context.Context, p *domain.Payment) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PaymentRepo) ByIntentID(ctx context.Context, intentID string) (*domain.Payment, error) {
	var p domain.Payment
	if err := r.db.WithContext(ctx).First(&p, "processor_intent_id = ?", intentID).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// UnpaidByBooking returns the live intent for a booking, newest first, so
// CreateIntent can refresh it instead of charging twice.
func (r *PaymentRepo) UnpaidByBooking(ctx context.Context, bookingID string) (*domain.Payment, error) {
	var p domain.Payment
	err := r.db.WithContext(ctx).
		Where("booking_id = ? AND status = ?", bookingID, domain.PaymentUnpaid).
		Order("created_at DESC").
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// MarkPaidAndInvoice flips the booking to paid (and confirmed if still
// pending), marks the payment paid, and issues the invoice in one
// transaction. Retries are no-ops: an already-paid booking just returns its
// existing invoice, and the unique index on invoices.booking_id backstops
// any race two confirmations could still win.
func (r *PaymentRepo) MarkPaidAndInvoice(ctx context.Context, intentID string, dueAt *time.Time) (*domain.Invoice, error) {
	var inv domain.Invoice
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p domain.Payment
		if err := tx.First(&p, "processor_intent_id = ?", intentID).Error; err != nil {
			return err
		}
		var b domain.Booking
		if err := tx.First(&b, "id = ?", p.BookingID).Error; err != nil {
			return err
		}

		if b.PaymentStatus == domain.PaymentPaid {
			return tx.First(&inv, "booking_id = ?", b.ID).Error
		}

		if p.Status != domain.PaymentPaid {
			p.Status = domain.PaymentPaid
			if err := tx.Save(&p).Error; err != nil {
				return err
			}
		}

		inv = domain.Invoice{
			ID:        uuid.NewString(),
			BookingID: b.ID,
			UserID:    b.UserID,
			Amount:    b.TotalCost,
			Currency:  p.Currency,
			IssuedAt:  time.Now().UTC(),
			DueAt:     dueAt,
		}
		if err := tx.Create(&inv).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return tx.First(&inv, "booking_id = ?", b.ID).Error
			}
			return err
		}

		b.PaymentStatus = domain.PaymentPaid
		if b.Status == domain.StatusPending {
			b.Status = domain.StatusConfirmed
		}
		b.InvoiceID = &inv.ID
		return tx.Save(&b).Error
	})
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *PaymentRepo) InvoiceByID(ctx context.Context, id string) (*domain.Invoice, error) {
	var inv domain.Invoice
	if err := r.db.WithContext(ctx).First(&inv, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *PaymentRepo) InvoiceByBooking(ctx context.Context, bookingID string) (*domain.Invoice, error) {
	var inv domain.Invoice
	if err := r.db.WithContext(ctx).First(&inv, "booking_id = ?", bookingID).Error; err != nil {
		return nil, err
	}
	return &inv, nil
}
