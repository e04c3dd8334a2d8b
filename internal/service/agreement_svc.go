package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Mio254/spacer/internal/domain"
	"github.com/Mio254/spacer/internal/repository"
)

// AgreementSvc records rental-agreement acceptances ahead of payment.
type AgreementSvc struct {
	agreements *repository.AgreementRepo
	bookings   *repository.BookingRepo
}

func NewAgreementSvc(agreements *repository.AgreementRepo, bookings *repository.BookingRepo) *AgreementSvc {
	return &AgreementSvc{agreements: agreements, bookings: bookings}
}

func (s *AgreementSvc) Accept(ctx context.Context, actor domain.Actor, bookingID, ip string) (*domain.AgreementAcceptance, error) {
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
	a, err := s.agreements.Accept(ctx, actor.ID, bookingID, ip)
	if errors.Is(err, repository.ErrDuplicateAcceptance) {
		return nil, domain.ErrAlreadyAccepted
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (s *AgreementSvc) Accepted(ctx context.Context, actor domain.Actor, bookingID string) (bool, error) {
	return s.agreements.Exists(ctx, actor.ID, bookingID)
}
