package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Mio254/spacer/internal/domain"
)

var ErrDuplicateAcceptance = errors.New("agreement already accepted")

type AgreementRepo struct{ db *gorm.DB }

func NewAgreementRepo(db *gorm.DB) *AgreementRepo {
	return &AgreementRepo{db: db}
}

func (r *AgreementRepo) Migrate() error {
	return r.db.AutoMigrate(&domain.AgreementAcceptance{})
}

// Accept records one acceptance per (user, booking); the unique index makes
// the duplicate check and the insert a single step.
func (r *AgreementRepo) Accept(ctx context.Context, userID, bookingID, ip string) (*domain.AgreementAcceptance, error) {
	a := domain.AgreementAcceptance{
		ID:         uuid.NewString(),
		UserID:     userID,
		BookingID:  bookingID,
		AcceptedAt: time.Now().UTC(),
		IPAddress:  ip,
	}
	err := r.db.WithContext(ctx).Create(&a).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, ErrDuplicateAcceptance
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AgreementRepo) Exists(ctx context.Context, userID, bookingID string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.AgreementAcceptance{}).
		Where("user_id = ? AND booking_id = ?", userID, bookingID).
		Count(&n).Error
	return n > 0, err
}
