package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Mio254/spacer/internal/domain"
)

type SpaceRepo struct{ db *gorm.DB }

func NewSpaceRepo(db *gorm.DB) *SpaceRepo {
	return &SpaceRepo{db: db}
}

func (r *SpaceRepo) Migrate() error {
	return r.db.AutoMigrate(&domain.Space{})
}

func (r *SpaceRepo) Create(ctx context.Context, s *domain.Space) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *SpaceRepo) ByID(ctx context.Context, id string) (*domain.Space, error) {
	var s domain.Space
	if err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

// List returns spaces, active-only unless includeInactive (admin view).
func (r *SpaceRepo) List(ctx context.Context, includeInactive bool, page, size int32) ([]domain.Space, error) {
	if size <= 0 {
		size = 20
	}
	if page < 0 {
		page = 0
	}
	qb := r.db.WithContext(ctx).Model(&domain.Space{})
	if !includeInactive {
		qb = qb.Where("is_active = ?", true)
	}
	var out []domain.Space
	err := qb.Order("name ASC").Limit(int(size)).Offset(int(page * size)).Find(&out).Error
	return out, err
}

func (r *SpaceRepo) Save(ctx context.Context, s *domain.Space) error {
	return r.db.WithContext(ctx).Save(s).Error
}

// SetActive is the soft delete/restore. Bookings are untouched.
func (r *SpaceRepo) SetActive(ctx context.Context, id string, active bool) (*domain.Space, error) {
	var s domain.Space
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&s, "id = ?", id).Error; err != nil {
			return err
		}
		s.IsActive = active
		return tx.Save(&s).Error
	})
	if err != nil {
		return nil, err
	}
	return &s, nil
}
