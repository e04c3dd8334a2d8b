package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Mio254/spacer/internal/domain"
)

var ErrOverlap = errors.New("slot overlapped")

type BookingRepo struct{ db *gorm.DB }

func NewBookingRepo(db *gorm.DB) *BookingRepo {
	return &BookingRepo{db: db}
}

func (r *BookingRepo) Migrate() error {
	return r.db.AutoMigrate(&domain.Booking{}, &domain.EventConsumed{})
}

func (r *BookingRepo) overlapQuery(tx *gorm.DB, spaceID string, start, end time.Time) *gorm.DB {
	return tx.Model(&domain.Booking{}).
		Where("space_id = ? AND status <> ?", spaceID, domain.StatusCancelled).
		Where("start_time < ? AND end_time > ?", end, start)
}

// HasOverlap is the advisory availability read. The authoritative check is
// the one CreateIfFree re-runs inside its transaction.
func (r *BookingRepo) HasOverlap(ctx context.Context, spaceID string, start, end time.Time) (bool, error) {
	var n int64
	err := r.overlapQuery(r.db.WithContext(ctx), spaceID, start, end).Count(&n).Error
	return n > 0, err
}

// CreateIfFree re-checks the overlap predicate and inserts in one
// transaction. On Postgres candidate rows are locked FOR UPDATE; sqlite has
// no row locks, there the caller's per-space serialization covers the race.
func (r *BookingRepo) CreateIfFree(ctx context.Context, b *domain.Booking) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := r.overlapQuery(tx, b.SpaceID, b.StartTime, b.EndTime)
		if tx.Dialector.Name() == "postgres" {
			q = q.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		var existing domain.Booking
		err := q.Take(&existing).Error
		if err == nil {
			return ErrOverlap
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if b.ID == "" {
			b.ID = uuid.NewString()
		}
		return tx.Create(b).Error
	})
}

func (r *BookingRepo) ByID(ctx context.Context, id string) (*domain.Booking, error) {
	var b domain.Booking
	if err := r.db.WithContext(ctx).First(&b, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingRepo) UpdateStatus(ctx context.Context, id string, to domain.BookingStatus) (*domain.Booking, error) {
	var b domain.Booking
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&b, "id = ?", id).Error; err != nil {
			return err
		}
		b.Status = to
		return tx.Save(&b).Error
	})
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// ListFilter narrows List; zero values mean "any".
type ListFilter struct {
	UserID  string
	SpaceID string
	Status  domain.BookingStatus
	Day     time.Time // any booking overlapping that calendar day, UTC
}

func (r *BookingRepo) List(ctx context.Context, f ListFilter, page, size int32) ([]domain.Booking, int64, error) {
	if size <= 0 {
		size = 20
	}
	if page < 0 {
		page = 0
	}
	qb := r.db.WithContext(ctx).Model(&domain.Booking{})
	if f.UserID != "" {
		qb = qb.Where("user_id = ?", f.UserID)
	}
	if f.SpaceID != "" {
		qb = qb.Where("space_id = ?", f.SpaceID)
	}
	if f.Status != "" {
		qb = qb.Where("status = ?", f.Status)
	}
	if !f.Day.IsZero() {
		from := time.Date(f.Day.Year(), f.Day.Month(), f.Day.Day(), 0, 0, 0, 0, time.UTC)
		to := from.Add(24 * time.Hour)
		qb = qb.Where("start_time < ? AND end_time > ?", to, from)
	}
	var total int64
	if err := qb.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var out []domain.Booking
	if err := qb.Order("start_time ASC").Limit(int(size)).Offset(int(page * size)).Find(&out).Error; err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// ConsumeEventOnce inserts the event id and reports whether this call was
// the first to see it.
func (r *BookingRepo) ConsumeEventOnce(ctx context.Context, eventID, eventKey string) (bool, error) {
	rec := domain.EventConsumed{ID: eventID, EventKey: eventKey, ProcessedAt: time.Now().UTC()}
	err := r.db.WithContext(ctx).Create(&rec).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
