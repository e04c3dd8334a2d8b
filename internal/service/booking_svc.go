package service

import (
	"context"
	"errors"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/Mio254/spacer/internal/domain"
	"github.com/Mio254/spacer/internal/pricing"
	"github.com/Mio254/spacer/internal/repository"
)

// BookingSvc is the reservation engine: it owns the booking lifecycle and
// the disjointness guarantee for each space.
type BookingSvc struct {
	spaces   *repository.SpaceRepo
	bookings *repository.BookingRepo
	pub      Publisher
	locks    *spaceLocks
}

func NewBookingSvc(spaces *repository.SpaceRepo, bookings *repository.BookingRepo, pub Publisher) *BookingSvc {
	return &BookingSvc{spaces: spaces, bookings: bookings, pub: pub, locks: newSpaceLocks()}
}

func (s *BookingSvc) publish(ctx context.Context, key string, v any) {
	if s.pub == nil {
		return
	}
	if err := s.pub.PublishJSON(ctx, key, v); err != nil {
		log.Printf("[booking] publish %s: %v", key, err)
	}
}

// CheckAvailability is the advisory read. An inactive or unknown space is
// simply not available for discovery; only a bad range is an error.
func (s *BookingSvc) CheckAvailability(ctx context.Context, spaceID string, start, end time.Time) (bool, error) {
	start, end = start.UTC(), end.UTC()
	if !end.After(start) {
		return false, domain.ErrInvalidRange
	}
	sp, err := s.spaces.ByID(ctx, spaceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	if !sp.IsActive {
		return false, nil
	}
	overlap, err := s.bookings.HasOverlap(ctx, spaceID, start, end)
	if err != nil {
		return false, err
	}
	return !overlap, nil
}

// Create validates, prices, then serializes the check-and-insert per space.
// One transient store failure earns one retry; everything after that is
// SlotUnavailable.
func (s *BookingSvc) Create(ctx context.Context, actor domain.Actor, spaceID string, start, end time.Time) (*domain.Booking, error) {
	start, end = start.UTC(), end.UTC()
	if !end.After(start) {
		return nil, domain.ErrInvalidRange
	}
	sp, err := s.spaces.ByID(ctx, spaceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrSpaceNotFound
		}
		return nil, err
	}
	if !sp.IsActive {
		return nil, domain.ErrSpaceInactive
	}

	hours := pricing.BilledHours(start, end)
	cost, err := pricing.Cost(hours, sp.PricePerHour)
	if err != nil {
		return nil, err
	}

	b := &domain.Booking{
		UserID:        actor.ID,
		SpaceID:       sp.ID,
		StartTime:     start,
		EndTime:       end,
		DurationHours: hours,
		TotalCost:     cost,
		Status:        domain.StatusPending,
		PaymentStatus: domain.PaymentUnpaid,
	}

	lock := s.locks.forSpace(sp.ID)
	lock.Lock()
	err = s.bookings.CreateIfFree(ctx, b)
	if err != nil && !errors.Is(err, repository.ErrOverlap) {
		// transient serialization/constraint failure: re-run the
		// check-and-insert once
		err = s.bookings.CreateIfFree(ctx, b)
	}
	lock.Unlock()
	if err != nil {
		if errors.Is(err, repository.ErrOverlap) || errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.ErrSlotUnavailable
		}
		return nil, err
	}

	s.publish(ctx, "booking.created", map[string]any{
		"booking_id": b.ID, "user_id": b.UserID, "space_id": b.SpaceID,
		"start": b.StartTime.Unix(), "end": b.EndTime.Unix(), "total_cost": b.TotalCost,
	})
	return b, nil
}

// Cancel frees the interval immediately. Owners may cancel their own unpaid
// bookings; anything paid needs an admin.
func (s *BookingSvc) Cancel(ctx context.Context, actor domain.Actor, bookingID string) (*domain.Booking, error) {
	b, err := s.byID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	owns := actor.ID == b.UserID && b.PaymentStatus == domain.PaymentUnpaid
	if !actor.IsAdmin() && !owns {
		return nil, domain.ErrNotAuthorized
	}
	// the gate runs on the effective status: a window already underway or
	// over is not cancellable even though the row still says confirmed
	if !domain.CanTransition(b.EffectiveStatus(time.Now().UTC()), domain.StatusCancelled) {
		return nil, domain.ErrInvalidTransition
	}
	b, err = s.bookings.UpdateStatus(ctx, b.ID, domain.StatusCancelled)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, "booking.cancelled", map[string]any{"booking_id": b.ID})
	return b, nil
}

// SetStatus is the admin override, bounded by the same transition table as
// the normal flow.
func (s *BookingSvc) SetStatus(ctx context.Context, actor domain.Actor, bookingID string, to domain.BookingStatus) (*domain.Booking, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrNotAuthorized
	}
	b, err := s.byID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !domain.CanTransition(b.EffectiveStatus(time.Now().UTC()), to) {
		return nil, domain.ErrInvalidTransition
	}
	b, err = s.bookings.UpdateStatus(ctx, b.ID, to)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, "booking.status_changed", map[string]any{"booking_id": b.ID, "status": string(b.Status)})
	return b, nil
}

func (s *BookingSvc) Get(ctx context.Context, actor domain.Actor, bookingID string) (*domain.Booking, error) {
	b, err := s.byID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && !actor.IsSystem() && actor.ID != b.UserID {
		return nil, domain.ErrNotAuthorized
	}
	return b, nil
}

// List is admin-only; users go through ListMine.
func (s *BookingSvc) List(ctx context.Context, actor domain.Actor, f repository.ListFilter, page, size int32) ([]domain.Booking, int64, error) {
	if !actor.IsAdmin() {
		return nil, 0, domain.ErrNotAuthorized
	}
	return s.bookings.List(ctx, f, page, size)
}

func (s *BookingSvc) ListMine(ctx context.Context, actor domain.Actor, page, size int32) ([]domain.Booking, int64, error) {
	return s.bookings.List(ctx, repository.ListFilter{UserID: actor.ID}, page, size)
}

func (s *BookingSvc) byID(ctx context.Context, id string) (*domain.Booking, error) {
	b, err := s.bookings.ByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, err
	}
	return b, nil
}
