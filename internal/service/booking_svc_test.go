package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/Mio254/spacer/internal/domain"
	"github.com/Mio254/spacer/internal/repository"
)

func newBookingSvc(t *testing.T) (*BookingSvc, *domain.Space, *gorm.DB) {
	t.Helper()
	gdb := newTestDB(t)
	sp := seedSpace(t, gdb, 1000)
	svc := NewBookingSvc(repository.NewSpaceRepo(gdb), repository.NewBookingRepo(gdb), nil)
	return svc, sp, gdb
}

func markPaid(t *testing.T, gdb *gorm.DB, bookingID string) {
	t.Helper()
	err := gdb.Model(&domain.Booking{}).Where("id = ?", bookingID).
		Update("payment_status", domain.PaymentPaid).Error
	if err != nil {
		t.Fatalf("mark paid: %v", err)
	}
}

func TestCreateBooking(t *testing.T) {
	svc, sp, _ := newBookingSvc(t)
	ctx := context.Background()

	start, end := window("10:00", 2)
	b, err := svc.Create(ctx, alice, sp.ID, start, end)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if b.Status != domain.StatusPending {
		t.Errorf("status = %s, want pending", b.Status)
	}
	if b.PaymentStatus != domain.PaymentUnpaid {
		t.Errorf("payment_status = %s, want unpaid", b.PaymentStatus)
	}
	if b.DurationHours != 2 {
		t.Errorf("duration = %d, want 2", b.DurationHours)
	}
	if b.TotalCost != 2000 {
		t.Errorf("total_cost = %v, want 2000", b.TotalCost)
	}
}

func TestCreateBookingPartialHourBillsUp(t *testing.T) {
	svc, sp, _ := newBookingSvc(t)

	start, _ := window("09:00", 1)
	end := start.Add(75 * time.Minute) // 09:00-10:15
	b, err := svc.Create(context.Background(), alice, sp.ID, start, end)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if b.DurationHours != 2 || b.TotalCost != 2000 {
		t.Fatalf("75min window: duration %d cost %v, want 2h / 2000", b.DurationHours, b.TotalCost)
	}
}

func TestCreateBookingInvalidRange(t *testing.T) {
	svc, sp, _ := newBookingSvc(t)
	start, end := window("10:00", 2)

	if _, err := svc.Create(context.Background(), alice, sp.ID, end, start); !errors.Is(err, domain.ErrInvalidRange) {
		t.Fatalf("inverted range: got %v, want ErrInvalidRange", err)
	}
	if _, err := svc.Create(context.Background(), alice, sp.ID, start, start); !errors.Is(err, domain.ErrInvalidRange) {
		t.Fatalf("empty range: got %v, want ErrInvalidRange", err)
	}
}

func TestCreateBookingUnknownOrInactiveSpace(t *testing.T) {
	svc, sp, _ := newBookingSvc(t)
	ctx := context.Background()
	start, end := window("10:00", 2)

	if _, err := svc.Create(ctx, alice, "no-such-space", start, end); !errors.Is(err, domain.ErrSpaceNotFound) {
		t.Fatalf("unknown space: got %v", err)
	}

	if _, err := svc.spaces.SetActive(ctx, sp.ID, false); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Create(ctx, alice, sp.ID, start, end); !errors.Is(err, domain.ErrSpaceInactive) {
		t.Fatalf("inactive space: got %v, want ErrSpaceInactive", err)
	}
}

func TestOverlappingBookingRejected(t *testing.T) {
	svc, sp, _ := newBookingSvc(t)
	ctx := context.Background()

	s1, e1 := window("10:00", 2)
	if _, err := svc.Create(ctx, alice, sp.ID, s1, e1); err != nil {
		t.Fatalf("first create: %v", err)
	}

	s2, e2 := window("11:00", 2) // 11:00-13:00 overlaps 10:00-12:00
	if _, err := svc.Create(ctx, bob, sp.ID, s2, e2); !errors.Is(err, domain.ErrSlotUnavailable) {
		t.Fatalf("overlap: got %v, want ErrSlotUnavailable", err)
	}
}

func TestBackToBackBookingsAllowed(t *testing.T) {
	svc, sp, _ := newBookingSvc(t)
	ctx := context.Background()

	s1, e1 := window("10:00", 2)
	if _, err := svc.Create(ctx, alice, sp.ID, s1, e1); err != nil {
		t.Fatalf("first: %v", err)
	}
	s2, e2 := window("12:00", 2) // starts exactly where the first ends
	if _, err := svc.Create(ctx, bob, sp.ID, s2, e2); err != nil {
		t.Fatalf("back-to-back: %v", err)
	}
}

func TestCancelFreesSlot(t *testing.T) {
	svc, sp, _ := newBookingSvc(t)
	ctx := context.Background()

	s1, e1 := window("10:00", 2)
	first, err := svc.Create(ctx, alice, sp.ID, s1, e1)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	s2, e2 := window("11:00", 2)
	if _, err := svc.Create(ctx, bob, sp.ID, s2, e2); !errors.Is(err, domain.ErrSlotUnavailable) {
		t.Fatalf("expected conflict, got %v", err)
	}

	if _, err := svc.Cancel(ctx, alice, first.ID); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if _, err := svc.Create(ctx, bob, sp.ID, s2, e2); err != nil {
		t.Fatalf("rebook after cancel: %v", err)
	}
}

func TestCancelAuthorization(t *testing.T) {
	svc, sp, gdb := newBookingSvc(t)
	ctx := context.Background()

	start, end := window("10:00", 1)
	b, err := svc.Create(ctx, alice, sp.ID, start, end)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Cancel(ctx, bob, b.ID); !errors.Is(err, domain.ErrNotAuthorized) {
		t.Fatalf("stranger cancel: got %v, want ErrNotAuthorized", err)
	}

	// once paid, the owner can no longer cancel on their own
	s2, e2 := window("14:00", 1)
	pb, err := svc.Create(ctx, alice, sp.ID, s2, e2)
	if err != nil {
		t.Fatal(err)
	}
	markPaid(t, gdb, pb.ID)
	if _, err := svc.Cancel(ctx, alice, pb.ID); !errors.Is(err, domain.ErrNotAuthorized) {
		t.Fatalf("owner cancel of paid booking: got %v, want ErrNotAuthorized", err)
	}
	if _, err := svc.Cancel(ctx, admin, pb.ID); err != nil {
		t.Fatalf("admin cancel of paid booking: %v", err)
	}
}

func TestCancelInvalidStates(t *testing.T) {
	svc, sp, _ := newBookingSvc(t)
	ctx := context.Background()

	start, end := window("10:00", 1)
	b, err := svc.Create(ctx, alice, sp.ID, start, end)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Cancel(ctx, alice, b.ID); err != nil {
		t.Fatal(err)
	}
	// cancelling twice is an invalid transition, not a silent no-op
	if _, err := svc.Cancel(ctx, admin, b.ID); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("double cancel: got %v, want ErrInvalidTransition", err)
	}

	b2, err := svc.Create(ctx, alice, sp.ID, start, end)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.SetStatus(ctx, admin, b2.ID, domain.StatusCompleted); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Cancel(ctx, admin, b2.ID); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("cancel completed: got %v, want ErrInvalidTransition", err)
	}
}

func TestCancelGateUsesEffectiveStatus(t *testing.T) {
	svc, sp, _ := newBookingSvc(t)
	ctx := context.Background()
	now := time.Now().UTC()

	// window ended two hours ago; stored status is confirmed but the
	// booking is effectively completed
	done, err := svc.Create(ctx, alice, sp.ID, now.Add(-3*time.Hour), now.Add(-2*time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.SetStatus(ctx, admin, done.ID, domain.StatusConfirmed); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Cancel(ctx, admin, done.ID); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("cancel of elapsed window: got %v, want ErrInvalidTransition", err)
	}
	if _, err := svc.SetStatus(ctx, admin, done.ID, domain.StatusCancelled); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("override cancel of elapsed window: got %v, want ErrInvalidTransition", err)
	}

	// window currently underway: effectively active, same rule
	live, err := svc.Create(ctx, alice, sp.ID, now.Add(-30*time.Minute), now.Add(30*time.Minute))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.SetStatus(ctx, admin, live.ID, domain.StatusConfirmed); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Cancel(ctx, admin, live.ID); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("cancel mid-window: got %v, want ErrInvalidTransition", err)
	}

	// a pending booking never advances on its own, so an unpaid one in the
	// past is still cancellable by its owner
	old, err := svc.Create(ctx, alice, sp.ID, now.Add(-6*time.Hour), now.Add(-5*time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Cancel(ctx, alice, old.ID); err != nil {
		t.Fatalf("cancel of stale pending booking: %v", err)
	}
}

func TestAdminSetStatus(t *testing.T) {
	svc, sp, _ := newBookingSvc(t)
	ctx := context.Background()

	start, end := window("10:00", 1)
	b, err := svc.Create(ctx, alice, sp.ID, start, end)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := svc.SetStatus(ctx, alice, b.ID, domain.StatusConfirmed); !errors.Is(err, domain.ErrNotAuthorized) {
		t.Fatalf("non-admin override: got %v", err)
	}

	b2, err := svc.SetStatus(ctx, admin, b.ID, domain.StatusConfirmed)
	if err != nil {
		t.Fatal(err)
	}
	if b2.Status != domain.StatusConfirmed {
		t.Fatalf("status = %s", b2.Status)
	}
	if _, err := svc.SetStatus(ctx, admin, b.ID, domain.StatusPending); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("backward transition: got %v, want ErrInvalidTransition", err)
	}
}

func TestCheckAvailability(t *testing.T) {
	svc, sp, _ := newBookingSvc(t)
	ctx := context.Background()

	start, end := window("10:00", 2)
	ok, err := svc.CheckAvailability(ctx, sp.ID, start, end)
	if err != nil || !ok {
		t.Fatalf("empty space: ok=%v err=%v", ok, err)
	}

	if _, err := svc.CheckAvailability(ctx, sp.ID, end, start); !errors.Is(err, domain.ErrInvalidRange) {
		t.Fatalf("inverted range: got %v", err)
	}

	b, err := svc.Create(ctx, alice, sp.ID, start, end)
	if err != nil {
		t.Fatal(err)
	}
	ok, err = svc.CheckAvailability(ctx, sp.ID, start.Add(time.Hour), end.Add(time.Hour))
	if err != nil || ok {
		t.Fatalf("overlapping window: ok=%v err=%v, want unavailable", ok, err)
	}

	// a deactivated space disappears from discovery, bookings stay put
	if _, err := svc.spaces.SetActive(ctx, sp.ID, false); err != nil {
		t.Fatal(err)
	}
	free, fe := window("15:00", 1)
	ok, err = svc.CheckAvailability(ctx, sp.ID, free, fe)
	if err != nil || ok {
		t.Fatalf("inactive space: ok=%v err=%v, want false", ok, err)
	}
	if _, err := svc.Get(ctx, alice, b.ID); err != nil {
		t.Fatalf("existing booking on deactivated space must stay queryable: %v", err)
	}
}

func TestConcurrentCreatesOneWinner(t *testing.T) {
	svc, sp, _ := newBookingSvc(t)
	start, end := window("10:00", 2)

	const n = 16
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Create(context.Background(), alice, sp.ID, start, end)
		}(i)
	}
	wg.Wait()

	var wins, conflicts int
	for _, err := range errs {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, domain.ErrSlotUnavailable):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if wins != 1 || conflicts != n-1 {
		t.Fatalf("wins=%d conflicts=%d, want 1/%d", wins, conflicts, n-1)
	}
}
