package service

import (
	"context"
	"errors"
	"testing"

	"github.com/Mio254/spacer/internal/domain"
	"github.com/Mio254/spacer/internal/repository"
	"github.com/Mio254/spacer/pkg/apperror"
)

func newSpaceSvc(t *testing.T) *SpaceSvc {
	t.Helper()
	return NewSpaceSvc(repository.NewSpaceRepo(newTestDB(t)))
}

func validInput() SpaceInput {
	return SpaceInput{
		Name:         "Loft 3",
		Description:  "top-floor loft with projector",
		Location:     "Building 2",
		PricePerHour: 450,
		Capacity:     12,
	}
}

func TestSpaceCreate(t *testing.T) {
	svc := newSpaceSvc(t)
	ctx := context.Background()

	sp, err := svc.Create(ctx, admin, validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !sp.IsActive {
		t.Error("new space should start active")
	}

	if _, err := svc.Create(ctx, alice, validInput()); !errors.Is(err, domain.ErrNotAuthorized) {
		t.Fatalf("non-admin create: got %v", err)
	}
}

func TestSpaceCreateValidation(t *testing.T) {
	svc := newSpaceSvc(t)

	in := SpaceInput{Name: " ", Description: "", PricePerHour: 0, Capacity: -1}
	_, err := svc.Create(context.Background(), admin, in)
	ae, ok := apperror.From(err)
	if !ok || ae.Code != "validation_error" {
		t.Fatalf("got %v, want validation_error", err)
	}
	if len(ae.Fields) != 4 {
		t.Fatalf("field errors = %d (%+v), want 4", len(ae.Fields), ae.Fields)
	}
	seen := map[string]bool{}
	for _, f := range ae.Fields {
		seen[f.Field] = true
	}
	for _, want := range []string{"name", "description", "price_per_hour", "capacity"} {
		if !seen[want] {
			t.Errorf("missing field error for %s", want)
		}
	}
}

func TestSpacePatch(t *testing.T) {
	svc := newSpaceSvc(t)
	ctx := context.Background()

	sp, err := svc.Create(ctx, admin, validInput())
	if err != nil {
		t.Fatal(err)
	}

	rate := 600.0
	patched, err := svc.Patch(ctx, admin, sp.ID, SpacePatch{PricePerHour: &rate})
	if err != nil {
		t.Fatalf("patch: %v", err)
	}
	if patched.PricePerHour != 600 {
		t.Fatalf("rate = %v", patched.PricePerHour)
	}
	if patched.Name != sp.Name {
		t.Fatalf("untouched field changed: %s", patched.Name)
	}

	bad := 0.0
	if _, err := svc.Patch(ctx, admin, sp.ID, SpacePatch{PricePerHour: &bad}); err == nil {
		t.Fatal("zero rate patch must fail validation")
	}
	if _, err := svc.Patch(ctx, admin, "nope", SpacePatch{}); !errors.Is(err, domain.ErrSpaceNotFound) {
		t.Fatalf("missing space: got %v", err)
	}
}

func TestSpaceDeactivateHidesFromDiscovery(t *testing.T) {
	svc := newSpaceSvc(t)
	ctx := context.Background()

	sp, err := svc.Create(ctx, admin, validInput())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.SetActive(ctx, admin, sp.ID, false); err != nil {
		t.Fatal(err)
	}

	visible, err := svc.List(ctx, alice, false, 0, 20)
	if err != nil {
		t.Fatal(err)
	}
	if len(visible) != 0 {
		t.Fatalf("deactivated space still discoverable: %d", len(visible))
	}

	// record survives and admins still see it
	all, err := svc.List(ctx, admin, true, 0, 20)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 1 {
		t.Fatalf("admin list = %d, want 1", len(all))
	}
	// users asking for the inactive set are quietly downgraded
	userAll, err := svc.List(ctx, alice, true, 0, 20)
	if err != nil {
		t.Fatal(err)
	}
	if len(userAll) != 0 {
		t.Fatalf("user saw inactive spaces: %d", len(userAll))
	}
}

func TestRateChangeDoesNotRepriceBookings(t *testing.T) {
	gdb := newTestDB(t)
	spaces := repository.NewSpaceRepo(gdb)
	bookings := repository.NewBookingRepo(gdb)
	ssvc := NewSpaceSvc(spaces)
	bsvc := NewBookingSvc(spaces, bookings, nil)
	ctx := context.Background()

	sp, err := ssvc.Create(ctx, admin, validInput()) // 450/hr
	if err != nil {
		t.Fatal(err)
	}
	start, end := window("10:00", 2)
	b, err := bsvc.Create(ctx, alice, sp.ID, start, end)
	if err != nil {
		t.Fatal(err)
	}
	if b.TotalCost != 900 {
		t.Fatalf("cost = %v, want 900", b.TotalCost)
	}

	rate := 9000.0
	if _, err := ssvc.Patch(ctx, admin, sp.ID, SpacePatch{PricePerHour: &rate}); err != nil {
		t.Fatal(err)
	}
	got, err := bsvc.Get(ctx, alice, b.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.TotalCost != 900 {
		t.Fatalf("cost changed to %v after rate change, must stay 900", got.TotalCost)
	}
}
