package pricing

import (
	"errors"
	"testing"
	"time"

	"github.com/Mio254/spacer/internal/domain"
)

func at(hhmm string) time.Time {
	t, err := time.Parse("2006-01-02 15:04", "2030-06-01 "+hhmm)
	if err != nil {
		panic(err)
	}
	return t
}

func TestBilledHours(t *testing.T) {
	cases := []struct {
		name       string
		start, end time.Time
		want       int64
	}{
		{"exact hour", at("09:00"), at("10:00"), 1},
		{"partial hour rounds up", at("09:00"), at("10:15"), 2},
		{"two hours", at("10:00"), at("12:00"), 2},
		{"under an hour bills one", at("09:00"), at("09:30"), 1},
		{"one minute bills one", at("09:00"), at("09:01"), 1},
		{"zero window", at("09:00"), at("09:00"), 0},
		{"inverted window", at("10:00"), at("09:00"), 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := BilledHours(tc.start, tc.end); got != tc.want {
				t.Fatalf("BilledHours(%v, %v) = %d, want %d", tc.start, tc.end, got, tc.want)
			}
		})
	}
}

func TestCost(t *testing.T) {
	got, err := Cost(2, 1000)
	if err != nil {
		t.Fatal(err)
	}
	if got != 2000 {
		t.Fatalf("Cost(2, 1000) = %v, want 2000", got)
	}

	got, err = Cost(3, 33.335)
	if err != nil {
		t.Fatal(err)
	}
	if got != 100.01 {
		t.Fatalf("Cost(3, 33.335) = %v, want 100.01", got)
	}
}

func TestCostLinear(t *testing.T) {
	for _, rate := range []float64{1, 12.5, 999.99} {
		for _, d := range []int64{1, 2, 5} {
			a, err := Cost(2*d, rate)
			if err != nil {
				t.Fatal(err)
			}
			b, err := Cost(d, rate)
			if err != nil {
				t.Fatal(err)
			}
			if a != 2*b {
				t.Fatalf("cost(2*%d, %v) = %v, want 2*cost(d, r) = %v", d, rate, a, 2*b)
			}
		}
	}
}

func TestCostInvalidInput(t *testing.T) {
	if _, err := Cost(0, 100); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("zero duration: got %v, want ErrInvalidInput", err)
	}
	if _, err := Cost(-1, 100); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("negative duration: got %v, want ErrInvalidInput", err)
	}
	if _, err := Cost(1, -0.01); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("negative rate: got %v, want ErrInvalidInput", err)
	}
}

func TestMinorUnits(t *testing.T) {
	if got := MinorUnits(2000); got != 200000 {
		t.Fatalf("MinorUnits(2000) = %d", got)
	}
	if got := MinorUnits(19.99); got != 1999 {
		t.Fatalf("MinorUnits(19.99) = %d", got)
	}
}
