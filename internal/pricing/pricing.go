// Package pricing implements the billing policy: partial hours round up, a
// window always bills at least one hour, and amounts carry two decimals.
package pricing

import (
	"math"
	"time"

	"github.com/Mio254/spacer/internal/domain"
)

// BilledHours rounds a window up to whole hours with a one-hour floor:
// 09:00-10:15 bills as 2 hours, 09:00-10:00 as 1. Non-positive windows
// return 0 so callers can reject them before pricing.
func BilledHours(start, end time.Time) int64 {
	d := end.Sub(start)
	if d <= 0 {
		return 0
	}
	h := int64(d / time.Hour)
	if d%time.Hour != 0 {
		h++
	}
	if h < 1 {
		h = 1
	}
	return h
}

// Cost is hours x rate rounded to 2 decimals. It trusts the caller to have
// normalized the hour count already.
func Cost(hours int64, ratePerHour float64) (float64, error) {
	if hours <= 0 || ratePerHour < 0 {
		return 0, domain.ErrInvalidInput
	}
	return math.Round(float64(hours)*ratePerHour*100) / 100, nil
}

// MinorUnits converts an amount to processor minor units (cents).
func MinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
