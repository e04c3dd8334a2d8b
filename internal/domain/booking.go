package domain

import "time"

type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusActive    BookingStatus = "active"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentUnpaid PaymentStatus = "unpaid"
	PaymentPaid   PaymentStatus = "paid"
)

// Booking holds a half-open [StartTime, EndTime) interval on a space.
// DurationHours and TotalCost are frozen at creation; later rate changes on
// the space do not reprice existing bookings.
type Booking struct {
	ID            string    `gorm:"primaryKey"`
	UserID        string    `gorm:"index"`
	SpaceID       string    `gorm:"index"`
	StartTime     time.Time `gorm:"index"`
	EndTime       time.Time `gorm:"index"`
	DurationHours int64
	TotalCost     float64
	Status        BookingStatus `gorm:"index"`
	PaymentStatus PaymentStatus
	InvoiceID     *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// statusRank orders the forward lifecycle. Cancelled is outside the order.
var statusRank = map[BookingStatus]int{
	StatusPending:   0,
	StatusConfirmed: 1,
	StatusActive:    2,
	StatusCompleted: 3,
}

// CanTransition reports whether a booking may move from one status to
// another: any strictly forward move, or cancellation while still pending or
// confirmed. Completed and cancelled are terminal.
func CanTransition(from, to BookingStatus) bool {
	if to == StatusCancelled {
		return from == StatusPending || from == StatusConfirmed
	}
	fr, ok1 := statusRank[from]
	tr, ok2 := statusRank[to]
	return ok1 && ok2 && tr > fr
}

// EffectiveStatus derives active/completed from the clock instead of a
// scheduler. Only paid-for lifecycles advance: a pending booking stays
// pending no matter the time, and cancelled is final.
func (b *Booking) EffectiveStatus(now time.Time) BookingStatus {
	switch b.Status {
	case StatusConfirmed, StatusActive:
		if !now.Before(b.EndTime) {
			return StatusCompleted
		}
		if !now.Before(b.StartTime) {
			return StatusActive
		}
		return b.Status
	default:
		return b.Status
	}
}

// Overlaps is the half-open interval test: touching endpoints do not
// overlap, so back-to-back bookings are allowed.
func (b *Booking) Overlaps(start, end time.Time) bool {
	return b.StartTime.Before(end) && b.EndTime.After(start)
}
