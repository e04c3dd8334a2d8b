package domain

import "time"

// Payment tracks one processor intent for a booking. At most one unpaid
// payment is live per booking; CreateIntent reuses it instead of
// double-charging.
type Payment struct {
	ID                string `gorm:"primaryKey"`
	BookingID         string `gorm:"index"`
	Amount            float64
	Currency          string
	Status            PaymentStatus
	ProcessorIntentID string `gorm:"uniqueIndex"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Invoice is issued exactly once per paid booking (unique BookingID) and is
// immutable after issue.
type Invoice struct {
	ID        string `gorm:"primaryKey"`
	BookingID string `gorm:"uniqueIndex"`
	UserID    string `gorm:"index"`
	Amount    float64
	Currency  string
	IssuedAt  time.Time
	DueAt     *time.Time
}
