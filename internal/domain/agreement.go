package domain

import "time"

// AgreementAcceptance records that a user accepted the rental agreement for
// a booking. One acceptance per (user, booking) pair.
type AgreementAcceptance struct {
	ID         string `gorm:"primaryKey"`
	UserID     string `gorm:"uniqueIndex:idx_agreement_user_booking"`
	BookingID  string `gorm:"uniqueIndex:idx_agreement_user_booking"`
	AcceptedAt time.Time
	IPAddress  string // IPv4 / IPv6
}

// EventConsumed dedups externally-delivered events (processor webhooks,
// queue redeliveries) by their unique id.
type EventConsumed struct {
	ID          string `gorm:"primaryKey"`
	EventKey    string `gorm:"index"`
	ProcessedAt time.Time
}
