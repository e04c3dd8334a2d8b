package domain

import "time"

// Space is the bookable resource. Spaces are never hard-deleted: IsActive
// false hides a space from discovery while its booking history stays intact.
type Space struct {
	ID           string `gorm:"primaryKey"`
	Name         string
	Description  string
	Location     string
	ImageURL     string
	PricePerHour float64
	Capacity     int32
	IsActive     bool `gorm:"index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
