package domain

import "time"

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
	// RoleSystem is never stored; it marks trusted internal callers such as
	// the payment webhook.
	RoleSystem Role = "SYSTEM"
)

type User struct {
	ID           string `gorm:"primaryKey"`
	Email        string `gorm:"uniqueIndex"`
	PasswordHash string
	Name         string
	Role         Role
	CreatedAt    time.Time
}

// Actor is the authenticated principal a request acts as. Transports build
// it from JWT claims; services use it for authorization only.
type Actor struct {
	ID   string
	Role Role
}

func (a Actor) IsAdmin() bool  { return a.Role == RoleAdmin }
func (a Actor) IsSystem() bool { return a.Role == RoleSystem }

var SystemActor = Actor{ID: "system", Role: RoleSystem}
