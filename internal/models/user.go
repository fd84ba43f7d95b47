package models

import (
	"time"
)

const (
	RoleExportator = "Exportator"
	RoleMediator   = "Mediator"
	RoleAdmin      = "admin"
)

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"not null" json:"username"` // Username can be modified
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"` // Hash
	Phone     string    `gorm:"size:30" json:"phone"`
	Country   string    `gorm:"size:60" json:"country"`       // Destination country for shipping offers
	Role      string    `gorm:"size:20;not null" json:"role"` // Exportator, Mediator, admin
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	// No DeletedAt for hard delete
}

// CanOwn reports whether the user's role may publish the given subject kind.
// Exportators publish posts, Mediators publish transit offers.
func (u *User) CanOwn(kind SubjectKind) bool {
	switch kind {
	case SubjectPost:
		return u.Role == RoleExportator
	case SubjectTransit:
		return u.Role == RoleMediator
	}
	return false
}
