package models

import (
	"time"
)

const (
	ListingSell = "sell"
	ListingBuy  = "buy"
)

// Post is an export/import product listing owned by an Exportator.
type Post struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Pid      string `gorm:"uniqueIndex;size:36;not null" json:"pid"`
	UserID   uint   `gorm:"not null;index" json:"user_id"`
	User     User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
	Product  string `gorm:"not null" json:"product"`
	Quantity int    `gorm:"not null" json:"quantity"`
	Unity    string `gorm:"size:20" json:"unity"` // kg, ton, box...
	From     string `gorm:"size:60" json:"from"`
	To       string `gorm:"size:60" json:"to"`
	Lists    string `gorm:"size:10;default:'sell'" json:"lists"` // sell or buy
	Image    string `json:"image"`                               // Optional, blob store URL

	// Set when the containing container is marked ready
	Ready         bool   `gorm:"default:false" json:"ready"`
	MediatorEmail string `json:"mediator_email"`
	MediatorPhone string `json:"mediator_phone"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
