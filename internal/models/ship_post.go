package models

import (
	"time"
)

// ShipPost is a shipping offer created by a post owner once a proposal on
// that post was accepted. Destination is the accepted sender's country.
// At most one per (post, sender).
type ShipPost struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	PostID   uint `gorm:"not null;uniqueIndex:idx_ship_post_sender" json:"post_id"`
	Post     Post `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"post"`
	OwnerID  uint `gorm:"not null;index" json:"owner_id"`
	Owner    User `gorm:"foreignKey:OwnerID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"owner"`
	SenderID uint `gorm:"not null;uniqueIndex:idx_ship_post_sender" json:"sender_id"`
	Sender   User `gorm:"foreignKey:SenderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"sender"`

	// Denormalized from the post at creation time, same as the source rows
	Product  string `gorm:"not null" json:"product"`
	From     string `gorm:"size:60" json:"from"`
	To       string `gorm:"size:60;not null" json:"to"` // Sender's country
	Quantity int    `json:"quantity"`
	Unity    string `gorm:"size:20" json:"unity"`
	Image    string `json:"image"`

	CreatedAt time.Time `json:"created_at"`
}
