package models

import (
	"time"
)

// Transit is a freight-transit offer owned by a Mediator.
type Transit struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	User      User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
	Title     string    `gorm:"not null" json:"title"`
	From      string    `gorm:"size:60;not null" json:"from"`
	To        string    `gorm:"size:60;not null" json:"to"`
	Price     float64   `gorm:"not null" json:"price"` // DZD per kg
	Image     string    `json:"image"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
