package models

import (
	"time"
)

// HelpRequest is a user support ticket handled by admins.
type HelpRequest struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	User      User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
	Subject   string    `gorm:"size:120" json:"subject"`
	Message   string    `gorm:"type:text;not null" json:"message"` // Markdown
	Resolved  bool      `gorm:"default:false;index" json:"resolved"`
	CreatedAt time.Time `json:"created_at"`
}
