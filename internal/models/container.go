package models

import (
	"time"
)

// Container is a Mediator-owned, capacity-bounded aggregation of posts.
// Contents are explicit line items, not the comma-joined id strings the
// legacy schema used.
type Container struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	UserID    uint            `gorm:"not null;index" json:"user_id"`
	User      User            `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
	Name      string          `gorm:"not null" json:"name"`
	From      string          `gorm:"size:60" json:"from"`
	To        string          `gorm:"size:60" json:"to"`
	Capacity  int             `gorm:"not null" json:"capacity"` // kg
	Ready     bool            `gorm:"default:false" json:"ready"`
	Items     []ContainerItem `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"items"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`

	// Filled in by the service, not stored
	Load        int     `gorm:"-" json:"load"`
	FillPercent float64 `gorm:"-" json:"fill_percent"`
}

// ContainerItem is one post placed into a container. Quantity is copied
// from the post when added so later post edits don't shift the accounting.
type ContainerItem struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ContainerID uint      `gorm:"not null;uniqueIndex:idx_container_post" json:"container_id"`
	PostID      uint      `gorm:"not null;uniqueIndex:idx_container_post" json:"post_id"`
	Post        Post      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"post"`
	Product     string    `json:"product"`
	Quantity    int       `gorm:"not null" json:"quantity"`
	Position    int       `gorm:"not null" json:"position"` // Insertion order
	CreatedAt   time.Time `json:"created_at"`
}

// CurrentLoad sums the line item quantities.
func (c *Container) CurrentLoad() int {
	total := 0
	for _, item := range c.Items {
		total += item.Quantity
	}
	return total
}
