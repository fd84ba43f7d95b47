package models

import (
	"time"
)

// NotificationEvent names the proposal lifecycle event a notification was
// fanned out from.
type NotificationEvent string

const (
	EventProposalCreated  NotificationEvent = "proposal_created"
	EventProposalAccepted NotificationEvent = "proposal_accepted"
	// Refusal deliberately fans out nothing.
)

// Notification is a receiver-scoped projection of a proposal event. One
// entity covers both subject kinds; the unique (proposal_id, event) pair
// makes fan-out idempotent and lets the reconciler re-insert missing rows
// without duplicating delivered ones.
type Notification struct {
	ID          uint              `gorm:"primaryKey" json:"id"`
	ReceiverID  uint              `gorm:"not null;index" json:"receiver_id"`
	Receiver    User              `gorm:"foreignKey:ReceiverID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"receiver"`
	SenderID    uint              `gorm:"not null;index" json:"sender_id"`
	Sender      User              `gorm:"foreignKey:SenderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"sender"`
	SubjectKind SubjectKind       `gorm:"type:varchar(10);not null" json:"subject_kind"`
	SubjectID   uint              `gorm:"not null" json:"subject_id"`
	ProposalID  uint              `gorm:"not null;uniqueIndex:idx_notification_dedupe" json:"proposal_id"`
	Event       NotificationEvent `gorm:"type:varchar(20);not null;uniqueIndex:idx_notification_dedupe" json:"event"`
	Seen        bool              `gorm:"default:false;index" json:"seen"`
	CreatedAt   time.Time         `json:"created_at"`
}
