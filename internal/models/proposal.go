package models

import (
	"time"
)

// SubjectKind tags which kind of listing a proposal or notification refers to.
type SubjectKind string

const (
	SubjectPost    SubjectKind = "post"
	SubjectTransit SubjectKind = "transit"
)

func (k SubjectKind) Valid() bool {
	return k == SubjectPost || k == SubjectTransit
}

type ProposalStatus string

const (
	StatusPending  ProposalStatus = "pending"
	StatusAccepted ProposalStatus = "accepted"
	StatusRefused  ProposalStatus = "refused"
)

// Terminal reports whether the status admits no further transition.
func (s ProposalStatus) Terminal() bool {
	return s == StatusAccepted || s == StatusRefused
}

// Proposal is a sender's bid on a subject (post or transit offer).
// Status is mutated only by the subject owner, pending -> accepted|refused,
// exactly once. The partial unique index holds one non-refused proposal
// per (subject, sender); refusal drops the row out of the index.
type Proposal struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	SubjectKind SubjectKind    `gorm:"type:varchar(10);not null;index:idx_proposal_subject;uniqueIndex:idx_proposal_active,where:status <> 'refused'" json:"subject_kind"`
	SubjectID   uint           `gorm:"not null;index:idx_proposal_subject;uniqueIndex:idx_proposal_active" json:"subject_id"`
	SenderID    uint           `gorm:"not null;index;uniqueIndex:idx_proposal_active" json:"sender_id"`
	Sender      User           `gorm:"foreignKey:SenderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"sender"`
	OwnerID     uint           `gorm:"not null;index" json:"owner_id"`
	Owner       User           `gorm:"foreignKey:OwnerID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"owner"`
	Status      ProposalStatus `gorm:"type:varchar(10);default:'pending';not null;index" json:"status"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// Active reports whether the proposal still blocks a new one for the same
// (sender, subject) pair. Refused proposals free the slot.
func (p *Proposal) Active() bool {
	return p.Status != StatusRefused
}
