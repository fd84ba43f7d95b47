package services

import (
	"errors"
	"fmt"
	"log"

	"cargolink/internal/db"
	"cargolink/internal/models"

	"gorm.io/gorm"
)

// Proposal roles for view resolution
const (
	RoleSender = "sender"
	RoleOwner  = "owner"
)

// SubjectOwner resolves the owning user of a subject, or ErrNotFound.
func SubjectOwner(kind models.SubjectKind, subjectID uint) (uint, error) {
	switch kind {
	case models.SubjectPost:
		var post models.Post
		if err := db.DB.First(&post, subjectID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return 0, ErrNotFound
			}
			return 0, fmt.Errorf("load post: %w", err)
		}
		return post.UserID, nil
	case models.SubjectTransit:
		var transit models.Transit
		if err := db.DB.First(&transit, subjectID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return 0, ErrNotFound
			}
			return 0, fmt.Errorf("load transit: %w", err)
		}
		return transit.UserID, nil
	}
	return 0, ErrNotFound
}

// CreateProposal opens a pending proposal from sender on the given subject
// and fans out a notification to the subject owner. At most one active
// (non-refused) proposal per (sender, subject) is allowed; a refused
// proposal frees the slot.
func CreateProposal(kind models.SubjectKind, subjectID, senderID uint) (*models.Proposal, error) {
	if !kind.Valid() {
		return nil, ErrNotFound
	}

	ownerID, err := SubjectOwner(kind, subjectID)
	if err != nil {
		return nil, err
	}
	if ownerID == senderID {
		// Proposing on your own listing
		return nil, ErrNotAuthorized
	}

	var existing models.Proposal
	err = db.DB.
		Where("subject_kind = ? AND subject_id = ? AND sender_id = ? AND status <> ?",
			kind, subjectID, senderID, models.StatusRefused).
		First(&existing).Error
	if err == nil {
		return nil, ErrDuplicateProposal
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check existing proposal: %w", err)
	}

	proposal := models.Proposal{
		SubjectKind: kind,
		SubjectID:   subjectID,
		SenderID:    senderID,
		OwnerID:     ownerID,
		Status:      models.StatusPending,
	}
	if err := db.DB.Create(&proposal).Error; err != nil {
		// The partial unique index on (subject, sender, non-refused)
		// closes the check-then-insert race; a concurrent create that
		// won it surfaces here as a constraint violation
		var winner models.Proposal
		lookupErr := db.DB.
			Where("subject_kind = ? AND subject_id = ? AND sender_id = ? AND status <> ?",
				kind, subjectID, senderID, models.StatusRefused).
			First(&winner).Error
		if lookupErr == nil {
			return nil, ErrDuplicateProposal
		}
		return nil, fmt.Errorf("create proposal: %w", err)
	}

	// Fan-out is a separate write; on failure the proposal stands and the
	// reconciler retries the notification alone.
	if err := NotifyProposalCreated(&proposal); err != nil {
		log.Printf("Fan-out failed for proposal %d, scheduling reconcile: %v", proposal.ID, err)
		GetReconcileService().Schedule(proposal.ID)
	}

	return &proposal, nil
}

// SetStatus transitions a proposal out of pending. Only the subject owner
// may transition, and only to accepted or refused. Re-applying the status a
// terminal proposal already has is a no-op returning the current state, so
// double submission stays harmless.
func SetStatus(proposalID uint, newStatus models.ProposalStatus, actingUserID uint) (*models.Proposal, error) {
	if newStatus != models.StatusAccepted && newStatus != models.StatusRefused {
		return nil, ErrInvalidTransition
	}

	var proposal models.Proposal
	if err := db.DB.First(&proposal, proposalID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load proposal: %w", err)
	}

	if proposal.OwnerID != actingUserID {
		return nil, ErrNotAuthorized
	}

	if proposal.Status.Terminal() {
		if proposal.Status == newStatus {
			// Idempotent re-apply, no second fan-out
			return &proposal, nil
		}
		return nil, ErrInvalidTransition
	}

	// Single guarded UPDATE so two rapid clicks cannot both win the
	// pending -> terminal race.
	res := db.DB.Model(&models.Proposal{}).
		Where("id = ? AND status = ?", proposalID, models.StatusPending).
		Update("status", newStatus)
	if res.Error != nil {
		return nil, fmt.Errorf("update proposal status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		// Lost the race; reload and settle
		if err := db.DB.First(&proposal, proposalID).Error; err != nil {
			return nil, fmt.Errorf("reload proposal: %w", err)
		}
		if proposal.Status == newStatus {
			return &proposal, nil
		}
		return nil, ErrInvalidTransition
	}

	proposal.Status = newStatus

	if newStatus == models.StatusAccepted {
		// The original sender is told their proposal was accepted.
		// Refusal fans out nothing.
		if err := NotifyProposalAccepted(&proposal); err != nil {
			log.Printf("Fan-out failed for accepted proposal %d, scheduling reconcile: %v", proposal.ID, err)
			GetReconcileService().Schedule(proposal.ID)
		}
	}

	return &proposal, nil
}

// ActiveProposalFor returns the newest active proposal on a subject where
// the user acts in the given role, or ErrNotFound. Used to resolve whether
// a detail view renders the owner or the sender side.
func ActiveProposalFor(userID uint, role string, kind models.SubjectKind, subjectID uint) (*models.Proposal, error) {
	query := db.DB.
		Where("subject_kind = ? AND subject_id = ? AND status <> ?", kind, subjectID, models.StatusRefused)

	switch role {
	case RoleSender:
		query = query.Where("sender_id = ?", userID)
	case RoleOwner:
		query = query.Where("owner_id = ?", userID)
	default:
		return nil, ErrNotFound
	}

	var proposal models.Proposal
	if err := query.Order("created_at DESC").First(&proposal).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load active proposal: %w", err)
	}
	return &proposal, nil
}

// ListProposals returns the user's proposals on a side (sent or received),
// newest first, optionally narrowed to one status.
func ListProposals(userID uint, role string, status models.ProposalStatus) ([]models.Proposal, error) {
	query := db.DB.Preload("Sender").Preload("Owner")

	switch role {
	case RoleSender:
		query = query.Where("sender_id = ?", userID)
	case RoleOwner:
		query = query.Where("owner_id = ?", userID)
	default:
		return nil, ErrNotFound
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var proposals []models.Proposal
	if err := query.Order("created_at DESC").Find(&proposals).Error; err != nil {
		return nil, fmt.Errorf("list proposals: %w", err)
	}
	return proposals, nil
}
