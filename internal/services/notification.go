package services

import (
	"errors"
	"fmt"
	"time"

	"cargolink/internal/db"
	"cargolink/internal/models"
	"cargolink/internal/utils"

	"gorm.io/gorm"
)

const unseenCountTTL = 30 * time.Second

// NotifyProposalCreated inserts the owner-facing notification for a fresh
// proposal. Safe to call repeatedly for the same proposal.
func NotifyProposalCreated(p *models.Proposal) error {
	return fanOut(p, models.EventProposalCreated, p.OwnerID, p.SenderID)
}

// NotifyProposalAccepted inserts the sender-facing notification once the
// owner accepted. Safe to call repeatedly for the same proposal.
func NotifyProposalAccepted(p *models.Proposal) error {
	return fanOut(p, models.EventProposalAccepted, p.SenderID, p.OwnerID)
}

// fanOut writes one notification row per (proposal, event). The existence
// check plus the unique index keep retries and reconciliation idempotent.
func fanOut(p *models.Proposal, event models.NotificationEvent, receiverID, senderID uint) error {
	var existing models.Notification
	err := db.DB.
		Where("proposal_id = ? AND event = ?", p.ID, event).
		First(&existing).Error
	if err == nil {
		return nil // Already delivered
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("check notification: %w", err)
	}

	notification := models.Notification{
		ReceiverID:  receiverID,
		SenderID:    senderID,
		SubjectKind: p.SubjectKind,
		SubjectID:   p.SubjectID,
		ProposalID:  p.ID,
		Event:       event,
	}
	if err := db.DB.Create(&notification).Error; err != nil {
		return fmt.Errorf("create notification: %w", err)
	}

	invalidateUnseen(receiverID)
	return nil
}

// MarkSeen flips the seen flag on the single notification the receiver
// opened. It never touches other notifications sharing the subject.
func MarkSeen(notificationID, receiverID uint) error {
	var notification models.Notification
	err := db.DB.
		Where("id = ? AND receiver_id = ?", notificationID, receiverID).
		First(&notification).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("load notification: %w", err)
	}

	if notification.Seen {
		return nil
	}

	if err := db.DB.Model(&notification).Update("seen", true).Error; err != nil {
		return fmt.Errorf("mark notification seen: %w", err)
	}

	invalidateUnseen(receiverID)
	return nil
}

// UnseenCount returns the receiver's unseen notification count across both
// subject kinds, cached briefly; every successful fan-out and MarkSeen
// invalidates the entry.
func UnseenCount(userID uint) (int64, error) {
	key := unseenCacheKey(userID)
	if cached := utils.GetCache().Get(key); cached != nil {
		if count, ok := cached.(int64); ok {
			return count, nil
		}
	}

	var count int64
	err := db.DB.Model(&models.Notification{}).
		Where("receiver_id = ? AND seen = ?", userID, false).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count unseen notifications: %w", err)
	}

	utils.GetCache().Set(key, count, unseenCountTTL)
	return count, nil
}

// ListNotifications returns the receiver's notifications, newest first.
func ListNotifications(userID uint, limit int) ([]models.Notification, error) {
	if limit <= 0 {
		limit = 50
	}
	var notifications []models.Notification
	err := db.DB.Preload("Sender").
		Where("receiver_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&notifications).Error
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return notifications, nil
}

// GroupedNotifications partitions a notification list by subject kind.
type GroupedNotifications struct {
	Post    []models.Notification `json:"post"`
	Transit []models.Notification `json:"transit"`
}

// GroupBySubjectKind stably partitions notifications by subject kind,
// preserving the input order within each group. Rows carrying an unknown
// kind are dropped rather than misfiled.
func GroupBySubjectKind(notifications []models.Notification) GroupedNotifications {
	grouped := GroupedNotifications{
		Post:    make([]models.Notification, 0, len(notifications)),
		Transit: make([]models.Notification, 0),
	}
	for _, n := range notifications {
		switch n.SubjectKind {
		case models.SubjectPost:
			grouped.Post = append(grouped.Post, n)
		case models.SubjectTransit:
			grouped.Transit = append(grouped.Transit, n)
		}
	}
	return grouped
}

func unseenCacheKey(userID uint) string {
	return fmt.Sprintf("unseen:%d", userID)
}

func invalidateUnseen(userID uint) {
	utils.GetCache().Delete(unseenCacheKey(userID))
}
