package services

import (
	"errors"
	"fmt"

	"cargolink/internal/db"
	"cargolink/internal/models"

	"gorm.io/gorm"
)

// CreateShippingOffer creates the one shipping offer an accepted post
// proposal unlocks. Only the post owner may create it; the destination is
// the accepted sender's country. A second attempt for the same (post,
// sender) fails with ErrDuplicateShippingOffer.
func CreateShippingOffer(postID, actingUserID uint) (*models.ShipPost, error) {
	var post models.Post
	if err := db.DB.First(&post, postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load post: %w", err)
	}

	if post.UserID != actingUserID {
		return nil, ErrNotAuthorized
	}

	var proposal models.Proposal
	err := db.DB.
		Where("subject_kind = ? AND subject_id = ? AND status = ?",
			models.SubjectPost, postID, models.StatusAccepted).
		Order("created_at DESC").
		First(&proposal).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProposalNotAccepted
		}
		return nil, fmt.Errorf("load accepted proposal: %w", err)
	}

	var sender models.User
	if err := db.DB.First(&sender, proposal.SenderID).Error; err != nil {
		return nil, fmt.Errorf("load sender: %w", err)
	}

	var existing models.ShipPost
	err = db.DB.
		Where("post_id = ? AND sender_id = ?", postID, sender.ID).
		First(&existing).Error
	if err == nil {
		return nil, ErrDuplicateShippingOffer
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check existing shipping offer: %w", err)
	}

	offer := models.ShipPost{
		PostID:   post.ID,
		OwnerID:  post.UserID,
		SenderID: sender.ID,
		Product:  post.Product,
		From:     post.From,
		To:       sender.Country,
		Quantity: post.Quantity,
		Unity:    post.Unity,
		Image:    post.Image,
	}
	if err := db.DB.Create(&offer).Error; err != nil {
		return nil, fmt.Errorf("create shipping offer: %w", err)
	}

	return &offer, nil
}

// ListShippingOffers returns offers the user is a party to, on either
// side, newest first.
func ListShippingOffers(userID uint) ([]models.ShipPost, error) {
	var offers []models.ShipPost
	err := db.DB.Preload("Owner").Preload("Sender").
		Where("owner_id = ? OR sender_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&offers).Error
	if err != nil {
		return nil, fmt.Errorf("list shipping offers: %w", err)
	}
	return offers, nil
}
