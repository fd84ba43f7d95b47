package services

import (
	"errors"
	"fmt"

	"cargolink/internal/db"
	"cargolink/internal/models"

	"gorm.io/gorm"
)

// CreateContainer opens an empty container for a mediator.
func CreateContainer(userID uint, name, from, to string, capacity int) (*models.Container, error) {
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}

	container := models.Container{
		UserID:   userID,
		Name:     name,
		From:     from,
		To:       to,
		Capacity: capacity,
	}
	if err := db.DB.Create(&container).Error; err != nil {
		return nil, fmt.Errorf("create container: %w", err)
	}
	return &container, nil
}

// AddPostToContainer appends a post as the next line item, rejecting
// duplicates and anything that would push the summed quantities past
// capacity. The quantity is copied from the post at add time.
func AddPostToContainer(containerID, postID, actingUserID uint) (*models.ContainerItem, error) {
	container, err := loadOwnedContainer(containerID, actingUserID)
	if err != nil {
		return nil, err
	}
	if container.Ready {
		return nil, ErrContainerReady
	}

	var post models.Post
	if err := db.DB.First(&post, postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load post: %w", err)
	}

	for _, item := range container.Items {
		if item.PostID == postID {
			return nil, ErrDuplicateContainerItem
		}
	}

	if container.CurrentLoad()+post.Quantity > container.Capacity {
		return nil, ErrContainerFull
	}

	item := models.ContainerItem{
		ContainerID: container.ID,
		PostID:      post.ID,
		Product:     post.Product,
		Quantity:    post.Quantity,
		Position:    len(container.Items) + 1,
	}
	if err := db.DB.Create(&item).Error; err != nil {
		return nil, fmt.Errorf("add container item: %w", err)
	}
	return &item, nil
}

// RemoveContainerItem drops a line item from a container that is not yet
// ready.
func RemoveContainerItem(containerID, itemID, actingUserID uint) error {
	container, err := loadOwnedContainer(containerID, actingUserID)
	if err != nil {
		return err
	}
	if container.Ready {
		return ErrContainerReady
	}

	res := db.DB.
		Where("id = ? AND container_id = ?", itemID, containerID).
		Delete(&models.ContainerItem{})
	if res.Error != nil {
		return fmt.Errorf("remove container item: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// MarkContainerReady flips the container and all its member posts to
// ready and stamps the mediator's contact onto the posts, in one
// transaction.
func MarkContainerReady(containerID, actingUserID uint) (*models.Container, error) {
	container, err := loadOwnedContainer(containerID, actingUserID)
	if err != nil {
		return nil, err
	}
	if container.Ready {
		return nil, ErrContainerReady
	}

	var mediator models.User
	if err := db.DB.First(&mediator, container.UserID).Error; err != nil {
		return nil, fmt.Errorf("load mediator: %w", err)
	}

	postIDs := make([]uint, 0, len(container.Items))
	for _, item := range container.Items {
		postIDs = append(postIDs, item.PostID)
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if len(postIDs) > 0 {
			if err := tx.Model(&models.Post{}).
				Where("id IN ?", postIDs).
				Updates(map[string]interface{}{
					"ready":          true,
					"mediator_email": mediator.Email,
					"mediator_phone": mediator.Phone,
				}).Error; err != nil {
				return err
			}
		}
		return tx.Model(&models.Container{}).
			Where("id = ?", container.ID).
			Update("ready", true).Error
	})
	if err != nil {
		return nil, fmt.Errorf("mark container ready: %w", err)
	}

	container.Ready = true
	fillDerived(container)
	return container, nil
}

// ListContainers returns the mediator's containers with items and derived
// load figures, newest first.
func ListContainers(userID uint) ([]models.Container, error) {
	var containers []models.Container
	err := db.DB.Preload("Items", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("container_items.position ASC")
	}).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&containers).Error
	if err != nil {
		return nil, fmt.Errorf("list containers: %w", err)
	}

	for i := range containers {
		fillDerived(&containers[i])
	}
	return containers, nil
}

func loadOwnedContainer(containerID, actingUserID uint) (*models.Container, error) {
	var container models.Container
	err := db.DB.Preload("Items", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("container_items.position ASC")
	}).First(&container, containerID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load container: %w", err)
	}
	if container.UserID != actingUserID {
		return nil, ErrNotAuthorized
	}
	return &container, nil
}

func fillDerived(c *models.Container) {
	c.Load = c.CurrentLoad()
	if c.Capacity > 0 {
		c.FillPercent = float64(c.Load) / float64(c.Capacity) * 100
		if c.FillPercent > 100 {
			c.FillPercent = 100
		}
	}
}
