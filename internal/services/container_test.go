package services

import (
	"testing"

	"cargolink/internal/db"
	"cargolink/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateContainerRejectsNonPositiveCapacity(t *testing.T) {
	setupTestDB(t)
	mediator := createTestUser(t, models.RoleMediator, "France")

	_, err := CreateContainer(mediator.ID, "Box A", "Alger", "Marseille", 0)
	assert.ErrorIs(t, err, ErrInvalidCapacity)
	_, err = CreateContainer(mediator.ID, "Box A", "Alger", "Marseille", -5)
	assert.ErrorIs(t, err, ErrInvalidCapacity)
}

func TestAddPostToContainerCapacity(t *testing.T) {
	setupTestDB(t)
	mediator := createTestUser(t, models.RoleMediator, "France")
	exporter := createTestUser(t, models.RoleExportator, "Algeria")

	container, err := CreateContainer(mediator.ID, "Box A", "Alger", "Marseille", 1000)
	require.NoError(t, err)

	postOne := createTestPost(t, exporter, 600)
	postTwo := createTestPost(t, exporter, 300)
	postTooBig := createTestPost(t, exporter, 200)

	_, err = AddPostToContainer(container.ID, postOne.ID, mediator.ID)
	require.NoError(t, err)
	item, err := AddPostToContainer(container.ID, postTwo.ID, mediator.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, item.Position)

	// 600 + 300 + 200 > 1000
	_, err = AddPostToContainer(container.ID, postTooBig.ID, mediator.ID)
	assert.ErrorIs(t, err, ErrContainerFull)

	// Same post twice is rejected regardless of capacity
	_, err = AddPostToContainer(container.ID, postTwo.ID, mediator.ID)
	assert.ErrorIs(t, err, ErrDuplicateContainerItem)

	containers, err := ListContainers(mediator.ID)
	require.NoError(t, err)
	require.Len(t, containers, 1)
	assert.Equal(t, 900, containers[0].Load)
	assert.InDelta(t, 90.0, containers[0].FillPercent, 0.01)
}

func TestAddPostToContainerAuthorization(t *testing.T) {
	setupTestDB(t)
	mediator := createTestUser(t, models.RoleMediator, "France")
	other := createTestUser(t, models.RoleMediator, "Spain")
	exporter := createTestUser(t, models.RoleExportator, "Algeria")

	container, err := CreateContainer(mediator.ID, "Box A", "Alger", "Marseille", 1000)
	require.NoError(t, err)
	post := createTestPost(t, exporter, 100)

	_, err = AddPostToContainer(container.ID, post.ID, other.ID)
	assert.ErrorIs(t, err, ErrNotAuthorized)

	_, err = AddPostToContainer(9999, post.ID, mediator.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = AddPostToContainer(container.ID, 9999, mediator.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRemoveContainerItem(t *testing.T) {
	setupTestDB(t)
	mediator := createTestUser(t, models.RoleMediator, "France")
	exporter := createTestUser(t, models.RoleExportator, "Algeria")

	container, err := CreateContainer(mediator.ID, "Box A", "Alger", "Marseille", 1000)
	require.NoError(t, err)
	post := createTestPost(t, exporter, 600)

	item, err := AddPostToContainer(container.ID, post.ID, mediator.ID)
	require.NoError(t, err)

	require.NoError(t, RemoveContainerItem(container.ID, item.ID, mediator.ID))
	assert.ErrorIs(t, RemoveContainerItem(container.ID, item.ID, mediator.ID), ErrNotFound)

	// Freed capacity is usable again
	_, err = AddPostToContainer(container.ID, post.ID, mediator.ID)
	require.NoError(t, err)
}

func TestMarkContainerReady(t *testing.T) {
	setupTestDB(t)
	mediator := createTestUser(t, models.RoleMediator, "France")
	mediator.Phone = "+33 6 00 00 00 00"
	require.NoError(t, db.DB.Save(mediator).Error)
	exporter := createTestUser(t, models.RoleExportator, "Algeria")

	container, err := CreateContainer(mediator.ID, "Box A", "Alger", "Marseille", 1000)
	require.NoError(t, err)
	post := createTestPost(t, exporter, 600)
	_, err = AddPostToContainer(container.ID, post.ID, mediator.ID)
	require.NoError(t, err)

	ready, err := MarkContainerReady(container.ID, mediator.ID)
	require.NoError(t, err)
	assert.True(t, ready.Ready)

	// Member posts flip too, carrying the mediator's contact
	var updated models.Post
	require.NoError(t, db.DB.First(&updated, post.ID).Error)
	assert.True(t, updated.Ready)
	assert.Equal(t, mediator.Email, updated.MediatorEmail)
	assert.Equal(t, mediator.Phone, updated.MediatorPhone)

	// A ready container accepts no further changes
	_, err = MarkContainerReady(container.ID, mediator.ID)
	assert.ErrorIs(t, err, ErrContainerReady)
	_, err = AddPostToContainer(container.ID, post.ID, mediator.ID)
	assert.ErrorIs(t, err, ErrContainerReady)
}
