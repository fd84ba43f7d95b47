package services

import (
	"testing"

	"cargolink/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateShippingOfferRequiresAcceptedProposal(t *testing.T) {
	setupTestDB(t)
	owner := createTestUser(t, models.RoleExportator, "Algeria")
	sender := createTestUser(t, models.RoleMediator, "France")
	post := createTestPost(t, owner, 500)

	_, err := CreateShippingOffer(post.ID, owner.ID)
	assert.ErrorIs(t, err, ErrProposalNotAccepted)

	proposal, err := CreateProposal(models.SubjectPost, post.ID, sender.ID)
	require.NoError(t, err)

	// A pending proposal is not enough
	_, err = CreateShippingOffer(post.ID, owner.ID)
	assert.ErrorIs(t, err, ErrProposalNotAccepted)

	_, err = SetStatus(proposal.ID, models.StatusAccepted, owner.ID)
	require.NoError(t, err)

	offer, err := CreateShippingOffer(post.ID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, sender.ID, offer.SenderID)
	assert.Equal(t, sender.Country, offer.To)
	assert.Equal(t, post.Product, offer.Product)
}

func TestCreateShippingOfferOwnerOnly(t *testing.T) {
	setupTestDB(t)
	owner := createTestUser(t, models.RoleExportator, "Algeria")
	sender := createTestUser(t, models.RoleMediator, "France")
	post := createTestPost(t, owner, 500)

	proposal, err := CreateProposal(models.SubjectPost, post.ID, sender.ID)
	require.NoError(t, err)
	_, err = SetStatus(proposal.ID, models.StatusAccepted, owner.ID)
	require.NoError(t, err)

	_, err = CreateShippingOffer(post.ID, sender.ID)
	assert.ErrorIs(t, err, ErrNotAuthorized)

	_, err = CreateShippingOffer(9999, owner.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListShippingOffersVisibleToBothParties(t *testing.T) {
	setupTestDB(t)
	owner := createTestUser(t, models.RoleExportator, "Algeria")
	sender := createTestUser(t, models.RoleMediator, "France")
	stranger := createTestUser(t, models.RoleMediator, "Spain")
	post := createTestPost(t, owner, 500)

	proposal, err := CreateProposal(models.SubjectPost, post.ID, sender.ID)
	require.NoError(t, err)
	_, err = SetStatus(proposal.ID, models.StatusAccepted, owner.ID)
	require.NoError(t, err)
	_, err = CreateShippingOffer(post.ID, owner.ID)
	require.NoError(t, err)

	for _, u := range []*models.User{owner, sender} {
		offers, err := ListShippingOffers(u.ID)
		require.NoError(t, err)
		assert.Len(t, offers, 1)
	}

	offers, err := ListShippingOffers(stranger.ID)
	require.NoError(t, err)
	assert.Empty(t, offers)
}
