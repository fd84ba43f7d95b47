package services

import (
	"errors"
)

// Sentinel errors surfaced by the proposal, notification, shipping and
// container services. Handlers map these to HTTP statuses; everything else
// is a store failure and propagates wrapped.
var (
	ErrNotFound               = errors.New("record not found")
	ErrNotAuthorized          = errors.New("acting user is not allowed to perform this action")
	ErrInvalidTransition      = errors.New("proposal status transition not allowed")
	ErrDuplicateProposal      = errors.New("an active proposal already exists for this sender and subject")
	ErrDuplicateShippingOffer = errors.New("a shipping offer already exists for this post and sender")
	ErrDuplicateContainerItem = errors.New("post is already in this container")
	ErrInvalidCapacity        = errors.New("container capacity must be positive")
	ErrContainerFull          = errors.New("container capacity exceeded")
	ErrContainerReady         = errors.New("container is already marked ready")
	ErrProposalNotAccepted    = errors.New("no accepted proposal for this post")
)
