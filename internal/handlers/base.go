package handlers

import (
	"errors"
	"log"
	"net/http"

	"cargolink/internal/middleware"
	"cargolink/internal/models"
	"cargolink/internal/services"

	"github.com/gin-gonic/gin"
)

// CurrentUser returns the logged-in user set by the LoadUser middleware.
func CurrentUser(c *gin.Context) *models.User {
	return c.MustGet(middleware.CheckUserKey).(*models.User)
}

// RespondError writes a JSON error body
func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"error": message})
}

// RespondServiceError maps service sentinel errors to HTTP statuses.
// Anything unrecognized is a store failure and becomes a 500; the original
// error is logged, never swallowed into derived state.
func RespondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		RespondError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrNotAuthorized):
		RespondError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, services.ErrInvalidTransition):
		RespondError(c, http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrDuplicateProposal),
		errors.Is(err, services.ErrDuplicateShippingOffer),
		errors.Is(err, services.ErrDuplicateContainerItem):
		RespondError(c, http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrInvalidCapacity),
		errors.Is(err, services.ErrContainerFull),
		errors.Is(err, services.ErrContainerReady),
		errors.Is(err, services.ErrProposalNotAccepted):
		RespondError(c, http.StatusUnprocessableEntity, err.Error())
	default:
		log.Printf("Request %s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
		RespondError(c, http.StatusInternalServerError, "internal error")
	}
}
