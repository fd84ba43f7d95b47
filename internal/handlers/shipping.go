package handlers

import (
	"net/http"

	"cargolink/internal/services"

	"github.com/gin-gonic/gin"
)

type ShippingHandler struct{}

func NewShippingHandler() *ShippingHandler {
	return &ShippingHandler{}
}

type createShippingRequest struct {
	PostID uint `json:"post_id" binding:"required"`
}

// Create creates the shipping offer an accepted proposal unlocked. The
// service enforces ownership, the accepted status, and single-offer
// uniqueness.
func (h *ShippingHandler) Create(c *gin.Context) {
	user := CurrentUser(c)

	var req createShippingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	offer, err := services.CreateShippingOffer(req.PostID, user.ID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, offer)
}

// List returns shipping offers the user is party to, either side.
func (h *ShippingHandler) List(c *gin.Context) {
	user := CurrentUser(c)

	offers, err := services.ListShippingOffers(user.ID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, offers)
}
