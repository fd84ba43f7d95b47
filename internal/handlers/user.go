package handlers

import (
	"net/http"

	"cargolink/internal/db"
	"cargolink/internal/models"
	"cargolink/internal/utils"

	"github.com/gin-gonic/gin"
)

type UserHandler struct{}

func NewUserHandler() *UserHandler {
	return &UserHandler{}
}

type updateProfileRequest struct {
	Username string `json:"username"`
	Phone    string `json:"phone"`
	Country  string `json:"country"`
}

// Profile returns the public view of a user: username, role, country.
func (h *UserHandler) Profile(c *gin.Context) {
	var user models.User
	if err := db.DB.First(&user, utils.StringToUint(c.Param("id"))).Error; err != nil {
		RespondError(c, http.StatusNotFound, "user not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":       user.ID,
		"username": user.Username,
		"role":     user.Role,
		"country":  user.Country,
	})
}

// UpdateProfile edits the session user's own profile fields. Country
// matters: it is the destination stamped onto accepted shipping offers.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	user := CurrentUser(c)

	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	if req.Username != "" {
		user.Username = utils.SanitizeText(req.Username)
	}
	if req.Phone != "" {
		user.Phone = req.Phone
	}
	if req.Country != "" {
		user.Country = req.Country
	}
	if err := db.DB.Save(user).Error; err != nil {
		RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
