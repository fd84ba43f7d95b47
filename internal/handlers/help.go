package handlers

import (
	"html/template"
	"net/http"

	"cargolink/internal/db"
	"cargolink/internal/models"
	"cargolink/internal/utils"

	"github.com/gin-gonic/gin"
)

type HelpHandler struct{}

func NewHelpHandler() *HelpHandler {
	return &HelpHandler{}
}

type helpRequestBody struct {
	Subject string `json:"subject"`
	Message string `json:"message" binding:"required"`
}

type helpRequestView struct {
	models.HelpRequest
	MessageHTML template.HTML `json:"message_html"`
}

// Create files a help request from any logged-in user.
func (h *HelpHandler) Create(c *gin.Context) {
	user := CurrentUser(c)

	var req helpRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	request := models.HelpRequest{
		UserID:  user.ID,
		Subject: utils.SanitizeText(req.Subject),
		Message: req.Message,
	}
	if err := db.DB.Create(&request).Error; err != nil {
		RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, request)
}

// ListAll returns every help request for the admin desk, newest first,
// with the markdown body rendered to sanitized HTML.
func (h *HelpHandler) ListAll(c *gin.Context) {
	var requests []models.HelpRequest
	if err := db.DB.Preload("User").Order("created_at DESC").Find(&requests).Error; err != nil {
		RespondServiceError(c, err)
		return
	}

	views := make([]helpRequestView, 0, len(requests))
	for _, r := range requests {
		views = append(views, helpRequestView{
			HelpRequest: r,
			MessageHTML: utils.RenderMarkdown(r.Message),
		})
	}
	c.JSON(http.StatusOK, views)
}

// Resolve flags a request handled.
func (h *HelpHandler) Resolve(c *gin.Context) {
	res := db.DB.Model(&models.HelpRequest{}).
		Where("id = ?", utils.StringToUint(c.Param("id"))).
		Update("resolved", true)
	if res.Error != nil {
		RespondServiceError(c, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		RespondError(c, http.StatusNotFound, "help request not found")
		return
	}
	c.Status(http.StatusOK)
}

func (h *HelpHandler) Delete(c *gin.Context) {
	res := db.DB.Delete(&models.HelpRequest{}, utils.StringToUint(c.Param("id")))
	if res.Error != nil {
		RespondServiceError(c, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		RespondError(c, http.StatusNotFound, "help request not found")
		return
	}
	c.Status(http.StatusNoContent)
}
