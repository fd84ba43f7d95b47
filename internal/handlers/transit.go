package handlers

import (
	"net/http"

	"cargolink/internal/db"
	"cargolink/internal/models"
	"cargolink/internal/utils"

	"github.com/gin-gonic/gin"
)

type TransitHandler struct{}

func NewTransitHandler() *TransitHandler {
	return &TransitHandler{}
}

type transitRequest struct {
	Title string  `json:"title" binding:"required"`
	From  string  `json:"from" binding:"required"`
	To    string  `json:"to" binding:"required"`
	Price float64 `json:"price" binding:"required,gt=0"`
	Image string  `json:"image"`
}

// ListAll returns every transit offer, newest first. This is the browse
// view Exportators propose against.
func (h *TransitHandler) ListAll(c *gin.Context) {
	var transits []models.Transit
	if err := db.DB.Preload("User").Order("created_at DESC").Find(&transits).Error; err != nil {
		RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, transits)
}

// ListMine returns the mediator's own offers, newest first.
func (h *TransitHandler) ListMine(c *gin.Context) {
	user := CurrentUser(c)

	var transits []models.Transit
	if err := db.DB.Where("user_id = ?", user.ID).Order("created_at DESC").Find(&transits).Error; err != nil {
		RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, transits)
}

func (h *TransitHandler) Detail(c *gin.Context) {
	var transit models.Transit
	if err := db.DB.Preload("User").First(&transit, utils.StringToUint(c.Param("id"))).Error; err != nil {
		RespondError(c, http.StatusNotFound, "transit offer not found")
		return
	}
	c.JSON(http.StatusOK, transit)
}

func (h *TransitHandler) Create(c *gin.Context) {
	user := CurrentUser(c)
	if !user.CanOwn(models.SubjectTransit) {
		RespondError(c, http.StatusForbidden, "only Mediators publish transit offers")
		return
	}

	var req transitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	transit := models.Transit{
		UserID: user.ID,
		Title:  utils.SanitizeText(req.Title),
		From:   req.From,
		To:     req.To,
		Price:  req.Price,
		Image:  req.Image,
	}
	if err := db.DB.Create(&transit).Error; err != nil {
		RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, transit)
}

func (h *TransitHandler) Update(c *gin.Context) {
	user := CurrentUser(c)

	var transit models.Transit
	if err := db.DB.First(&transit, utils.StringToUint(c.Param("id"))).Error; err != nil {
		RespondError(c, http.StatusNotFound, "transit offer not found")
		return
	}
	if transit.UserID != user.ID {
		RespondError(c, http.StatusForbidden, "not your offer")
		return
	}

	var req transitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	transit.Title = utils.SanitizeText(req.Title)
	transit.From = req.From
	transit.To = req.To
	transit.Price = req.Price
	if req.Image != "" {
		transit.Image = req.Image
	}
	if err := db.DB.Save(&transit).Error; err != nil {
		RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, transit)
}

func (h *TransitHandler) Delete(c *gin.Context) {
	user := CurrentUser(c)

	res := db.DB.Where("id = ? AND user_id = ?", utils.StringToUint(c.Param("id")), user.ID).Delete(&models.Transit{})
	if res.Error != nil {
		RespondServiceError(c, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		RespondError(c, http.StatusNotFound, "transit offer not found")
		return
	}
	c.Status(http.StatusNoContent)
}
