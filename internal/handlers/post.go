package handlers

import (
	"net/http"

	"cargolink/internal/db"
	"cargolink/internal/models"
	"cargolink/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PostHandler struct{}

func NewPostHandler() *PostHandler {
	return &PostHandler{}
}

type postRequest struct {
	Product  string `json:"product" binding:"required"`
	Quantity int    `json:"quantity" binding:"required,gt=0"`
	Unity    string `json:"unity"`
	From     string `json:"from" binding:"required"`
	To       string `json:"to"`
	Lists    string `json:"lists" binding:"omitempty,oneof=sell buy"`
	Image    string `json:"image"`
}

type postView struct {
	models.Post
	Elapsed string `json:"elapsed"`
}

// ListAll returns every post, newest first, for the browse view.
func (h *PostHandler) ListAll(c *gin.Context) {
	var posts []models.Post
	if err := db.DB.Preload("User").Order("created_at DESC").Find(&posts).Error; err != nil {
		RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, withElapsed(posts))
}

// ListMine returns the logged-in user's posts, newest first.
func (h *PostHandler) ListMine(c *gin.Context) {
	user := CurrentUser(c)

	var posts []models.Post
	if err := db.DB.Where("user_id = ?", user.ID).Order("created_at DESC").Find(&posts).Error; err != nil {
		RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, withElapsed(posts))
}

func (h *PostHandler) Detail(c *gin.Context) {
	var post models.Post
	if err := db.DB.Preload("User").Where("pid = ?", c.Param("pid")).First(&post).Error; err != nil {
		RespondError(c, http.StatusNotFound, "post not found")
		return
	}
	c.JSON(http.StatusOK, postView{Post: post, Elapsed: utils.TimeAgo(post.CreatedAt)})
}

func (h *PostHandler) Create(c *gin.Context) {
	user := CurrentUser(c)
	if !user.CanOwn(models.SubjectPost) {
		RespondError(c, http.StatusForbidden, "only Exportators publish posts")
		return
	}

	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	lists := req.Lists
	if lists == "" {
		lists = models.ListingSell
	}

	post := models.Post{
		Pid:      uuid.NewString(),
		UserID:   user.ID,
		Product:  utils.SanitizeText(req.Product),
		Quantity: req.Quantity,
		Unity:    req.Unity,
		From:     req.From,
		To:       req.To,
		Lists:    lists,
		Image:    req.Image,
	}
	if err := db.DB.Create(&post).Error; err != nil {
		RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, post)
}

func (h *PostHandler) Update(c *gin.Context) {
	user := CurrentUser(c)

	var post models.Post
	if err := db.DB.Where("pid = ?", c.Param("pid")).First(&post).Error; err != nil {
		RespondError(c, http.StatusNotFound, "post not found")
		return
	}
	if post.UserID != user.ID {
		RespondError(c, http.StatusForbidden, "not your post")
		return
	}

	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	post.Product = utils.SanitizeText(req.Product)
	post.Quantity = req.Quantity
	post.Unity = req.Unity
	post.From = req.From
	post.To = req.To
	if req.Lists != "" {
		post.Lists = req.Lists
	}
	if req.Image != "" {
		post.Image = req.Image
	}
	if err := db.DB.Save(&post).Error; err != nil {
		RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

func (h *PostHandler) Delete(c *gin.Context) {
	user := CurrentUser(c)

	res := db.DB.Where("pid = ? AND user_id = ?", c.Param("pid"), user.ID).Delete(&models.Post{})
	if res.Error != nil {
		RespondServiceError(c, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		RespondError(c, http.StatusNotFound, "post not found")
		return
	}
	c.Status(http.StatusNoContent)
}

func withElapsed(posts []models.Post) []postView {
	views := make([]postView, 0, len(posts))
	for _, p := range posts {
		views = append(views, postView{Post: p, Elapsed: utils.TimeAgo(p.CreatedAt)})
	}
	return views
}
