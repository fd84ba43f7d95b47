package handlers

import (
	"net/http"

	"cargolink/internal/services"
	"cargolink/internal/utils"

	"github.com/gin-gonic/gin"
)

type ContainerHandler struct{}

func NewContainerHandler() *ContainerHandler {
	return &ContainerHandler{}
}

type createContainerRequest struct {
	Name     string `json:"name" binding:"required"`
	From     string `json:"from" binding:"required"`
	To       string `json:"to" binding:"required"`
	Capacity int    `json:"capacity" binding:"required,gt=0"`
}

type addItemRequest struct {
	PostID uint `json:"post_id" binding:"required"`
}

func (h *ContainerHandler) Create(c *gin.Context) {
	user := CurrentUser(c)

	var req createContainerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	container, err := services.CreateContainer(user.ID, req.Name, req.From, req.To, req.Capacity)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, container)
}

// List returns the mediator's containers with line items and derived load.
func (h *ContainerHandler) List(c *gin.Context) {
	user := CurrentUser(c)

	containers, err := services.ListContainers(user.ID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, containers)
}

// AddItem places a post into the container, capacity permitting.
func (h *ContainerHandler) AddItem(c *gin.Context) {
	user := CurrentUser(c)

	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	item, err := services.AddPostToContainer(utils.StringToUint(c.Param("id")), req.PostID, user.ID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *ContainerHandler) RemoveItem(c *gin.Context) {
	user := CurrentUser(c)

	err := services.RemoveContainerItem(
		utils.StringToUint(c.Param("id")),
		utils.StringToUint(c.Param("item_id")),
		user.ID,
	)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// MarkReady closes the container and flips its member posts to ready.
func (h *ContainerHandler) MarkReady(c *gin.Context) {
	user := CurrentUser(c)

	container, err := services.MarkContainerReady(utils.StringToUint(c.Param("id")), user.ID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, container)
}
