package handlers

import (
	"net/http"

	"cargolink/internal/services"

	"github.com/gin-gonic/gin"
)

type ImageHandler struct{}

func NewImageHandler() *ImageHandler {
	return &ImageHandler{}
}

const maxImageSize = 10 << 20 // 10 MB

// Upload pushes a product or offer image to the blob store and returns
// its URL for the subsequent post/transit create call.
func (h *ImageHandler) Upload(c *gin.Context) {
	file, header, err := c.Request.FormFile("image")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "missing image file")
		return
	}
	defer file.Close()

	if header.Size > maxImageSize {
		RespondError(c, http.StatusRequestEntityTooLarge, "image too large")
		return
	}

	result, err := services.UploadImage(file, header)
	if err != nil {
		RespondError(c, http.StatusBadGateway, "image upload failed")
		return
	}
	c.JSON(http.StatusOK, result)
}
