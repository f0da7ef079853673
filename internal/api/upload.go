package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/chefcourse/backend/internal/service"
	"github.com/pageza/chefcourse/backend/internal/types"
)

type UploadHandler struct {
	images service.IImageService
}

func NewUploadHandler(images service.IImageService) *UploadHandler {
	return &UploadHandler{images: images}
}

// Presign returns a short-lived URL the client can PUT an image to.
func (h *UploadHandler) Presign(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req types.PresignUploadRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.images.PresignUpload(c.Request.Context(), userID, &req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
